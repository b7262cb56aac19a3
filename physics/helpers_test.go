package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/profile"
)

var testProfiles = profile.Default()

type testPower struct {
	cell   bool
	energy float64
}

func (p *testPower) HasPowerCell() bool  { return p.cell }
func (p *testPower) Energy() float64     { return p.energy }
func (p *testPower) SetEnergy(e float64) { p.energy = e }

type testBody struct {
	id    core.ObjectID
	typ   core.ObjectType
	trait *profile.Trait
	pos   mgl64.Vec3
	rot   mgl64.Vec3

	power      *testPower
	damageable bool
	health     float64
	phys       *Physics
	door       int
	hasDoor    bool

	dying     bool
	carried   bool
	noCollide bool
	virus     bool

	light     bool
	destroyed core.Cause
	jostled   float64
}

func newTestBody(id core.ObjectID, typ core.ObjectType, pos mgl64.Vec3) *testBody {
	prof, _ := testProfiles.Lookup(typ)
	trait := prof.Trait
	return &testBody{id: id, typ: typ, trait: &trait, pos: pos, health: 1}
}

func (b *testBody) ID() core.ObjectID          { return b.id }
func (b *testBody) Type() core.ObjectType      { return b.typ }
func (b *testBody) Trait() *profile.Trait      { return b.trait }
func (b *testBody) Position() mgl64.Vec3       { return b.pos }
func (b *testBody) SetPosition(pos mgl64.Vec3) { b.pos = pos }
func (b *testBody) Rotation() mgl64.Vec3       { return b.rot }
func (b *testBody) SetRotation(a mgl64.Vec3)   { b.rot = a }
func (b *testBody) IsCarried() bool            { return b.carried }
func (b *testBody) IsDying() bool              { return b.dying }
func (b *testBody) CollisionsEnabled() bool    { return !b.noCollide }
func (b *testBody) VirusActive() bool          { return b.virus }
func (b *testBody) SetMotorLight(on bool)      { b.light = on }

func (b *testBody) Powered() (PowerContainer, bool) {
	if b.power == nil {
		return nil, false
	}
	return b.power, true
}

func (b *testBody) Damageable() (Damageable, bool) {
	if !b.damageable {
		return nil, false
	}
	return b, true
}

func (b *testBody) Damage(amount float64, cause core.Cause) bool {
	b.health -= amount
	return b.health <= 0
}

func (b *testBody) Jostler() (Jostler, bool) {
	if b.trait.JostleRadius == 0 {
		return nil, false
	}
	return b, true
}

func (b *testBody) Jostle(force float64) { b.jostled += force }

func (b *testBody) Physics() (*Physics, bool) { return b.phys, b.phys != nil }

func (b *testBody) Checkpoint() (int, bool) { return b.door, b.hasDoor }

func (b *testBody) Destroy(cause core.Cause) {
	b.dying = true
	b.destroyed = cause
}

type testRegistry []Body

func (r testRegistry) Each(fn func(Body) bool) {
	for _, b := range r {
		if !fn(b) {
			return
		}
	}
}

type testTerrain struct {
	height   func(x, z float64) float64
	water    float64
	ceiling  float64
	lava     bool
	hardness float64
	slow     float64
}

func flat() *testTerrain {
	return &testTerrain{water: -100, ceiling: 100, hardness: 1, slow: 1}
}

func (t *testTerrain) Height(x, z float64) float64 {
	if t.height == nil {
		return 0
	}
	return t.height(x, z)
}

func (t *testTerrain) Normal(x, z float64) mgl64.Vec3 {
	const d = 0.01
	dx := (t.Height(x+d, z) - t.Height(x-d, z)) / (2 * d)
	dz := (t.Height(x, z+d) - t.Height(x, z-d)) / (2 * d)
	return mgl64.Vec3{-dx, 1, -dz}.Normalize()
}

func (t *testTerrain) Hardness(float64, float64) float64   { return t.hardness }
func (t *testTerrain) WaterLevel() float64                 { return t.water }
func (t *testTerrain) FlyingHeight() float64               { return t.ceiling }
func (t *testTerrain) SlowFactor(float64, float64) float64 { return t.slow }
func (t *testTerrain) IsLava(float64, float64) bool        { return t.lava }

type playedSound struct {
	kind core.SoundType
	amp  float64
}

type testSounds struct {
	played []playedSound
	loops  map[core.ObjectID]core.SoundType
}

func (s *testSounds) Play(kind core.SoundType, _ mgl64.Vec3, amp, _ float64) {
	s.played = append(s.played, playedSound{kind, amp})
}

func (s *testSounds) Loop(owner core.ObjectID, kind core.SoundType, _, _ float64) {
	if s.loops == nil {
		s.loops = make(map[core.ObjectID]core.SoundType)
	}
	s.loops[owner] = kind
}

func (s *testSounds) StopLoop(owner core.ObjectID) { delete(s.loops, owner) }

func (s *testSounds) count(kind core.SoundType) int {
	n := 0
	for _, p := range s.played {
		if p.kind == kind {
			n++
		}
	}
	return n
}

type testParticles struct {
	emitted map[core.ParticleType]int
}

func (p *testParticles) Emit(kind core.ParticleType, _, _ mgl64.Vec3, _, _ float64) {
	if p.emitted == nil {
		p.emitted = make(map[core.ParticleType]int)
	}
	p.emitted[kind]++
}

type testPause struct{ paused bool }

func (p *testPause) IsPaused() bool { return p.paused }

type rig struct {
	terrain   *testTerrain
	registry  testRegistry
	sounds    *testSounds
	particles *testParticles
	pause     *testPause
	circuit   *Circuit
}

func newRig() *rig {
	return &rig{
		terrain:   flat(),
		sounds:    &testSounds{},
		particles: &testParticles{},
		pause:     &testPause{},
	}
}

func (r *rig) deps() Deps {
	return Deps{
		Terrain:   r.terrain,
		Registry:  &r.registry,
		Particles: r.particles,
		Sounds:    r.sounds,
		Pause:     r.pause,
		Circuit:   r.circuit,
	}
}

// add registers a body and attaches physics when the type is simulated
func (r *rig) add(id core.ObjectID, typ core.ObjectType, pos mgl64.Vec3) *testBody {
	b := newTestBody(id, typ, pos)
	if b.trait.Physics != core.PhysicsNone {
		prof, _ := testProfiles.Lookup(typ)
		b.phys = New(b, prof.Character, r.deps())
	}
	r.registry = append(r.registry, b)
	return b
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nan() float64 { return math.NaN() }
