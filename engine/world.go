// Package engine hosts the object arena and runs physics on a fixed tick.
package engine

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/physics"
	"github.com/lixenwraith/rover/profile"
	"github.com/lixenwraith/rover/vmath"
)

var (
	ErrUnknownType   = errors.New("unknown object type")
	ErrUnknownObject = errors.New("unknown object")
	ErrNoPhysics     = errors.New("object has no physics")
)

// Config holds the collaborators of a world
type Config struct {
	Profiles  *profile.Table
	Terrain   physics.Terrain
	Particles physics.ParticleSink
	Sounds    physics.SoundSink
	Clock     *PausableClock
	Log       zerolog.Logger
	Seed      uint64
}

// World is the arena of objects. Objects are ticked in insertion order and
// destroyed objects are swept at the tick boundary.
type World struct {
	mu sync.RWMutex

	objects []*Object
	byID    map[core.ObjectID]*Object
	nextID  core.ObjectID

	profiles *profile.Table
	ground   *groundProxy
	deps     physics.Deps
	clock    *PausableClock
	circuit  *physics.Circuit
	log      zerolog.Logger

	tick    uint64
	elapsed float64

	// Raw scene description of the ground, kept for saving
	terrainLine string
	zoneLines   []string
}

// NewWorld creates an empty world
func NewWorld(cfg Config) *World {
	if cfg.Profiles == nil {
		cfg.Profiles = profile.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = NewPausableClock()
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	w := &World{
		byID:     make(map[core.ObjectID]*Object),
		nextID:   1,
		profiles: cfg.Profiles,
		ground:   &groundProxy{t: cfg.Terrain},
		clock:    cfg.Clock,
		circuit:  physics.NewCircuit(0, cfg.Log),
		log:      cfg.Log.With().Str("component", "world").Logger(),
	}
	w.deps = physics.Deps{
		Terrain:   w.ground,
		Registry:  registry{w},
		Particles: cfg.Particles,
		Sounds:    cfg.Sounds,
		Pause:     cfg.Clock,
		Circuit:   w.circuit,
		Log:       cfg.Log,
		Rand:      vmath.NewFastRand(cfg.Seed),
	}
	return w
}

// registry exposes the arena to physics without locking; it is only used
// from inside Step, which already holds the world lock
type registry struct{ w *World }

func (r registry) Each(fn func(physics.Body) bool) {
	for _, o := range r.w.objects {
		if !fn(o) {
			return
		}
	}
}

// LocateUnlocked returns an object's position without taking the world lock.
// It serves sinks called back from inside Step, which already holds it.
func (w *World) LocateUnlocked(id core.ObjectID) (mgl64.Vec3, bool) {
	o, ok := w.byID[id]
	if !ok {
		return mgl64.Vec3{}, false
	}
	return o.pos, true
}

// Spawn creates an object of the given type. Simulated types get physics.
func (w *World) Spawn(typ core.ObjectType, pos mgl64.Vec3, yaw float64) (*Object, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.spawnLocked(typ, pos, yaw)
}

func (w *World) spawnLocked(typ core.ObjectType, pos mgl64.Vec3, yaw float64) (*Object, error) {
	prof, ok := w.profiles.Lookup(typ)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typ)
	}

	id := w.nextID
	w.nextID++

	trait := prof.Trait
	o := &Object{
		id:     id,
		typ:    typ,
		trait:  &trait,
		pos:    vmath.SanitizeVec3(pos),
		rot:    mgl64.Vec3{0, vmath.NormAngle(yaw), 0},
		health: 1,
		log:    w.log.With().Uint32("object", uint32(id)).Str("type", typ.String()).Logger(),
	}
	if trait.UsesPower {
		o.cell = &PowerCell{present: true, energy: 1}
	}
	if trait.Physics != core.PhysicsNone {
		o.phys = physics.New(o, prof.Character, w.deps)
	}
	if !trait.IsFlying() || o.phys == nil {
		o.pos[1] = w.ground.Height(o.pos[0], o.pos[2])
	} else {
		o.pos[1] = max(o.pos[1], w.ground.Height(o.pos[0], o.pos[2]))
		if o.pos[1] > w.ground.Height(o.pos[0], o.pos[2]) {
			o.phys.SetLand(false)
		}
	}

	w.objects = append(w.objects, o)
	w.byID[id] = o
	o.log.Debug().Float64("x", o.pos[0]).Float64("z", o.pos[2]).Msg("spawned")
	return o, nil
}

// Object returns a live object by id
func (w *World) Object(id core.ObjectID) (*Object, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	o, ok := w.byID[id]
	return o, ok
}

// Each visits objects in insertion order until fn returns false
func (w *World) Each(fn func(*Object) bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, o := range w.objects {
		if !fn(o) {
			return
		}
	}
}

// Len returns the number of objects, dying ones included until the next sweep
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.objects)
}

// Remove deletes an object immediately
func (w *World) Remove(id core.ObjectID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	o, ok := w.byID[id]
	if !ok {
		return false
	}
	o.dying = true
	w.sweep()
	return true
}

// Circuit returns the shared door counter
func (w *World) Circuit() *physics.Circuit { return w.circuit }

// Clock returns the pause authority
func (w *World) Clock() *PausableClock { return w.clock }

// Terrain returns the current ground
func (w *World) Terrain() physics.Terrain { return w.ground }

// SetTerrain replaces the ground for every object
func (w *World) SetTerrain(t physics.Terrain) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ground.t = t
}

// Step advances every object by rTime seconds, clamped to the maximum tick.
// It returns the ids of objects removed at the end of the tick.
func (w *World) Step(rTime float64) []core.ObjectID {
	if w.clock.IsPaused() || rTime <= 0 || math.IsNaN(rTime) || math.IsInf(rTime, 0) {
		return nil
	}
	rTime = min(rTime, parameter.MaxTickTime)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.tick++
	w.elapsed += rTime

	// Objects spawned during the tick wait for the next one
	n := len(w.objects)
	for i := 0; i < n; i++ {
		o := w.objects[i]
		if o.dying {
			continue
		}
		o.decay(rTime)
		if o.phys != nil && !o.carried {
			o.phys.Tick(rTime)
		}
	}
	return w.sweep()
}

// sweep drops dying objects, keeping the order of the survivors
func (w *World) sweep() []core.ObjectID {
	var removed []core.ObjectID
	kept := w.objects[:0]
	for _, o := range w.objects {
		if !o.dying {
			kept = append(kept, o)
			continue
		}
		removed = append(removed, o.id)
		delete(w.byID, o.id)
		if w.deps.Sounds != nil {
			w.deps.Sounds.StopLoop(o.id)
		}
	}
	clear(w.objects[len(kept):])
	w.objects = kept

	if len(removed) > 0 {
		w.log.Debug().Int("removed", len(removed)).Uint64("tick", w.tick).Msg("sweep")
	}
	return removed
}

// Tick returns the number of simulated ticks
func (w *World) Tick() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tick
}

// Frame is a consistent view of the world after a tick
type Frame struct {
	Tick    uint64
	Time    float64
	Paused  bool
	Objects []physics.State
	Laps    map[core.ObjectID]int
}

// Snapshot captures every live object
func (w *World) Snapshot() Frame {
	w.mu.RLock()
	defer w.mu.RUnlock()

	f := Frame{
		Tick:    w.tick,
		Time:    w.elapsed,
		Paused:  w.clock.IsPaused(),
		Objects: make([]physics.State, 0, len(w.objects)),
	}
	for _, o := range w.objects {
		if o.dying {
			continue
		}
		f.Objects = append(f.Objects, o.State())
		if o.phys != nil && w.circuit.Laps(o.id) > 0 {
			if f.Laps == nil {
				f.Laps = make(map[core.ObjectID]int)
			}
			f.Laps[o.id] = w.circuit.Laps(o.id)
		}
	}
	return f
}

// Command is a driver request for one object
type Command struct {
	ID        core.ObjectID
	Motor     mgl64.Vec3
	Handbrake float64
}

// Apply sets the motor intent of an object
func (w *World) Apply(cmd Command) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	o, ok := w.byID[cmd.ID]
	if !ok || o.dying {
		return fmt.Errorf("%w: %d", ErrUnknownObject, cmd.ID)
	}
	if o.phys == nil {
		return fmt.Errorf("%w: %d", ErrNoPhysics, cmd.ID)
	}
	o.phys.SetMotorSpeed(cmd.Motor)
	o.phys.SetHandbrake(cmd.Handbrake)
	return nil
}

// groundProxy lets the ground be swapped after physics captured its deps
type groundProxy struct {
	t physics.Terrain
}

func (g *groundProxy) Height(x, z float64) float64 {
	if g.t == nil {
		return 0
	}
	return g.t.Height(x, z)
}

func (g *groundProxy) Normal(x, z float64) mgl64.Vec3 {
	if g.t == nil {
		return mgl64.Vec3{0, 1, 0}
	}
	return g.t.Normal(x, z)
}

func (g *groundProxy) Hardness(x, z float64) float64 {
	if g.t == nil {
		return 1
	}
	return g.t.Hardness(x, z)
}

func (g *groundProxy) WaterLevel() float64 {
	if g.t == nil {
		return -1e9
	}
	return g.t.WaterLevel()
}

func (g *groundProxy) FlyingHeight() float64 {
	if g.t == nil {
		return 100
	}
	return g.t.FlyingHeight()
}

func (g *groundProxy) SlowFactor(x, z float64) float64 {
	if g.t == nil {
		return 1
	}
	return g.t.SlowFactor(x, z)
}

func (g *groundProxy) IsLava(x, z float64) bool {
	return g.t != nil && g.t.IsLava(x, z)
}
