package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/profile"
	"github.com/lixenwraith/rover/vmath"
)

// PowerContainer is the energy store of a powered body
type PowerContainer interface {
	HasPowerCell() bool
	Energy() float64
	SetEnergy(e float64)
}

// Damageable bodies lose integrity on impacts
type Damageable interface {
	// Damage subtracts a normalized amount and reports whether integrity reached zero
	Damage(amount float64, cause core.Cause) bool
}

// Jostler bodies sway when brushed
type Jostler interface {
	Jostle(force float64)
}

// Body is the simulated object as seen by physics
type Body interface {
	ID() core.ObjectID
	Type() core.ObjectType
	// Trait is shared and must not be modified
	Trait() *profile.Trait

	Position() mgl64.Vec3
	SetPosition(pos mgl64.Vec3)
	Rotation() mgl64.Vec3
	SetRotation(angle mgl64.Vec3)

	Powered() (PowerContainer, bool)
	Damageable() (Damageable, bool)
	Jostler() (Jostler, bool)
	Physics() (*Physics, bool)
	// Checkpoint returns the circuit order of a target marker
	Checkpoint() (int, bool)

	IsCarried() bool
	IsDying() bool
	CollisionsEnabled() bool
	VirusActive() bool

	SetMotorLight(on bool)
	Destroy(cause core.Cause)
}

// Registry iterates the live bodies of the world in a stable order
type Registry interface {
	// Each stops early when fn returns false
	Each(fn func(Body) bool)
}

// Terrain answers ground queries at world XZ coordinates
type Terrain interface {
	Height(x, z float64) float64
	Normal(x, z float64) mgl64.Vec3
	Hardness(x, z float64) float64
	WaterLevel() float64
	// FlyingHeight is the maximum altitude above ground
	FlyingHeight() float64
	// SlowFactor scales RACE target speed, 1 outside slow zones
	SlowFactor(x, z float64) float64
	IsLava(x, z float64) bool
}

// ParticleSink spawns visual effects, fire and forget
type ParticleSink interface {
	Emit(kind core.ParticleType, pos, speed mgl64.Vec3, size, duration float64)
}

// SoundSink plays one-shot sounds and per-owner loops
type SoundSink interface {
	Play(kind core.SoundType, pos mgl64.Vec3, amplitude, frequency float64)
	Loop(owner core.ObjectID, kind core.SoundType, amplitude, frequency float64)
	StopLoop(owner core.ObjectID)
}

// PauseState reports the engine-wide pause flag
type PauseState interface {
	IsPaused() bool
}

// Deps are the collaborators injected into every physics instance
type Deps struct {
	Terrain   Terrain
	Registry  Registry
	Particles ParticleSink
	Sounds    SoundSink
	Pause     PauseState
	Circuit   *Circuit
	Log       zerolog.Logger
	Rand      *vmath.FastRand
}

type nopParticles struct{}

func (nopParticles) Emit(core.ParticleType, mgl64.Vec3, mgl64.Vec3, float64, float64) {}

type nopSounds struct{}

func (nopSounds) Play(core.SoundType, mgl64.Vec3, float64, float64)    {}
func (nopSounds) Loop(core.ObjectID, core.SoundType, float64, float64) {}
func (nopSounds) StopLoop(core.ObjectID)                                {}

type nopPause struct{}

func (nopPause) IsPaused() bool { return false }

type emptyRegistry struct{}

func (emptyRegistry) Each(func(Body) bool) {}

type flatTerrain struct{}

func (flatTerrain) Height(float64, float64) float64     { return 0 }
func (flatTerrain) Normal(float64, float64) mgl64.Vec3  { return mgl64.Vec3{0, 1, 0} }
func (flatTerrain) Hardness(float64, float64) float64   { return 1 }
func (flatTerrain) WaterLevel() float64                 { return -1e9 }
func (flatTerrain) FlyingHeight() float64               { return 100 }
func (flatTerrain) SlowFactor(float64, float64) float64 { return 1 }
func (flatTerrain) IsLava(float64, float64) bool        { return false }

// withDefaults replaces missing collaborators with inert ones
func (d Deps) withDefaults() Deps {
	if d.Terrain == nil {
		d.Terrain = flatTerrain{}
	}
	if d.Registry == nil {
		d.Registry = emptyRegistry{}
	}
	if d.Particles == nil {
		d.Particles = nopParticles{}
	}
	if d.Sounds == nil {
		d.Sounds = nopSounds{}
	}
	if d.Pause == nil {
		d.Pause = nopPause{}
	}
	if d.Rand == nil {
		d.Rand = vmath.NewFastRand(1)
	}
	return d
}
