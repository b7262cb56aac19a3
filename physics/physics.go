// Package physics simulates one object per instance: motor model, kinematic
// integration, terrain adaptation and collision against the rest of the world.
// Instances are ticked sequentially on a single goroutine.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/logging"
	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/profile"
	"github.com/lixenwraith/rover/vmath"
)

// Outcome is the result of collision resolution for one tick
type Outcome uint8

const (
	// OutcomeMoved lets the candidate position stand, possibly adjusted
	OutcomeMoved Outcome = iota
	// OutcomeHeld keeps the pre-tick position; rotation still applies
	OutcomeHeld
	// OutcomeDestroyed aborts the tick
	OutcomeDestroyed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeHeld:
		return "held"
	case OutcomeDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Physics is the simulation state of one body
type Physics struct {
	body  Body
	trait *profile.Trait
	char  profile.Character
	typ   Type
	deps  Deps
	log   zerolog.Logger
	noisy zerolog.Logger

	lin Motion
	cir Motion

	motor     mgl64.Vec3 // requested intent
	effective mgl64.Vec3 // intent after gating, last motor update
	handbrake float64

	land   bool
	swim   bool
	lock   bool
	freeze bool
	silent bool

	reactorRange    float64
	reactorDepleted bool
	obstacle        bool

	time        float64
	floorHeight float64
	hardness    float64
	vertSpeed   float64
	wobble      float64

	// RACE
	susp        suspension
	centriSpeed float64
	overTurn    float64
	wheelSlide  float64
	chocSpin    float64

	repeat      int
	jostleTimer float64
	dustTimer   float64
	skidTimer   float64
	inside      map[core.ObjectID]bool
	fx          effectState
}

// New attaches physics to a body using its type character
func New(body Body, char profile.Character, deps Deps) *Physics {
	deps = deps.withDefaults()
	trait := body.Trait()

	log := deps.Log.With().
		Uint32("object", uint32(body.ID())).
		Str("type", body.Type().String()).
		Logger()

	p := &Physics{
		body:         body,
		trait:        trait,
		char:         char,
		typ:          trait.Physics,
		deps:         deps,
		log:          log,
		noisy:        logging.Sampled(log),
		lin:          motionFrom(char.Linear),
		cir:          motionFrom(char.Circular),
		land:         true,
		reactorRange: 1,
		hardness:     1,
		jostleTimer:  parameter.JostleSoundInterval,
		inside:       make(map[core.ObjectID]bool),
	}
	if p.typ == core.PhysicsNone {
		p.typ = TypeNormal
	}
	return p
}

// Body returns the simulated body
func (p *Physics) Body() Body { return p.body }

// Type returns the simulation profile
func (p *Physics) Type() Type { return p.typ }

// Character returns the physical profile
func (p *Physics) Character() profile.Character { return p.char }

// SetMotorSpeed sets the normalized intent: X forward, Y up, Z turn (left positive)
func (p *Physics) SetMotorSpeed(v mgl64.Vec3) {
	v = vmath.SanitizeVec3(v)
	for i := range v {
		v[i] = vmath.Clamp(v[i], -1, 1)
	}
	p.motor = v
}

// SetMotorSpeedAxis sets one component of the intent
func (p *Physics) SetMotorSpeedAxis(axis Axis, v float64) {
	if axis > AxisZ {
		return
	}
	p.motor[axis] = vmath.Clamp(vmath.Sanitize(v), -1, 1)
}

func (p *Physics) MotorSpeed() mgl64.Vec3 { return p.motor }

// EffectiveMotor returns the intent actually applied by the last motor update
func (p *Physics) EffectiveMotor() mgl64.Vec3 { return p.effective }

// SetHandbrake sets handbrake strength in [0, 1]
func (p *Physics) SetHandbrake(v float64) {
	p.handbrake = vmath.Norm01(vmath.Sanitize(v))
}

func (p *Physics) Handbrake() float64 { return p.handbrake }

// LinMotion reads a linear Motion field
func (p *Physics) LinMotion(mode Mode) mgl64.Vec3 { return p.lin.Get(mode) }

// SetLinMotion writes a linear Motion field
func (p *Physics) SetLinMotion(mode Mode, v mgl64.Vec3) { p.lin.Set(mode, v) }

// SetLinMotionAxis writes one component of a linear Motion field
func (p *Physics) SetLinMotionAxis(mode Mode, axis Axis, v float64) { p.lin.SetAxis(mode, axis, v) }

// CirMotion reads a circular Motion field
func (p *Physics) CirMotion(mode Mode) mgl64.Vec3 { return p.cir.Get(mode) }

// SetCirMotion writes a circular Motion field
func (p *Physics) SetCirMotion(mode Mode, v mgl64.Vec3) { p.cir.Set(mode, v) }

// SetCirMotionAxis writes one component of a circular Motion field
func (p *Physics) SetCirMotionAxis(mode Mode, axis Axis, v float64) { p.cir.SetAxis(mode, axis, v) }

// SetLock zeroes motor intent while set
func (p *Physics) SetLock(v bool) { p.lock = v }
func (p *Physics) IsLocked() bool { return p.lock }

// SetFreeze holds position and skips collision and terrain while set
func (p *Physics) SetFreeze(v bool) { p.freeze = v }
func (p *Physics) IsFrozen() bool { return p.freeze }

// SetSilent suppresses every sound of this body
func (p *Physics) SetSilent(v bool) {
	p.silent = v
	if v {
		p.stopMotorLoop()
	}
}
func (p *Physics) IsSilent() bool { return p.silent }

// SetLand forces the land state of a flyer
func (p *Physics) SetLand(v bool) {
	p.land = v
	if v {
		p.floorHeight = 0
	}
}
func (p *Physics) IsLand() bool { return p.land }

func (p *Physics) IsSwim() bool { return p.swim }

// ReactorRange is the normalized jet fuel in [0, 1]
func (p *Physics) ReactorRange() float64 { return p.reactorRange }

func (p *Physics) SetReactorRange(v float64) {
	p.reactorRange = vmath.Norm01(vmath.Sanitize(v))
}

// ReactorDepleted reports the forced-fall state of an exhausted jet
func (p *Physics) ReactorDepleted() bool { return p.reactorDepleted }

// FloorHeight is the altitude above terrain, zero on the ground
func (p *Physics) FloorHeight() float64 { return p.floorHeight }

// WheelSlide is the RACE burnout factor in [0, 1]
func (p *Physics) WheelSlide() float64 { return p.wheelSlide }

// CrashSpin is the residual yaw rate of a RACE crash
func (p *Physics) CrashSpin() float64 { return p.chocSpin }

// Suspension returns front and back visual travel and body lift
func (p *Physics) Suspension() (front, back, lift float64) {
	return p.susp.travel[0], p.susp.travel[1], p.susp.lift
}

// WorldVelocity is the linear real speed rotated into world space
func (p *Physics) WorldVelocity() mgl64.Vec3 {
	return vmath.RotationZXY(p.body.Rotation()).Mul3x1(p.lin.RealSpeed)
}

// Push adds a world-space velocity change, used by repulsion from other bodies
func (p *Physics) Push(dv mgl64.Vec3) {
	dv = vmath.SanitizeVec3(dv)
	local := vmath.RotationZXY(p.body.Rotation()).Transpose().Mul3x1(dv)
	if !p.trait.IsFlying() || p.land {
		local[1] = 0
	}
	p.lin.CurrentSpeed = p.lin.CurrentSpeed.Add(local)
	p.lin.RealSpeed = p.lin.RealSpeed.Add(local)
}

// Tick advances the body by rTime seconds. It returns false when the body
// was destroyed and must not be processed further this tick.
func (p *Physics) Tick(rTime float64) bool {
	if p.deps.Pause.IsPaused() || !validStep(rTime) {
		return true
	}

	p.time += rTime
	p.updateTimers(rTime)

	pos := p.body.Position()
	angle := p.body.Rotation()

	p.terrainSlide(pos, angle)
	p.motorUpdate(rTime)
	p.lin.update(rTime)
	p.cir.update(rTime)

	if p.freeze {
		p.effectUpdate(rTime, pos)
		return true
	}

	newPos, newAngle := p.integrate(rTime, pos, angle)

	if !p.floorAdapt(rTime, pos, &newPos, &newAngle) {
		return false
	}

	switch p.objectAdapt(rTime, pos, &newPos, &newAngle) {
	case OutcomeDestroyed:
		return false
	case OutcomeHeld:
		newPos = pos
	}
	// Held and corner-adjusted positions rest on the ground under their new XZ
	if p.touchingGround() {
		newPos[1] = p.deps.Terrain.Height(newPos[0], newPos[2])
	}

	p.body.SetPosition(newPos)
	p.body.SetRotation(newAngle)
	p.effectUpdate(rTime, newPos)
	return true
}

// validStep reports whether rTime is a usable positive, finite step
func validStep(rTime float64) bool {
	return rTime > 0 && !math.IsNaN(rTime) && !math.IsInf(rTime, 0)
}

func (p *Physics) updateTimers(rTime float64) {
	p.jostleTimer += rTime
	p.dustTimer += rTime
	p.skidTimer += rTime
	if p.susp.glu > 0 {
		p.susp.glu = max(0, p.susp.glu-rTime)
	}
	if p.chocSpin != 0 {
		p.chocSpin = vmath.Approach(p.chocSpin, 0, parameter.ChocSpinDecay*rTime)
	}
}

// touchingGround reports whether the body rests on terrain this tick
func (p *Physics) touchingGround() bool {
	return !p.trait.IsFlying() || p.land
}
