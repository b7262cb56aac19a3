package engine

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/physics"
	"github.com/lixenwraith/rover/profile"
	"github.com/lixenwraith/rover/vmath"
)

// swayDecay is the per-second recovery rate of a jostled plant
const swayDecay = 1.5

// PowerCell is the battery of a powered object
type PowerCell struct {
	present bool
	energy  float64
}

func (c *PowerCell) HasPowerCell() bool { return c.present }

func (c *PowerCell) Energy() float64 {
	if !c.present {
		return 0
	}
	return c.energy
}

func (c *PowerCell) SetEnergy(e float64) {
	if c.present {
		c.energy = vmath.Norm01(e)
	}
}

// Object is one entity of the world arena. It implements physics.Body.
type Object struct {
	id    core.ObjectID
	typ   core.ObjectType
	trait *profile.Trait
	log   zerolog.Logger

	pos mgl64.Vec3
	rot mgl64.Vec3

	phys *physics.Physics
	cell *PowerCell

	health float64
	sway   float64
	door   int

	carried   bool
	dying     bool
	noCollide bool
	virus     bool
	light     bool
	cause     core.Cause
}

func (o *Object) ID() core.ObjectID          { return o.id }
func (o *Object) Type() core.ObjectType      { return o.typ }
func (o *Object) Trait() *profile.Trait      { return o.trait }
func (o *Object) Position() mgl64.Vec3       { return o.pos }
func (o *Object) SetPosition(pos mgl64.Vec3) { o.pos = vmath.SanitizeVec3(pos) }
func (o *Object) Rotation() mgl64.Vec3       { return o.rot }
func (o *Object) SetRotation(a mgl64.Vec3)   { o.rot = vmath.SanitizeVec3(a) }
func (o *Object) IsCarried() bool            { return o.carried }
func (o *Object) IsDying() bool              { return o.dying }
func (o *Object) CollisionsEnabled() bool    { return !o.noCollide }
func (o *Object) VirusActive() bool          { return o.virus }
func (o *Object) SetMotorLight(on bool)      { o.light = on }

// MotorLight reports the lamp state driven by motor activity
func (o *Object) MotorLight() bool { return o.light }

func (o *Object) SetCarried(v bool)    { o.carried = v }
func (o *Object) SetCollisions(v bool) { o.noCollide = !v }
func (o *Object) SetVirus(v bool)      { o.virus = v }

func (o *Object) Powered() (physics.PowerContainer, bool) {
	if o.cell == nil {
		return nil, false
	}
	return o.cell, true
}

// Cell returns the battery of a powered type, nil otherwise
func (o *Object) Cell() *PowerCell { return o.cell }

// InstallCell puts a cell with the given charge; a negative charge removes it
func (o *Object) InstallCell(energy float64) {
	if o.cell == nil {
		return
	}
	if energy < 0 {
		o.cell.present = false
		o.cell.energy = 0
		return
	}
	o.cell.present = true
	o.cell.energy = vmath.Norm01(energy)
}

func (o *Object) Damageable() (physics.Damageable, bool) {
	if o.trait.DamageDivisor <= 0 {
		return nil, false
	}
	return o, true
}

// Damage implements physics.Damageable
func (o *Object) Damage(amount float64, cause core.Cause) bool {
	if o.dying || amount <= 0 {
		return o.dying
	}
	o.health = max(0, o.health-amount)
	o.log.Debug().Float64("amount", amount).Float64("health", o.health).Str("cause", cause.String()).Msg("damaged")
	return o.health <= 0
}

// Health is the remaining integrity in [0, 1]
func (o *Object) Health() float64 { return o.health }

func (o *Object) SetHealth(v float64) { o.health = vmath.Norm01(v) }

func (o *Object) Jostler() (physics.Jostler, bool) {
	if o.trait.JostleRadius <= 0 {
		return nil, false
	}
	return o, true
}

// Jostle implements physics.Jostler
func (o *Object) Jostle(force float64) {
	o.sway = min(1, o.sway+force)
}

// Sway is the current jostle amplitude in [0, 1]
func (o *Object) Sway() float64 { return o.sway }

func (o *Object) Physics() (*physics.Physics, bool) {
	return o.phys, o.phys != nil
}

func (o *Object) Checkpoint() (int, bool) {
	if o.typ != core.ObjectTarget {
		return 0, false
	}
	return o.door, true
}

// SetDoor sets the circuit order of a target
func (o *Object) SetDoor(n int) { o.door = max(0, n) }

// Destroy marks the object for removal at the end of the tick
func (o *Object) Destroy(cause core.Cause) {
	if o.dying {
		return
	}
	o.dying = true
	o.cause = cause
	o.log.Info().Str("cause", cause.String()).Msg("destroyed")
}

// Cause returns why a dying object was destroyed
func (o *Object) Cause() core.Cause { return o.cause }

func (o *Object) decay(rTime float64) {
	if o.sway > 0 {
		o.sway = vmath.Approach(o.sway, 0, swayDecay*rTime)
	}
}

// State returns the replication view of the object
func (o *Object) State() physics.State {
	if o.phys != nil {
		return o.phys.Snapshot()
	}
	return physics.State{
		ID:       o.id,
		Type:     o.typ,
		Position: o.pos,
		Rotation: o.rot,
		Land:     true,
	}
}
