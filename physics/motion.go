package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/profile"
	"github.com/lixenwraith/rover/vmath"
)

// Type re-exports the simulation profile selector
type Type = core.PhysicsType

const (
	TypeNormal = core.PhysicsNormal
	TypeMass   = core.PhysicsMass
	TypeRace   = core.PhysicsRace
	TypeTank   = core.PhysicsTank
)

// CrashSphere and CrashLine are the collision primitives read from traits
type (
	CrashSphere = core.CrashSphere
	CrashLine   = core.CrashLine
)

// Motion is the kinematic bundle of one motion kind (linear or circular).
// RealSpeed is what integration applies; CurrentSpeed trails MotorSpeed
// at MotorAccel.
type Motion struct {
	AdvanceAccel mgl64.Vec3
	RecedeAccel  mgl64.Vec3
	StopAccel    mgl64.Vec3
	MotorAccel   mgl64.Vec3
	TerrainForce mgl64.Vec3
	AdvanceSpeed mgl64.Vec3
	RecedeSpeed  mgl64.Vec3
	MotorSpeed   mgl64.Vec3
	CurrentSpeed mgl64.Vec3
	TerrainSpeed mgl64.Vec3
	TerrainSlide mgl64.Vec3
	RealSpeed    mgl64.Vec3
	RealAccel    mgl64.Vec3
	FinalInclin  mgl64.Vec3
}

func motionFrom(mp profile.MotionProfile) Motion {
	return Motion{
		AdvanceAccel: mp.AdvanceAccel,
		RecedeAccel:  mp.RecedeAccel,
		StopAccel:    mp.StopAccel,
		AdvanceSpeed: mp.AdvanceSpeed,
		RecedeSpeed:  mp.RecedeSpeed,
		TerrainForce: mp.TerrainForce,
		TerrainSlide: mp.TerrainSlide,
	}
}

// Mode selects a Motion field for the generic accessors
type Mode uint8

const (
	ModeAdvanceAccel Mode = iota
	ModeRecedeAccel
	ModeStopAccel
	ModeMotorAccel
	ModeTerrainForce
	ModeAdvanceSpeed
	ModeRecedeSpeed
	ModeMotorSpeed
	ModeCurrentSpeed
	ModeTerrainSpeed
	ModeTerrainSlide
	ModeRealSpeed
	ModeRealAccel
	ModeFinalInclin
)

// Axis selects one vector component
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (m *Motion) field(mode Mode) *mgl64.Vec3 {
	switch mode {
	case ModeAdvanceAccel:
		return &m.AdvanceAccel
	case ModeRecedeAccel:
		return &m.RecedeAccel
	case ModeStopAccel:
		return &m.StopAccel
	case ModeMotorAccel:
		return &m.MotorAccel
	case ModeTerrainForce:
		return &m.TerrainForce
	case ModeAdvanceSpeed:
		return &m.AdvanceSpeed
	case ModeRecedeSpeed:
		return &m.RecedeSpeed
	case ModeMotorSpeed:
		return &m.MotorSpeed
	case ModeCurrentSpeed:
		return &m.CurrentSpeed
	case ModeTerrainSpeed:
		return &m.TerrainSpeed
	case ModeTerrainSlide:
		return &m.TerrainSlide
	case ModeRealSpeed:
		return &m.RealSpeed
	case ModeRealAccel:
		return &m.RealAccel
	case ModeFinalInclin:
		return &m.FinalInclin
	}
	return nil
}

// Get returns the selected field, zero for an unknown mode
func (m *Motion) Get(mode Mode) mgl64.Vec3 {
	if f := m.field(mode); f != nil {
		return *f
	}
	return mgl64.Vec3{}
}

// Set writes the selected field; NaN components become zero
func (m *Motion) Set(mode Mode, v mgl64.Vec3) {
	if f := m.field(mode); f != nil {
		*f = vmath.SanitizeVec3(v)
	}
}

// SetAxis writes one component of the selected field
func (m *Motion) SetAxis(mode Mode, axis Axis, v float64) {
	if f := m.field(mode); f != nil && axis <= AxisZ {
		f[axis] = vmath.Sanitize(v)
	}
}

// update blends CurrentSpeed toward MotorSpeed without overshoot and derives RealSpeed
func (m *Motion) update(rTime float64) {
	if rTime <= 0 {
		return
	}
	for i := 0; i < 3; i++ {
		m.CurrentSpeed[i] = vmath.Approach(m.CurrentSpeed[i], m.MotorSpeed[i], m.MotorAccel[i]*rTime)

		rs := m.CurrentSpeed[i]
		slide := m.TerrainSlide[i]
		if ts := m.TerrainSpeed[i]; ts > slide {
			rs += ts - slide
		} else if ts < -slide {
			rs += ts + slide
		}

		m.RealAccel[i] = (rs - m.RealSpeed[i]) / rTime
		m.RealSpeed[i] = rs
	}
}

// target picks acceleration and speed for one axis from a normalized intent
func (m *Motion) target(axis int, intent float64) {
	if intent >= 0 {
		m.MotorSpeed[axis] = intent * m.AdvanceSpeed[axis]
	} else {
		m.MotorSpeed[axis] = intent * m.RecedeSpeed[axis]
	}
	m.accel(axis, intent)
}

// accel selects the acceleration reaching the current MotorSpeed: advance or
// recede while speeding up in the intent direction, stop otherwise.
// Call it again after scaling MotorSpeed.
func (m *Motion) accel(axis int, intent float64) {
	speed := m.MotorSpeed[axis]
	cur := m.CurrentSpeed[axis]
	switch {
	case intent > 0 && cur < speed:
		m.MotorAccel[axis] = m.AdvanceAccel[axis]
	case intent < 0 && cur > speed:
		m.MotorAccel[axis] = m.RecedeAccel[axis]
	default:
		m.MotorAccel[axis] = m.StopAccel[axis]
	}
}
