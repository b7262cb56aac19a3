package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/vmath"
)

// suspension is the RACE visual model: a vertical mass-spring for the body
// and a decaying force accumulator per axle
type suspension struct {
	slots    [2][parameter.SuspensionSlots]float64
	slot     int
	slotTime float64
	energy   [2]float64
	travel   [2]float64

	ready      bool
	bodyY      float64
	lastY      float64
	graviSpeed float64
	lift       float64
	glu        float64

	lastGround [2]float64
	lastVel    [2]float64
}

// push adds compression force to one axle, 0 front and 1 back
func (s *suspension) push(side int, force float64) {
	if force > 0 {
		s.slots[side][s.slot] += force
	}
}

// advance rotates the accumulator ring, clearing the slots that expire
func (s *suspension) advance(rTime float64) {
	s.slotTime += rTime
	for n := 0; s.slotTime >= parameter.SuspensionSlotTime && n < parameter.SuspensionSlots; n++ {
		s.slotTime -= parameter.SuspensionSlotTime
		s.slot = (s.slot + 1) % parameter.SuspensionSlots
		s.slots[0][s.slot] = 0
		s.slots[1][s.slot] = 0
	}
	if s.slotTime >= parameter.SuspensionSlotTime {
		s.slotTime = 0
	}
}

func (s *suspension) sum(side int) float64 {
	total := 0.0
	for _, f := range s.slots[side] {
		total += f
	}
	return total
}

// raceSuspension follows the ground with a mass-spring body and derives axle travel
func (p *Physics) raceSuspension(rTime float64, pos mgl64.Vec3, yaw float64) {
	s := &p.susp
	ground := pos[1]

	if !s.ready {
		s.ready = true
		s.bodyY = ground
		s.lastY = ground
		front, back := p.axleHeights(pos, yaw)
		s.lastGround = [2]float64{front, back}
	}

	// Body flies off crests when the ground falls away faster than gravity
	groundVel := (ground - s.lastY) / rTime
	s.lastY = ground
	s.graviSpeed -= parameter.Gravity * rTime
	s.bodyY += s.graviSpeed * rTime
	if s.bodyY <= ground {
		if -s.graviSpeed > parameter.GraviGluSpeed {
			s.glu = parameter.GraviGluDuration
			p.noisy.Debug().Float64("speed", -s.graviSpeed).Msg("hard landing")
			s.push(0, -s.graviSpeed)
			s.push(1, -s.graviSpeed)
		}
		s.bodyY = ground
		s.graviSpeed = groundVel
		if s.glu > 0 {
			s.graviSpeed = min(0, groundVel)
		}
	}
	s.lift = s.bodyY - ground

	// Axle compression from ground acceleration under each contact point
	front, back := p.axleHeights(pos, yaw)
	heights := [2]float64{front, back}
	for side := 0; side < 2; side++ {
		vel := (heights[side] - s.lastGround[side]) / rTime
		accel := (vel - s.lastVel[side]) / rTime
		s.push(side, accel*rTime)
		s.lastGround[side] = heights[side]
		s.lastVel[side] = vel
	}

	s.advance(rTime)

	stiff := p.char.SuspStiffness
	if stiff <= 0 {
		return
	}
	decay := math.Exp(-parameter.SuspensionDecay * rTime)
	damp := vmath.Norm01(p.char.SuspDamping * rTime)
	for side := 0; side < 2; side++ {
		s.energy[side] = s.energy[side]*decay + (s.sum(side)-s.energy[side]*decay)*damp
		s.travel[side] = -vmath.Clamp(s.energy[side]/stiff, 0, p.char.SuspStroke)
	}
}

func (p *Physics) axleHeights(pos mgl64.Vec3, yaw float64) (front, back float64) {
	t := p.deps.Terrain
	f := vmath.RotateXZ(mgl64.Vec2{p.char.WheelFront, 0}, yaw)
	b := vmath.RotateXZ(mgl64.Vec2{-p.char.WheelBack, 0}, yaw)
	return t.Height(pos[0]+f[0], pos[2]+f[1]), t.Height(pos[0]+b[0], pos[2]+b[1])
}
