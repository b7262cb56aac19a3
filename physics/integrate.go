package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/vmath"
)

// integrate advances position and orientation by one explicit Euler step
func (p *Physics) integrate(rTime float64, pos, angle mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	world := vmath.RotationZXY(angle).Mul3x1(p.lin.RealSpeed)
	newPos := pos.Add(world.Mul(rTime))

	turn := p.cir.RealSpeed.Mul(rTime)
	turn[1] += p.chocSpin * rTime
	newAngle := angle.Add(turn)
	newAngle[1] = vmath.NormAngle(newAngle[1])

	// Reversing race cars swing around the rear axle
	if p.typ == TypeRace && p.lin.RealSpeed[0] < 0 && p.char.WheelBack > 0 {
		rear := vmath.Transform(mgl64.Vec3{-p.char.WheelBack, 0, 0}, newPos, mgl64.Vec3{0, angle[1], 0})
		newPos = vmath.RotateAround(newPos, rear, turn[1])
	}

	return newPos, newAngle
}
