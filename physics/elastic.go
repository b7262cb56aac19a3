package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// elasticCollision computes post-impact velocities of two bodies along their
// center line. No change is reported for separating bodies.
func elasticCollision(posA, posB, velA, velB mgl64.Vec3, massA, massB, restitution float64) (mgl64.Vec3, mgl64.Vec3, bool) {
	delta := posB.Sub(posA)
	delta[1] = 0
	dist := delta.Len()
	if dist == 0 {
		return velA, velB, false
	}
	n := delta.Mul(1 / dist)

	vn := velA.Sub(velB).Dot(n)
	if vn <= 0 {
		return velA, velB, false
	}

	if massA <= 0 || massB <= 0 || math.IsInf(massA, 0) || math.IsInf(massB, 0) {
		return velA, velB, false
	}
	invA := 1 / massA
	invB := 1 / massB

	j := (1 + restitution) * vn / (invA + invB)
	return velA.Sub(n.Mul(j * invA)), velB.Add(n.Mul(j * invB)), true
}
