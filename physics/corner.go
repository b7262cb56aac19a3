package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/vmath"
)

// cornerHit is the positional correction required by one obstacle
type cornerHit struct {
	body     Body
	adjust   mgl64.Vec2
	contact  mgl64.Vec2
	hardness float64
	sound    core.SoundType
}

// hitbox returns the world XZ rectangle of the moving body
func (p *Physics) hitbox(pos, angle mgl64.Vec3) []mgl64.Vec2 {
	corners := p.char.Corners()
	out := make([]mgl64.Vec2, len(corners))
	for i, c := range corners {
		w := vmath.RotateXZ(c, angle[1])
		out[i] = mgl64.Vec2{pos[0] + w[0], pos[2] + w[1]}
	}
	return out
}

// crashCorner runs both corner tests against one obstacle and keeps the largest adjust
func (p *Physics) crashCorner(o Body, pos, angle mgl64.Vec3) (cornerHit, bool) {
	rect := p.hitbox(pos, angle)
	ot := o.Trait()
	hit := cornerHit{body: o}
	found := false

	for _, line := range ot.Lines {
		poly := placeLine(line, o.Position(), o.Rotation()[1])
		if adj, at, ok := crashCornerRect(rect, poly); ok && adj.Len() > hit.adjust.Len() {
			hit.adjust, hit.contact, hit.hardness, hit.sound = adj, at, line.Hardness, line.Sound
			found = true
		}
	}
	if len(ot.Lines) == 0 {
		for _, s := range worldSpheres(ot.Spheres, o.Position(), o.Rotation()) {
			if adj, at, ok := crashCornerCircle(rect, vmath.XZ(s.Pos), s.Radius); ok && adj.Len() > hit.adjust.Len() {
				hit.adjust, hit.contact, hit.hardness, hit.sound = adj, at, s.Hardness, s.Sound
				found = true
			}
		}
	}
	return hit, found
}

func placeLine(line CrashLine, pos mgl64.Vec3, yaw float64) []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(line.Points))
	for i, pt := range line.Points {
		w := vmath.RotateXZ(pt, yaw)
		out[i] = mgl64.Vec2{pos[0] + w[0], pos[2] + w[1]}
	}
	return out
}

// crashCornerRect tests own corners inside the obstacle polygon and obstacle
// corners inside the own rectangle. The adjust moves the body out.
func crashCornerRect(rect, poly []mgl64.Vec2) (adjust, contact mgl64.Vec2, ok bool) {
	for _, c := range rect {
		if d := vmath.PushOutOfPolygon(c, poly); d.Len() > adjust.Len() {
			adjust, contact, ok = d, c, true
		}
	}
	for _, c := range poly {
		// Own rectangle must move opposite to the push the obstacle corner would need
		if d := vmath.PushOutOfPolygon(c, rect); d.Len() > adjust.Len() {
			adjust, contact, ok = d.Mul(-1), c, true
		}
	}
	return adjust, contact, ok
}

// crashCornerCircle tests own corners inside an obstacle circle and the circle center inside the rectangle
func crashCornerCircle(rect []mgl64.Vec2, center mgl64.Vec2, radius float64) (adjust, contact mgl64.Vec2, ok bool) {
	for _, c := range rect {
		if d := vmath.PushOutOfCircle(c, center, radius); d.Len() > adjust.Len() {
			adjust, contact, ok = d, c, true
		}
	}
	n := len(rect)
	for i := 0; i < n; i++ {
		// Edge pierced by the circle
		q := vmath.ClosestOnSegment(center, rect[i], rect[(i+1)%n])
		gap := q.Sub(center)
		dist := gap.Len()
		if dist >= radius || dist < vmath.Epsilon {
			continue
		}
		if d := gap.Mul((radius - dist) / dist); d.Len() > adjust.Len() {
			adjust, contact, ok = d, q, true
		}
	}
	if vmath.PointInPolygon(center, rect) {
		d := vmath.PushOutOfPolygon(center, rect)
		dir := d.Mul(-1)
		if dir.Len() < vmath.Epsilon {
			dir = mgl64.Vec2{-1, 0}
		}
		if need := d.Len() + radius; need > adjust.Len() {
			adjust, contact, ok = dir.Normalize().Mul(need), center, true
		}
	}
	return adjust, contact, ok
}

// resolveCorner applies the winning adjust, reflects velocity and dispatches damage
func (p *Physics) resolveCorner(hit cornerHit, newPos *mgl64.Vec3) Outcome {
	vel := p.WorldVelocity()
	speed := vmath.XZ(vel).Len()
	force := speed * hit.hardness * p.repeatFactor()

	p.exploOther(hit.body, force)
	impact := p.exploHimself(hit.body, force)
	if impact == ImpactDestroyed {
		return OutcomeDestroyed
	}
	if impact == ImpactPassThrough {
		return OutcomeMoved
	}

	newPos[0] += hit.adjust[0]
	newPos[2] += hit.adjust[1]
	p.obstacle = true

	n := hit.adjust.Normalize()
	cos := 0.0
	if speed > vmath.Epsilon {
		cos = math.Abs(vmath.XZ(vel).Dot(n)) / speed
	}
	if cos > parameter.HeadOnCos {
		p.lin.CurrentSpeed[0] *= -parameter.HeadOnRestitution
	} else {
		p.lin.CurrentSpeed[0] *= parameter.GlancingDamping
	}
	p.lin.RealSpeed[0] = p.lin.CurrentSpeed[0]

	if p.typ == TypeRace && speed > parameter.ChocSpinSpeed {
		// Spin direction follows the side of the wall normal relative to travel
		turn := vmath.Direction(math.Atan2(vel[2], vel[0]), math.Atan2(n[1], n[0]))
		p.chocSpin = vmath.Sign(turn) * min(parameter.ChocSpinMax, (speed-parameter.ChocSpinSpeed)*0.2)
		p.noisy.Debug().Float64("spin", p.chocSpin).Msg("crash spin")
	}

	if op, ok := hit.body.Physics(); ok && hit.body.Trait().Movable {
		p.repulse(op, *newPos, op.body.Position())
	}

	at := vmath.FromXZ(hit.contact, newPos[1]+1)
	if force > parameter.MinImpactForce {
		p.sound(hit.sound, at, vmath.Norm01(force/20), 1)
		p.sparks(at, force)
	}
	return OutcomeMoved
}
