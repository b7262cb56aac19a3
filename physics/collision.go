package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/vmath"
)

// worldSpheres places a body's crash spheres at the given pose
func worldSpheres(spheres []CrashSphere, pos, angle mgl64.Vec3) []CrashSphere {
	out := make([]CrashSphere, len(spheres))
	rot := vmath.RotationZXY(angle)
	for i, s := range spheres {
		s.Pos = rot.Mul3x1(s.Pos).Add(pos)
		out[i] = s
	}
	return out
}

// objectAdapt resolves the candidate position against every other body
func (p *Physics) objectAdapt(rTime float64, oldPos mgl64.Vec3, newPos, newAngle *mgl64.Vec3) Outcome {
	p.obstacle = false

	if p.body.IsDying() || !p.body.CollisionsEnabled() {
		return OutcomeMoved
	}
	if len(p.trait.Spheres) == 0 && !p.trait.Rectangular {
		return OutcomeMoved
	}

	angle := p.body.Rotation()
	ownNew := worldSpheres(p.trait.Spheres, *newPos, *newAngle)
	ownOld := worldSpheres(p.trait.Spheres, oldPos, angle)

	self := p.body.ID()
	outcome := OutcomeMoved
	collided := false
	var best cornerHit

	p.deps.Registry.Each(func(o Body) bool {
		if o.ID() == self || o.IsCarried() || o.IsDying() {
			return true
		}
		ot := o.Trait()

		if ot.JostleRadius > 0 && len(ownNew) > 0 {
			p.jostle(o, ownNew[0])
		}
		if ot.IsMarker() {
			p.marker(o, *newPos)
			return true
		}
		if !o.CollisionsEnabled() || (len(ot.Spheres) == 0 && len(ot.Lines) == 0) {
			return true
		}

		if p.trait.Rectangular {
			if ot.PassThrough {
				return true
			}
			if hit, ok := p.crashCorner(o, *newPos, *newAngle); ok && hit.adjust.Len() > best.adjust.Len() {
				best = hit
			}
			return true
		}

		switch p.crashSpheres(o, ownOld, ownNew) {
		case OutcomeDestroyed:
			outcome = OutcomeDestroyed
			return false
		case OutcomeHeld:
			collided = true
			outcome = OutcomeHeld
		}
		return true
	})

	if outcome == OutcomeDestroyed {
		return outcome
	}

	if best.body != nil {
		collided = true
		outcome = p.resolveCorner(best, newPos)
	}

	if collided {
		p.repeat = min(p.repeat+1, parameter.RepeatMax)
	} else {
		p.repeat = 0
	}
	return outcome
}

// repeatFactor damps force for collisions repeated on consecutive ticks
func (p *Physics) repeatFactor() float64 {
	return math.Pow(parameter.RepeatDamping, float64(p.repeat))
}

// crashSpheres tests every sphere pair. Pairs already overlapping at the old
// position are ignored so a body never wedges inside geometry.
func (p *Physics) crashSpheres(o Body, ownOld, ownNew []CrashSphere) Outcome {
	other := worldSpheres(o.Trait().Spheres, o.Position(), o.Rotation())

	for i, sn := range ownNew {
		so := ownOld[i]
		for _, os := range other {
			reach := sn.Radius + os.Radius
			if sn.Pos.Sub(os.Pos).Len() >= reach {
				continue
			}
			if so.Pos.Sub(os.Pos).Len() < reach {
				continue
			}
			return p.collide(o, sn, os)
		}
	}
	return OutcomeMoved
}

// collide applies damage rules and repulsion for one new sphere contact
func (p *Physics) collide(o Body, own, other CrashSphere) Outcome {
	vel := p.WorldVelocity()
	op, hasPhysics := o.Physics()
	if hasPhysics {
		vel = vel.Sub(op.WorldVelocity())
	}
	force := vel.Len() * other.Hardness * p.repeatFactor()

	p.exploOther(o, force)
	impact := p.exploHimself(o, force)

	p.noisy.Debug().
		Uint32("obstacle", uint32(o.ID())).
		Float64("force", force).
		Str("impact", impact.String()).
		Msg("collision")

	switch impact {
	case ImpactPassThrough:
		return OutcomeMoved
	case ImpactDestroyed:
		return OutcomeDestroyed
	}

	mid := own.Pos.Add(other.Pos).Mul(0.5)
	if force > parameter.MinImpactForce {
		p.sound(other.Sound, mid, vmath.Norm01(force/20), 1)
		p.sparks(mid, force)
	}

	if hasPhysics && o.Trait().Movable {
		p.repulse(op, own.Pos, other.Pos)
	}

	// Bounce back along the drive axis
	p.lin.CurrentSpeed[0] *= -parameter.PushRestitution
	p.lin.RealSpeed[0] = p.lin.CurrentSpeed[0]
	p.obstacle = true
	return OutcomeHeld
}

// repulse exchanges momentum with a movable body, weighted by mass
func (p *Physics) repulse(op *Physics, ownPos, otherPos mgl64.Vec3) {
	va := p.WorldVelocity()
	vb := op.WorldVelocity()
	na, nb, ok := elasticCollision(ownPos, otherPos, va, vb, p.char.Mass, op.char.Mass, parameter.PushRestitution)
	if !ok {
		return
	}
	p.Push(na.Sub(va))
	op.Push(nb.Sub(vb))
}

// jostle sways a brushed body proportionally to sphere overlap
func (p *Physics) jostle(o Body, own CrashSphere) {
	j, ok := o.Jostler()
	if !ok {
		return
	}
	center := o.Position().Add(mgl64.Vec3{0, own.Pos[1] - p.body.Position()[1], 0})
	reach := own.Radius + o.Trait().JostleRadius
	dist := own.Pos.Sub(center).Len()
	if dist >= reach {
		return
	}

	force := (1 - dist/reach) * parameter.JostleForceScale
	j.Jostle(force)

	if p.jostleTimer >= parameter.JostleSoundInterval && p.WorldVelocity().Len() > 0.5 {
		p.jostleTimer = 0
		p.sound(core.SoundJostle, center, vmath.Norm01(force), 1)
	}
}
