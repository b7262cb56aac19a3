package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/vmath"
)

// checkTakeoff lifts a landed flyer off when it is asked to climb
func (p *Physics) checkTakeoff(intent mgl64.Vec3) {
	if !p.land || intent[1] <= 0 || p.reactorDepleted {
		return
	}
	if ceiling := p.deps.Terrain.FlyingHeight(); ceiling > 0 && p.floorHeight >= ceiling {
		return
	}
	p.land = false
	p.log.Debug().Msg("takeoff")
}

// floorAdapt clips the candidate position against terrain and water and
// tilts the body. It returns false when the body was destroyed.
func (p *Physics) floorAdapt(rTime float64, oldPos mgl64.Vec3, pos, angle *mgl64.Vec3) bool {
	t := p.deps.Terrain
	ground := t.Height(pos[0], pos[2])
	p.vertSpeed = (pos[1] - oldPos[1]) / rTime

	if p.trait.IsFlying() && !p.land {
		if !p.flyAdapt(pos, ground) {
			return false
		}
	} else {
		pos[1] = ground
		p.floorHeight = 0
		p.lin.CurrentSpeed[1] = 0
		p.lin.RealSpeed[1] = 0
	}

	if p.typ == TypeRace {
		p.raceSuspension(rTime, *pos, angle[1])
	}

	if !p.waterAdapt(*pos) {
		return false
	}

	if p.touchingGround() && t.IsLava(pos[0], pos[2]) {
		p.log.Info().Msg("destroyed by lava")
		p.body.Destroy(core.CauseLava)
		return false
	}

	p.tiltAdapt(rTime, *pos, angle)
	return true
}

// flyAdapt tracks altitude and the airborne to landed transition
func (p *Physics) flyAdapt(pos *mgl64.Vec3, ground float64) bool {
	h := pos[1] - ground

	if ceiling := p.deps.Terrain.FlyingHeight(); ceiling > 0 && h > ceiling {
		pos[1] = ground + ceiling
		h = ceiling
		p.lin.CurrentSpeed[1] = min(0, p.lin.CurrentSpeed[1])
	}

	steep := false
	if h < 0.5 {
		n := p.deps.Terrain.Normal(pos[0], pos[2])
		steep = n[1] < parameter.SteepSlopeNormalY
	}

	if h > 0 && !steep {
		p.floorHeight = h
		return true
	}

	impact := max(0, -p.vertSpeed)
	pos[1] = ground
	p.floorHeight = 0
	p.land = true
	p.lin.CurrentSpeed[1] = 0
	p.lin.RealSpeed[1] = 0

	p.sound(core.SoundLand, *pos, vmath.Norm01(impact*parameter.LandImpactSoundScale), 1)
	if impact > parameter.LandImpactParticle {
		for i := 0; i < 6; i++ {
			spread := mgl64.Vec3{p.deps.Rand.Spread(2), 0, p.deps.Rand.Spread(2)}
			p.particle(core.ParticleCrash, pos.Add(spread), mgl64.Vec3{spread[0], 1, spread[2]}, 1.5, 1)
		}
	}

	p.log.Debug().Float64("impact", impact).Bool("steep", steep).Msg("landed")
	return p.fallDamage(impact)
}

// fallDamage hurts a body that landed too fast and destroys it beyond twice the limit
func (p *Physics) fallDamage(impact float64) bool {
	limit := p.char.FallDamageSpeed
	if limit <= 0 || impact <= limit {
		return true
	}
	if impact > 2*limit {
		p.log.Info().Float64("impact", impact).Msg("destroyed by fall")
		p.body.Destroy(core.CauseFall)
		return false
	}
	if d, ok := p.body.Damageable(); ok {
		if d.Damage((impact-limit)/limit, core.CauseFall) {
			p.log.Info().Float64("impact", impact).Msg("destroyed by fall damage")
			p.body.Destroy(core.CauseFall)
			return false
		}
	}
	return true
}

// waterAdapt maintains the swim flag and drowns submerged ground bodies
func (p *Physics) waterAdapt(pos mgl64.Vec3) bool {
	level := p.deps.Terrain.WaterLevel()
	wasSwim := p.swim
	p.swim = pos[1] < level

	if p.swim && !wasSwim {
		p.sound(core.SoundSplash, pos, 0.6, 1)
		for i := 0; i < 4; i++ {
			up := mgl64.Vec3{p.deps.Rand.Spread(1), 2 + p.deps.Rand.Float64(), p.deps.Rand.Spread(1)}
			p.particle(core.ParticleSplash, mgl64.Vec3{pos[0], level, pos[2]}, up, 1, 0.8)
		}
	}

	if !p.swim || p.trait.Amphibious || p.trait.IsFlying() {
		return true
	}
	cat := p.trait.Category
	if cat != core.CategoryVehicle && cat != core.CategoryHuman {
		return true
	}
	if level-pos[1] > p.char.Height {
		p.log.Info().Float64("depth", level-pos[1]).Msg("drowned")
		p.body.Destroy(core.CauseDrown)
		return false
	}
	return true
}

// FloorAngle samples terrain under the four contact points and returns roll and pitch
func (p *Physics) FloorAngle(pos mgl64.Vec3, yaw float64) (roll, pitch float64) {
	front, back, left, right := p.char.ContactPoints()
	t := p.deps.Terrain
	sample := func(local mgl64.Vec2) float64 {
		w := vmath.RotateXZ(local, yaw)
		return t.Height(pos[0]+w[0], pos[2]+w[1])
	}

	if base := p.char.WheelFront + p.char.WheelBack; base > 0 {
		pitch = math.Atan2(sample(front)-sample(back), base)
	}
	if track := p.char.WheelLeft + p.char.WheelRight; track > 0 {
		roll = math.Atan2(sample(left)-sample(right), track)
	}
	return roll, pitch
}

// tiltAdapt blends roll and pitch toward terrain tilt or flight wobble
func (p *Physics) tiltAdapt(rTime float64, pos mgl64.Vec3, angle *mgl64.Vec3) {
	var roll, pitch float64

	if !p.trait.Upright {
		roll, pitch = p.FloorAngle(pos, angle[1])
	}

	if p.trait.IsFlying() {
		target := 0.0
		if !p.land {
			target = vmath.Norm01(p.floorHeight / parameter.FlightWobbleHeight)
		}
		p.wobble = vmath.Smooth(p.wobble, target, parameter.FlightWobbleSmooth*rTime)

		if !p.land {
			// Terrain tilt fades with altitude and vanishes toward the ceiling
			fade := 1 - p.wobble
			if ceiling := p.deps.Terrain.FlyingHeight(); ceiling > 0 {
				r := p.floorHeight / ceiling
				if r > parameter.CeilingTiltFade {
					fade *= vmath.Norm01((1 - r) / (1 - parameter.CeilingTiltFade))
				}
			}
			amp := parameter.FlightWobbleAmplitude * p.wobble
			roll = roll*fade + amp*math.Sin(p.time*1.7)
			pitch = pitch*fade + amp*math.Sin(p.time*2.3)
		}
	}

	if p.typ == TypeRace {
		roll += p.overTurn
	}

	p.lin.FinalInclin = mgl64.Vec3{roll, 0, pitch}
	k := parameter.InclinSmooth * rTime
	angle[0] = vmath.Smooth(angle[0], roll, k)
	angle[2] = vmath.Smooth(angle[2], pitch, k)
}
