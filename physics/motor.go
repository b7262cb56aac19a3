package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/vmath"
)

// motorUpdate turns the intent into motion targets for both motions
func (p *Physics) motorUpdate(rTime float64) {
	intent := p.motor
	if p.lock || p.typ == TypeMass {
		intent = mgl64.Vec3{}
	}

	intent = p.gateEnergy(rTime, intent)

	if p.trait.IsFlying() {
		intent = p.gateFlight(rTime, intent)
	} else {
		intent[1] = 0
	}

	p.effective = intent

	p.lin.target(0, intent[0])
	p.lin.target(1, intent[1])
	p.lin.target(2, 0)
	p.cir.target(0, 0)
	p.cir.target(1, intent[2])
	p.cir.target(2, 0)

	switch p.typ {
	case TypeTank:
		// Tracks slow down while pivoting
		p.lin.MotorSpeed[0] *= 1 - 0.5*math.Abs(intent[2])
		p.lin.accel(0, intent[0])
	case TypeRace:
		p.raceMotor(rTime, intent)
	}
}

// gateEnergy zeroes drive and turn on an empty battery and drains energy otherwise
func (p *Physics) gateEnergy(rTime float64, intent mgl64.Vec3) mgl64.Vec3 {
	if !p.trait.UsesPower {
		return intent
	}
	pc, ok := p.body.Powered()
	if !ok {
		return intent
	}

	energy := pc.Energy()
	if energy <= 0 {
		intent[0] = 0
		intent[2] = 0
		if p.trait.IsFlying() && !p.land {
			intent[1] = -1
		} else {
			intent[1] = 0
		}
		return intent
	}

	use := min(intent.Len(), 1) * parameter.EnergyConsumption * p.char.EnergyUse * rTime
	if use > 0 {
		pc.SetEnergy(max(0, energy-use))
	}
	return intent
}

// gateFlight applies reactor range, flight ceiling and takeoff rules
func (p *Physics) gateFlight(rTime float64, intent mgl64.Vec3) mgl64.Vec3 {
	if p.trait.Flying == core.FlyJet {
		p.updateReactor(rTime)
		if p.reactorDepleted {
			intent[1] = -1
		}
	}

	if intent[1] > 0 {
		if ceiling := p.deps.Terrain.FlyingHeight(); ceiling > 0 {
			r := p.floorHeight / ceiling
			intent[1] *= vmath.Norm01(1 - r*r)
		}
	}

	p.checkTakeoff(intent)

	if p.land && intent[1] < 0 {
		intent[1] = 0
	}
	return intent
}

// updateReactor drains range in flight and recharges it on the ground, in water or against an obstacle
func (p *Physics) updateReactor(rTime float64) {
	if p.land || p.swim || p.obstacle {
		if p.char.ReactorRecharge > 0 {
			p.reactorRange = min(1, p.reactorRange+rTime/p.char.ReactorRecharge)
		}
	} else if p.char.ReactorRange > 0 {
		p.reactorRange = max(0, p.reactorRange-rTime/p.char.ReactorRange)
	}

	switch {
	case !p.reactorDepleted && p.reactorRange <= 0:
		p.reactorDepleted = true
		p.log.Info().Float64("floor", p.floorHeight).Msg("reactor depleted")
	case p.reactorDepleted && p.reactorRange > parameter.ReactorRestart:
		p.reactorDepleted = false
		p.log.Debug().Float64("range", p.reactorRange).Msg("reactor restarted")
	}
}

// raceMotor applies slow zones, soft ground, handbrake and burnout to the targets
func (p *Physics) raceMotor(rTime float64, intent mgl64.Vec3) {
	pos := p.body.Position()
	t := p.deps.Terrain

	hb := p.handbrake
	p.lin.MotorSpeed[0] *= vmath.Norm01(t.SlowFactor(pos[0], pos[2])) * (1 - hb)
	p.lin.accel(0, intent[0])

	p.hardness = t.Hardness(pos[0], pos[2])
	if p.hardness < parameter.RaceSoftHardness {
		soft := parameter.RaceSoftAccel + (1-parameter.RaceSoftAccel)*p.hardness/parameter.RaceSoftHardness
		p.lin.MotorAccel[0] *= soft
	}

	if hb > 0 {
		p.lin.MotorAccel[0] = max(p.lin.MotorAccel[0], p.lin.StopAccel[0]*(1+(parameter.HandbrakeStopFactor-1)*hb))
	}

	adv := p.lin.AdvanceSpeed[0]
	cur := math.Abs(p.lin.CurrentSpeed[0])
	slide := 0.0
	if adv > 0 {
		slide = vmath.Norm01((math.Abs(intent[0])*adv - cur) / adv)
		if hb > 0 {
			slide = max(slide, hb*vmath.Norm01(cur/adv))
		}
	}
	p.wheelSlide = slide

	// Oversteer
	p.cir.MotorSpeed[1] *= 1 + parameter.OversteerFactor*slide

	grip := p.char.Grip * (1 - (1-parameter.HandbrakeGrip)*hb)
	desired := p.lin.CurrentSpeed[0] * p.cir.RealSpeed[1] * 0.1 * (0.5 + slide)
	p.centriSpeed = vmath.Smooth(p.centriSpeed, desired, grip*rTime)
	p.lin.MotorSpeed[2] = p.centriSpeed
	p.lin.MotorAccel[2] = p.lin.StopAccel[0]

	p.overTurn = vmath.Smooth(p.overTurn, -p.centriSpeed*0.02, grip*rTime)
}

// terrainSlide projects the ground normal into the body frame for slope sliding
func (p *Physics) terrainSlide(pos, angle mgl64.Vec3) {
	p.lin.TerrainSpeed = mgl64.Vec3{}
	if !p.touchingGround() || p.swim {
		return
	}
	n := p.deps.Terrain.Normal(pos[0], pos[2])
	local := vmath.RotationZXY(mgl64.Vec3{0, angle[1], 0}).Transpose().Mul3x1(n)
	p.lin.TerrainSpeed[0] = local[0] * p.lin.TerrainForce[0]
	p.lin.TerrainSpeed[2] = local[2] * p.lin.TerrainForce[2]
}
