package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/vmath"
)

type loopState uint8

const (
	loopStopped loopState = iota
	loopIdle
	loopFull
)

// effectState tracks what was last sent to the sinks so changes only are forwarded
type effectState struct {
	loop      loopState
	loopFreq  float64
	motorOn   bool
	lightSent bool
}

func (p *Physics) particle(kind core.ParticleType, pos, speed mgl64.Vec3, size, duration float64) {
	p.deps.Particles.Emit(kind, pos, speed, size, duration)
}

func (p *Physics) sound(kind core.SoundType, pos mgl64.Vec3, amplitude, frequency float64) {
	if p.silent || kind == core.SoundNone || amplitude <= 0 {
		return
	}
	p.deps.Sounds.Play(kind, pos, amplitude, frequency)
}

func (p *Physics) sparks(at mgl64.Vec3, force float64) {
	n := min(8, 1+int(force/4))
	for i := 0; i < n; i++ {
		dir := mgl64.Vec3{p.deps.Rand.Spread(3), p.deps.Rand.Range(1, 3), p.deps.Rand.Spread(3)}
		p.particle(core.ParticleSpark, at, dir, 0.5, 0.4)
	}
}

func (p *Physics) pyro(at mgl64.Vec3, kind core.ParticleType) {
	for i := 0; i < 10; i++ {
		dir := mgl64.Vec3{p.deps.Rand.Spread(2), p.deps.Rand.Range(2, 5), p.deps.Rand.Spread(2)}
		p.particle(kind, at, dir, 1, 1.2)
	}
}

func (p *Physics) explosion(b Body) {
	at := b.Position()
	p.sound(core.SoundExplosion, at, 1, 1)
	for i := 0; i < 16; i++ {
		dir := mgl64.Vec3{p.deps.Rand.Spread(6), p.deps.Rand.Range(2, 8), p.deps.Rand.Spread(6)}
		p.particle(core.ParticleDebris, at, dir, 1, 1.5)
	}
}

func (p *Physics) stopMotorLoop() {
	if p.fx.loop != loopStopped {
		p.deps.Sounds.StopLoop(p.body.ID())
		p.fx.loop = loopStopped
	}
}

// effectUpdate drives the motor loop, motor light and continuous particles
func (p *Physics) effectUpdate(rTime float64, pos mgl64.Vec3) {
	eff := p.effective
	active := math.Abs(eff[0]) > 0.05 || math.Abs(eff[1]) > 0.05 || math.Abs(eff[2]) > 0.05

	if !p.fx.lightSent || active != p.fx.motorOn {
		p.fx.motorOn = active
		p.fx.lightSent = true
		p.body.SetMotorLight(active)
	}

	p.updateMotorLoop(active)

	speed := math.Abs(p.lin.RealSpeed[0])

	if p.trait.WheelParticles && p.touchingGround() && !p.swim && speed > 2 && p.dustTimer > 0.1 {
		p.dustTimer = 0
		rear := vmath.Transform(mgl64.Vec3{-p.char.WheelBack, 0, 0}, pos, p.body.Rotation())
		p.particle(core.ParticleDust, rear, mgl64.Vec3{p.deps.Rand.Spread(1), 0.5, p.deps.Rand.Spread(1)}, 0.8, 0.8)
	}

	if p.typ == TypeRace && p.wheelSlide > parameter.WheelSlideParticle && p.touchingGround() {
		rear := vmath.Transform(mgl64.Vec3{-p.char.WheelBack, 0, 0}, pos, p.body.Rotation())
		p.particle(core.ParticleSmoke, rear, mgl64.Vec3{0, 1, 0}, 1+p.wheelSlide, 1)
		if p.skidTimer > 0.3 {
			p.skidTimer = 0
			p.sound(core.SoundSkid, rear, p.wheelSlide, 1)
		}
	}

	if p.trait.Flying == core.FlyJet && !p.land && eff[1] > 0 {
		p.particle(core.ParticleFlame, pos.Sub(mgl64.Vec3{0, 0.5, 0}), mgl64.Vec3{0, -4, 0}, 0.6, 0.3)
	}

	if p.swim && speed > 1 && p.deps.Rand.Float64() < rTime*4 {
		p.particle(core.ParticleBubble, pos, mgl64.Vec3{0, 1, 0}, 0.4, 1.5)
	}
}

func (p *Physics) updateMotorLoop(active bool) {
	ms := p.trait.MotorSound
	if ms.Idle == core.SoundNone || p.silent || p.body.IsDying() {
		p.stopMotorLoop()
		return
	}
	if pc, ok := p.body.Powered(); ok && p.trait.UsesPower && pc.Energy() <= 0 {
		p.stopMotorLoop()
		return
	}

	want := loopIdle
	kind := ms.Idle
	if active {
		want = loopFull
		kind = ms.Full
	}

	adv := max(p.lin.AdvanceSpeed[0], vmath.Epsilon)
	freq := 0.8 + 0.6*vmath.Norm01(math.Abs(p.lin.RealSpeed[0])/adv)
	if want == p.fx.loop && math.Abs(freq-p.fx.loopFreq) < 0.05 {
		return
	}
	amp := 0.4
	if want == loopFull {
		amp = 0.7
	}
	p.deps.Sounds.Loop(p.body.ID(), kind, amp, freq)
	p.fx.loop = want
	p.fx.loopFreq = freq
}
