package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
)

func TestSphereContactHoldsPosition(t *testing.T) {
	r := newRig()
	r.add(2, core.ObjectWheeled, mgl64.Vec3{7, 0, 0})
	a := r.add(1, core.ObjectWheeled, mgl64.Vec3{0.9, 0, 0})
	p := a.phys
	p.SetLinMotionAxis(ModeCurrentSpeed, AxisX, 2)
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 0})

	if !p.Tick(0.1) {
		t.Fatal("unexpected destruction")
	}
	if a.pos != (mgl64.Vec3{0.9, 0, 0}) {
		t.Errorf("Expected held position, got %v", a.pos)
	}
	if v := p.LinMotion(ModeCurrentSpeed)[0]; v >= 0 {
		t.Errorf("Expected bounce, speed %f", v)
	}
	if r.sounds.count(core.SoundImpactMetal) != 1 {
		t.Errorf("Expected one impact sound, got %d", r.sounds.count(core.SoundImpactMetal))
	}
}

func TestExistingOverlapIgnored(t *testing.T) {
	r := newRig()
	r.add(2, core.ObjectWheeled, mgl64.Vec3{7, 0, 0})
	a := r.add(1, core.ObjectWheeled, mgl64.Vec3{4, 0, 0})
	p := a.phys
	p.SetLinMotionAxis(ModeCurrentSpeed, AxisX, 2)
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 0})

	p.Tick(0.1)
	if a.pos[0] <= 4 {
		t.Errorf("Overlapping body must move freely, x %f", a.pos[0])
	}
	if len(r.sounds.played) != 0 {
		t.Errorf("Expected no impact, got %d sounds", len(r.sounds.played))
	}
}

func TestCollisionDestroysWithoutBounce(t *testing.T) {
	r := newRig()
	r.add(2, core.ObjectFactory, mgl64.Vec3{10.5, 0, 0})
	a := r.add(1, core.ObjectWheeled, mgl64.Vec3{})
	a.damageable = true
	a.health = 0.01
	p := a.phys
	p.SetLinMotionAxis(ModeCurrentSpeed, AxisX, 30)
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 0})

	if p.Tick(0.1) {
		t.Fatal("Expected destruction")
	}
	if a.destroyed != core.CauseCollision {
		t.Errorf("Expected collision cause, got %s", a.destroyed)
	}
	if a.pos != (mgl64.Vec3{}) || a.rot != (mgl64.Vec3{}) {
		t.Errorf("Destroyed body was moved: pos %v rot %v", a.pos, a.rot)
	}
	if v := p.LinMotion(ModeRealSpeed)[0]; v <= 0 {
		t.Errorf("Speed must not be reflected on destruction, got %f", v)
	}
	if r.particles.emitted[core.ParticleDebris] == 0 && r.particles.emitted[core.ParticleCrash] == 0 {
		t.Error("Expected explosion particles")
	}
}

func TestCollisionDamagesObstacle(t *testing.T) {
	r := newRig()
	obstacle := r.add(2, core.ObjectAnt, mgl64.Vec3{6, 0, 0})
	obstacle.damageable = true
	a := r.add(1, core.ObjectWheeled, mgl64.Vec3{})
	p := a.phys
	p.SetLinMotionAxis(ModeCurrentSpeed, AxisX, 30)
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 0})

	p.Tick(0.1)
	if obstacle.health >= 1 {
		t.Errorf("Expected obstacle damage, health %f", obstacle.health)
	}
}

func TestPassThroughIgnored(t *testing.T) {
	r := newRig()
	r.add(2, core.ObjectWorm, mgl64.Vec3{4.6, 0, 0})
	a := r.add(1, core.ObjectWheeled, mgl64.Vec3{})
	p := a.phys
	p.SetLinMotionAxis(ModeCurrentSpeed, AxisX, 5)
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 0})

	p.Tick(0.1)
	if a.pos[0] <= 0 {
		t.Errorf("Expected free motion through a pass-through body, x %f", a.pos[0])
	}
	if v := p.LinMotion(ModeCurrentSpeed)[0]; v <= 0 {
		t.Errorf("Pass-through must not bounce, speed %f", v)
	}
}

func TestRepeatedCollisionDamping(t *testing.T) {
	r := newRig()
	r.add(2, core.ObjectWheeled, mgl64.Vec3{7, 0, 0})
	a := r.add(1, core.ObjectWheeled, mgl64.Vec3{0.9, 0, 0})
	p := a.phys
	p.SetLinMotionAxis(ModeCurrentSpeed, AxisX, 2)
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 0})

	p.Tick(0.1)
	if p.repeat != 1 {
		t.Fatalf("Expected repeat counter 1, got %d", p.repeat)
	}
	if f := p.repeatFactor(); !approx(f, 0.5) {
		t.Errorf("Expected damping 0.5, got %f", f)
	}

	p.SetMotorSpeed(mgl64.Vec3{})
	p.SetLinMotion(ModeCurrentSpeed, mgl64.Vec3{})
	p.SetLinMotion(ModeRealSpeed, mgl64.Vec3{})
	p.Tick(0.1)
	if p.repeat != 0 {
		t.Errorf("Expected reset after a free tick, got %d", p.repeat)
	}
}

func TestRectangleHeadOn(t *testing.T) {
	r := newRig()
	r.add(2, core.ObjectBarrier, mgl64.Vec3{4, 0, 0}).rot = mgl64.Vec3{0, math.Pi / 2, 0}
	a := r.add(1, core.ObjectRaceCar, mgl64.Vec3{})
	p := a.phys
	p.SetLinMotionAxis(ModeCurrentSpeed, AxisX, 5)
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 0})

	if !p.Tick(0.05) {
		t.Fatal("unexpected destruction")
	}
	// Moved 0.3125 then pushed back to the barrier face at 3.4
	if math.Abs(a.pos[0]-0.2) > 1e-6 {
		t.Errorf("Expected x 0.2, got %f", a.pos[0])
	}
	if math.Abs(a.pos[2]) > 1e-6 {
		t.Errorf("Expected no lateral adjust, got %f", a.pos[2])
	}
	if v := p.LinMotion(ModeCurrentSpeed)[0]; math.Abs(v+1.875) > 1e-6 {
		t.Errorf("Expected head-on reflection -1.875, got %f", v)
	}
}

func TestRectangleKeepsLargestCorrection(t *testing.T) {
	r := newRig()
	r.add(2, core.ObjectBarrier, mgl64.Vec3{3.9, 0, -3}).rot = mgl64.Vec3{0, math.Pi / 2, 0}
	r.add(3, core.ObjectBarrier, mgl64.Vec3{3.8, 0, 3}).rot = mgl64.Vec3{0, math.Pi / 2, 0}
	a := r.add(1, core.ObjectRaceCar, mgl64.Vec3{})
	p := a.phys
	p.SetLinMotionAxis(ModeCurrentSpeed, AxisX, 5)
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 0})

	p.Tick(0.05)
	if math.Abs(a.pos[0]) > 1e-6 {
		t.Errorf("Expected the deeper barrier to win with x 0, got %f", a.pos[0])
	}
}

func TestCrashCornerRect(t *testing.T) {
	rect := []mgl64.Vec2{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}

	tests := []struct {
		name   string
		poly   []mgl64.Vec2
		adjust mgl64.Vec2
		hit    bool
	}{
		{
			name:   "obstacle corners inside",
			poly:   []mgl64.Vec2{{0.8, -0.5}, {3, -0.5}, {3, 0.5}, {0.8, 0.5}},
			adjust: mgl64.Vec2{-0.2, 0},
			hit:    true,
		},
		{
			name:   "own corner inside",
			poly:   []mgl64.Vec2{{0.9, -3}, {3, -3}, {3, 0}, {0.9, 0}},
			adjust: mgl64.Vec2{-0.1, 0},
			hit:    true,
		},
		{
			name: "apart",
			poly: []mgl64.Vec2{{2, -1}, {3, -1}, {3, 1}, {2, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj, _, ok := crashCornerRect(rect, tt.poly)
			if ok != tt.hit {
				t.Fatalf("hit %v, want %v", ok, tt.hit)
			}
			if !approx(adj[0], tt.adjust[0]) || !approx(adj[1], tt.adjust[1]) {
				t.Errorf("adjust %v, want %v", adj, tt.adjust)
			}
		})
	}
}

func TestCrashCornerCircle(t *testing.T) {
	rect := []mgl64.Vec2{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}

	adj, _, ok := crashCornerCircle(rect, mgl64.Vec2{1.5, 0}, 1)
	if !ok {
		t.Fatal("Expected edge contact")
	}
	if !approx(adj[0], -0.5) || !approx(adj[1], 0) {
		t.Errorf("adjust %v, want (-0.5, 0)", adj)
	}

	if _, _, ok := crashCornerCircle(rect, mgl64.Vec2{5, 0}, 1); ok {
		t.Error("Expected no contact")
	}
}

func TestJostle(t *testing.T) {
	r := newRig()
	plant := r.add(2, core.ObjectPlant, mgl64.Vec3{})
	a := r.add(1, core.ObjectWheeled, mgl64.Vec3{-2, 0, 0})
	p := a.phys
	p.SetLinMotionAxis(ModeCurrentSpeed, AxisX, 5)
	p.SetMotorSpeed(mgl64.Vec3{0.3, 0, 0})

	for i := 0; i < 10; i++ {
		p.Tick(0.05)
	}
	if plant.jostled <= 0 {
		t.Error("Expected jostle force")
	}
	n := r.sounds.count(core.SoundJostle)
	if n < 1 || n > 3 {
		t.Errorf("Expected rate-limited jostle sound, got %d", n)
	}
	if plant.dying {
		t.Error("Jostled plant must survive")
	}
}

func TestWaypointCollected(t *testing.T) {
	tests := []struct {
		typ     core.ObjectType
		collect bool
	}{
		{core.ObjectWheeled, true},
		{core.ObjectHuman, true},
		{core.ObjectAnt, false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			r := newRig()
			wp := r.add(2, core.ObjectWaypoint, mgl64.Vec3{2, 0, 0})
			r.add(1, tt.typ, mgl64.Vec3{}).phys.Tick(0.05)

			if wp.dying != tt.collect {
				t.Fatalf("collected %v, want %v", wp.dying, tt.collect)
			}
			if tt.collect && wp.destroyed != core.CauseCheckpoint {
				t.Errorf("Expected checkpoint cause, got %s", wp.destroyed)
			}
		})
	}
}

func TestCarriedAndDyingSkipped(t *testing.T) {
	r := newRig()
	held := r.add(2, core.ObjectWheeled, mgl64.Vec3{7, 0, 0})
	held.carried = true
	a := r.add(1, core.ObjectWheeled, mgl64.Vec3{0.9, 0, 0})
	p := a.phys
	p.SetLinMotionAxis(ModeCurrentSpeed, AxisX, 2)
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 0})

	p.Tick(0.1)
	if a.pos[0] <= 0.9 {
		t.Errorf("Carried obstacle must be ignored, x %f", a.pos[0])
	}
}

func TestCollisionUsesGroundedCandidate(t *testing.T) {
	r := newRig()
	r.terrain.height = func(x, z float64) float64 {
		if x >= 2 {
			return 4
		}
		return 0
	}
	r.add(2, core.ObjectWheeled, mgl64.Vec3{7.5, 4, 0})
	a := r.add(1, core.ObjectWheeled, mgl64.Vec3{1.95, 0, 0})
	p := a.phys
	p.SetLinMotionAxis(ModeCurrentSpeed, AxisX, 2)
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 0})

	// Climbing the step puts the spheres in reach of the parked car
	if !p.Tick(0.1) {
		t.Fatal("unexpected destruction")
	}
	if a.pos != (mgl64.Vec3{1.95, 0, 0}) {
		t.Errorf("Expected held position on the lower ground, got %v", a.pos)
	}
	if n := r.sounds.count(core.SoundImpactMetal); n != 1 {
		t.Errorf("Expected one impact sound, got %d", n)
	}
}
