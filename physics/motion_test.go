package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
)

func TestMotionBlendMonotonic(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		target float64
		accel  float64
		rTime  float64
	}{
		{"accelerate", 0, 20, 5, 0.3},
		{"decelerate", 20, 3, 7, 0.11},
		{"reverse", 4, -10, 9, 0.05},
		{"large step", 0, 1, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Motion
			m.CurrentSpeed[0] = tt.start
			m.MotorSpeed[0] = tt.target
			m.MotorAccel[0] = tt.accel

			prevGap := tt.target - tt.start
			for i := 0; i < 200; i++ {
				m.update(tt.rTime)
				gap := tt.target - m.CurrentSpeed[0]
				if gap*prevGap < 0 {
					t.Fatalf("step %d overshot: current %f target %f", i, m.CurrentSpeed[0], tt.target)
				}
				if abs(gap) > abs(prevGap) {
					t.Fatalf("step %d moved away: gap %f previous %f", i, gap, prevGap)
				}
				prevGap = gap
			}
			if m.CurrentSpeed[0] != tt.target {
				t.Errorf("Expected to settle on %f, got %f", tt.target, m.CurrentSpeed[0])
			}
		})
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestMotionTerrainSlide(t *testing.T) {
	var m Motion
	m.TerrainSlide = mgl64.Vec3{4, 0, 4}

	m.TerrainSpeed = mgl64.Vec3{3, 0, 0}
	m.update(0.1)
	if m.RealSpeed[0] != 0 {
		t.Errorf("Terrain speed below slide threshold must not move, got %f", m.RealSpeed[0])
	}

	m.TerrainSpeed = mgl64.Vec3{6, 0, -5}
	m.update(0.1)
	if !approx(m.RealSpeed[0], 2) || !approx(m.RealSpeed[2], -1) {
		t.Errorf("Expected slide excess (2, -1), got (%f, %f)", m.RealSpeed[0], m.RealSpeed[2])
	}
	if !approx(m.RealAccel[0], 20) {
		t.Errorf("Expected real accel 20, got %f", m.RealAccel[0])
	}
}

func TestMotionAccessors(t *testing.T) {
	r := newRig()
	b := r.add(1, core.ObjectWheeled, mgl64.Vec3{})
	p := b.phys

	p.SetLinMotion(ModeAdvanceSpeed, mgl64.Vec3{7, 8, 9})
	if got := p.LinMotion(ModeAdvanceSpeed); got != (mgl64.Vec3{7, 8, 9}) {
		t.Errorf("Unexpected advance speed %v", got)
	}

	p.SetCirMotionAxis(ModeAdvanceAccel, AxisY, 2.5)
	if got := p.CirMotion(ModeAdvanceAccel)[1]; got != 2.5 {
		t.Errorf("Expected circular accel 2.5, got %f", got)
	}

	p.SetLinMotionAxis(ModeStopAccel, AxisX, nan())
	if got := p.LinMotion(ModeStopAccel)[0]; got != 0 {
		t.Errorf("NaN must be sanitized to 0, got %f", got)
	}
}

// TestFourTicksToCruise drives a grounded vehicle at full throttle with rTime = 1
func TestFourTicksToCruise(t *testing.T) {
	r := newRig()
	b := r.add(1, core.ObjectWheeled, mgl64.Vec3{})
	p := b.phys

	p.SetLinMotionAxis(ModeAdvanceAccel, AxisX, 5)
	p.SetLinMotionAxis(ModeAdvanceSpeed, AxisX, 20)
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 0})

	want := []float64{5, 10, 15, 20, 20, 20}
	for i, w := range want {
		if !p.Tick(1) {
			t.Fatalf("tick %d: unexpected destruction", i)
		}
		got := p.LinMotion(ModeCurrentSpeed)[0]
		if got != w {
			t.Errorf("tick %d: expected current speed %f, got %f", i+1, w, got)
		}
		if got > 20 {
			t.Fatalf("tick %d: exceeded cap: %f", i+1, got)
		}
	}
}

func TestPauseSkipsTick(t *testing.T) {
	r := newRig()
	b := r.add(1, core.ObjectWheeled, mgl64.Vec3{1, 0, 1})
	p := b.phys
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 1})

	r.pause.paused = true
	for i := 0; i < 5; i++ {
		if !p.Tick(0.1) {
			t.Fatal("paused tick must report alive")
		}
	}
	if b.pos != (mgl64.Vec3{1, 0, 1}) {
		t.Errorf("Position changed while paused: %v", b.pos)
	}
	if p.LinMotion(ModeCurrentSpeed) != (mgl64.Vec3{}) {
		t.Errorf("Speed changed while paused: %v", p.LinMotion(ModeCurrentSpeed))
	}

	r.pause.paused = false
	p.Tick(0.1)
	if b.pos == (mgl64.Vec3{1, 0, 1}) {
		t.Error("Expected motion after resume")
	}
}

func TestFreezeHoldsPosition(t *testing.T) {
	r := newRig()
	b := r.add(1, core.ObjectWheeled, mgl64.Vec3{2, 0, 2})
	p := b.phys
	p.SetFreeze(true)
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 0})

	for i := 0; i < 10; i++ {
		p.Tick(0.1)
	}
	if b.pos != (mgl64.Vec3{2, 0, 2}) {
		t.Errorf("Frozen body moved to %v", b.pos)
	}
}

func TestLockZeroesIntent(t *testing.T) {
	r := newRig()
	b := r.add(1, core.ObjectWheeled, mgl64.Vec3{})
	p := b.phys
	p.SetLock(true)
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 1})

	p.Tick(0.1)
	if p.EffectiveMotor() != (mgl64.Vec3{}) {
		t.Errorf("Locked body has effective intent %v", p.EffectiveMotor())
	}
	if p.MotorSpeed() != (mgl64.Vec3{1, 0, 1}) {
		t.Errorf("Lock must keep the requested intent, got %v", p.MotorSpeed())
	}
}

func TestTickIgnoresNonFiniteStep(t *testing.T) {
	r := newRig()
	b := r.add(1, core.ObjectWheeled, mgl64.Vec3{})
	p := b.phys
	p.SetMotorSpeed(mgl64.Vec3{1, 0, 0})

	p.Tick(0.1)
	before := b.pos
	speed := p.LinMotion(ModeCurrentSpeed)

	for _, dt := range []float64{nan(), math.Inf(1), math.Inf(-1)} {
		if !p.Tick(dt) {
			t.Fatalf("Tick(%f) reported destruction", dt)
		}
	}
	if b.pos != before || p.LinMotion(ModeCurrentSpeed) != speed {
		t.Fatalf("Non-finite steps changed state: pos %v speed %v", b.pos, p.LinMotion(ModeCurrentSpeed))
	}

	p.Tick(0.1)
	for i, v := range b.pos {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("pos[%d] = %f after recovery", i, v)
		}
	}
	if b.pos[0] <= before[0] {
		t.Errorf("Expected progress after a valid step, x %f", b.pos[0])
	}
}
