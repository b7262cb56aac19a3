package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
)

// frameSink collects published frames
type frameSink struct {
	mu     sync.Mutex
	frames []Frame
}

func (s *frameSink) add(f Frame) {
	s.mu.Lock()
	s.frames = append(s.frames, f)
	s.mu.Unlock()
}

func (s *frameSink) last() (Frame, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return Frame{}, 0
	}
	return s.frames[len(s.frames)-1], len(s.frames)
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(2 * time.Millisecond)
	}
}

// TestClockSchedulerTicks verifies the loop steps the world and publishes frames
func TestClockSchedulerTicks(t *testing.T) {
	w := newTestWorld(t)
	car := mustSpawn(t, w, core.ObjectWheeled, mgl64.Vec3{})
	sink := &frameSink{}

	cs := NewClockScheduler(w, 5*time.Millisecond, sink.add, zerolog.Nop())
	if !cs.Submit(Command{ID: car.ID(), Motor: mgl64.Vec3{1, 0, 0}}) {
		t.Fatal("Submit rejected on empty queue")
	}
	cs.Start()
	cs.Start()

	eventually(t, func() bool { return cs.Ticks() >= 10 })
	cs.Stop()
	cs.Stop()

	ticks := cs.Ticks()
	time.Sleep(20 * time.Millisecond)
	if cs.Ticks() != ticks {
		t.Error("scheduler ticked after Stop")
	}

	f, n := sink.last()
	if uint64(n) != ticks || f.Tick != ticks {
		t.Errorf("frames=%d last tick=%d, want %d", n, f.Tick, ticks)
	}
	if len(f.Objects) != 1 || f.Objects[0].Motor[0] != 1 {
		t.Errorf("frame objects = %+v", f.Objects)
	}
	if car.Position()[0] <= 0 {
		t.Error("submitted command did not drive the car")
	}
}

// TestClockSchedulerPaused verifies a paused world applies commands but does not tick
func TestClockSchedulerPaused(t *testing.T) {
	w := newTestWorld(t)
	car := mustSpawn(t, w, core.ObjectWheeled, mgl64.Vec3{})
	w.Clock().Pause()

	cs := NewClockScheduler(w, 5*time.Millisecond, nil, zerolog.Nop())
	cs.Start()
	defer cs.Stop()

	cs.Submit(Command{ID: car.ID(), Motor: mgl64.Vec3{0, 0, 1}})
	p, _ := car.Physics()
	eventually(t, func() bool {
		w.mu.RLock()
		defer w.mu.RUnlock()
		return p.MotorSpeed()[2] == 1
	})
	if cs.Ticks() != 0 || w.Tick() != 0 {
		t.Errorf("ticked while paused: scheduler=%d world=%d", cs.Ticks(), w.Tick())
	}

	w.Clock().Resume()
	eventually(t, func() bool { return w.Tick() > 0 })
}

// TestClockSchedulerQueueFull verifies Submit never blocks
func TestClockSchedulerQueueFull(t *testing.T) {
	w := newTestWorld(t)
	cs := NewClockScheduler(w, 0, nil, zerolog.Nop())
	if cs.tickInterval != parameter.TickInterval {
		t.Errorf("default interval = %v, want %v", cs.tickInterval, parameter.TickInterval)
	}

	accepted := 0
	for i := 0; i < parameter.CommandQueueSize+10; i++ {
		if cs.Submit(Command{ID: 1}) {
			accepted++
		}
	}
	if accepted != parameter.CommandQueueSize {
		t.Errorf("accepted = %d, want %d", accepted, parameter.CommandQueueSize)
	}
}
