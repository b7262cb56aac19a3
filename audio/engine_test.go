package audio

import (
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
)

// syncBuffer counts bytes written by the mixer goroutine
type syncBuffer struct {
	mu sync.Mutex
	n  int
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	b.n += len(p)
	b.mu.Unlock()
	return len(p), nil
}

func (b *syncBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.n
}

func enabledConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.MasterVolume = 1
	cfg.EffectVolumes = map[core.SoundType]float64{}
	return cfg
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// TestNewAudioEngine verifies initial state follows config
func TestNewAudioEngine(t *testing.T) {
	ae := NewAudioEngine(nil, zerolog.Nop())
	if !ae.IsMuted() {
		t.Error("default config should start muted")
	}
	if ae.IsRunning() || ae.IsEnabled() {
		t.Error("engine should not run before Start")
	}

	ae = NewAudioEngine(enabledConfig(), zerolog.Nop())
	if ae.IsMuted() {
		t.Error("enabled config should start unmuted")
	}
}

// TestAudioEngineStartWith verifies lifecycle against an in-memory writer
func TestAudioEngineStartWith(t *testing.T) {
	ae := NewAudioEngine(enabledConfig(), zerolog.Nop())
	out := &syncBuffer{}

	if err := ae.StartWith(out); err != nil {
		t.Fatalf("StartWith: %v", err)
	}
	if err := ae.StartWith(out); err != ErrRunning {
		t.Errorf("second StartWith = %v, want ErrRunning", err)
	}
	if !ae.IsEnabled() {
		t.Fatal("expected enabled after start")
	}

	ae.Play(core.SoundImpact, mgl64.Vec3{}, 1, 1)
	waitFor(t, func() bool {
		played, _ := ae.GetStats()
		return played == 1
	})
	waitFor(t, func() bool { return out.Len() > 0 })

	ae.Stop()
	ae.Stop()
	if ae.IsRunning() {
		t.Error("expected stopped")
	}
}

// TestAudioEngineIgnoresWhenMuted verifies muted engines queue nothing
func TestAudioEngineIgnoresWhenMuted(t *testing.T) {
	ae := NewAudioEngine(enabledConfig(), zerolog.Nop())
	if err := ae.StartWith(&syncBuffer{}); err != nil {
		t.Fatal(err)
	}
	defer ae.Stop()

	if enabled := ae.ToggleMute(); enabled {
		t.Fatal("ToggleMute should report disabled")
	}
	ae.Play(core.SoundImpact, mgl64.Vec3{}, 1, 1)
	ae.Loop(1, core.SoundMotorIdle, 1, 1)
	time.Sleep(3 * parameter.AudioBufferDuration)
	if played, _ := ae.GetStats(); played != 0 {
		t.Errorf("played = %d while muted", played)
	}

	if enabled := ae.ToggleMute(); !enabled {
		t.Error("ToggleMute should report enabled")
	}
}

// TestAudioEngineKindRouting verifies loops and one-shots do not cross paths
func TestAudioEngineKindRouting(t *testing.T) {
	ae := NewAudioEngine(enabledConfig(), zerolog.Nop())
	m := newTestMixer()
	ae.mixer = m
	ae.running.Store(true)

	ae.Play(core.SoundMotorIdle, mgl64.Vec3{}, 1, 1)
	ae.Loop(3, core.SoundImpact, 1, 1)
	if len(m.requests) != 0 {
		t.Errorf("misrouted requests queued: %d", len(m.requests))
	}

	ae.Loop(3, core.SoundMotorIdle, 1, 1.2)
	ae.StopLoop(3)
	if len(m.requests) != 2 {
		t.Errorf("requests = %d, want 2", len(m.requests))
	}
	if req := <-m.requests; req.kind != reqLoop || req.owner != 3 || req.rate != 1.2 {
		t.Errorf("loop request = %+v", req)
	}
	if req := <-m.requests; req.kind != reqStop || req.owner != 3 {
		t.Errorf("stop request = %+v", req)
	}
}

// TestAudioEngineDistanceFalloff verifies volume fades with listener distance
func TestAudioEngineDistanceFalloff(t *testing.T) {
	cfg := enabledConfig()
	cfg.HearingDistance = 100
	ae := NewAudioEngine(cfg, zerolog.Nop())
	ae.SetListener(mgl64.Vec3{10, 0, 0})

	tests := []struct {
		name string
		pos  mgl64.Vec3
		want float64
	}{
		{"at listener", mgl64.Vec3{10, 0, 0}, 1},
		{"half way", mgl64.Vec3{10, 0, 50}, 0.5},
		{"at limit", mgl64.Vec3{110, 0, 0}, 0},
		{"beyond", mgl64.Vec3{-500, 0, 0}, 0},
	}
	for _, tt := range tests {
		if got := ae.volume(core.SoundImpact, tt.pos, 1); !approx(got, tt.want) {
			t.Errorf("%s: volume = %f, want %f", tt.name, got, tt.want)
		}
	}
}

// TestAudioEngineGain verifies master and per-effect volume scale amplitude
func TestAudioEngineGain(t *testing.T) {
	cfg := enabledConfig()
	cfg.MasterVolume = 0.5
	cfg.EffectVolumes[core.SoundSplash] = 0.5
	ae := NewAudioEngine(cfg, zerolog.Nop())

	if got := ae.volume(core.SoundSplash, mgl64.Vec3{}, 0.8); !approx(got, 0.2) {
		t.Errorf("splash volume = %f, want 0.2", got)
	}
	if got := ae.volume(core.SoundLand, mgl64.Vec3{}, 2); !approx(got, 0.5) {
		t.Errorf("clamped amplitude volume = %f, want 0.5", got)
	}

	ae.SetVolume(3)
	if got := ae.volume(core.SoundLand, mgl64.Vec3{}, 1); !approx(got, 1) {
		t.Errorf("master clamp volume = %f, want 1", got)
	}
}

// TestAudioEngineLoopLocator verifies loops attenuate by owner position
func TestAudioEngineLoopLocator(t *testing.T) {
	cfg := enabledConfig()
	cfg.HearingDistance = 100
	ae := NewAudioEngine(cfg, zerolog.Nop())

	if got := ae.loopVolume(5, core.SoundMotorFull, 1); !approx(got, 1) {
		t.Errorf("unlocated loop volume = %f, want 1", got)
	}

	ae.SetLocator(func(id core.ObjectID) (mgl64.Vec3, bool) {
		if id == 5 {
			return mgl64.Vec3{75, 0, 0}, true
		}
		return mgl64.Vec3{}, false
	})
	if got := ae.loopVolume(5, core.SoundMotorFull, 1); !approx(got, 0.25) {
		t.Errorf("located loop volume = %f, want 0.25", got)
	}
	if got := ae.loopVolume(6, core.SoundMotorFull, 1); !approx(got, 1) {
		t.Errorf("missing owner volume = %f, want 1", got)
	}
}

// TestPlaybackRate verifies pitch multipliers are bounded
func TestPlaybackRate(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{1, 1}, {0, 1}, {-2, 1}, {0.1, minRate}, {10, maxRate}, {1.5, 1.5},
	}
	for _, tt := range tests {
		if got := playbackRate(tt.in); got != tt.want {
			t.Errorf("playbackRate(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

// TestEffectVolumesByName verifies config keys map onto sound types
func TestEffectVolumesByName(t *testing.T) {
	got := EffectVolumesByName(map[string]float64{
		"impact_metal": 0.4,
		"motor_idle":   2,
		"bogus":        1,
	})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[core.SoundImpactMetal] != 0.4 || got[core.SoundMotorIdle] != 1 {
		t.Errorf("volumes = %v", got)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
