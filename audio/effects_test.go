package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// TestOscillatorRange verifies every waveform stays within [-1, 1]
func TestOscillatorRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	tests := []struct {
		name string
		wave WaveType
		freq float64
	}{
		{"sine", WaveSine, 440},
		{"square", WaveSquare, 220},
		{"saw", WaveSaw, 110},
		{"noise", WaveNoise, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osc := NewOscillator(tt.freq, 50*time.Millisecond, tt.wave, rate)
			samples := make([][2]float64, 100)
			n, ok := osc.Stream(samples)
			if !ok || n != 100 {
				t.Fatalf("Stream = (%d, %v), want (100, true)", n, ok)
			}
			for i := 0; i < n; i++ {
				if samples[i][0] < -1 || samples[i][0] > 1 {
					t.Errorf("sample %d out of range: %f", i, samples[i][0])
				}
				if samples[i][0] != samples[i][1] {
					t.Errorf("sample %d channels differ", i)
				}
			}
			if osc.Err() != nil {
				t.Errorf("Err() = %v", osc.Err())
			}
		})
	}
}

// TestOscillatorSquareLevels verifies square wave only takes the two rails
func TestOscillatorSquareLevels(t *testing.T) {
	osc := NewOscillator(220, 50*time.Millisecond, WaveSquare, beep.SampleRate(44100))
	samples := make([][2]float64, 200)
	n, _ := osc.Stream(samples)
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1 && v != 1 {
			t.Fatalf("square sample %d = %f", i, v)
		}
	}
}

// TestOscillatorNoiseVaries verifies noise is not constant
func TestOscillatorNoiseVaries(t *testing.T) {
	osc := NewOscillator(0, 10*time.Millisecond, WaveNoise, beep.SampleRate(44100))
	samples := make([][2]float64, 50)
	n, _ := osc.Stream(samples)
	for i := 1; i < n; i++ {
		if samples[i][0] != samples[0][0] {
			return
		}
	}
	t.Error("noise samples were all identical")
}

// TestOscillatorDuration verifies oscillator respects duration
func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 10 * time.Millisecond
	expected := rate.N(duration)

	osc := NewOscillator(440.0, duration, WaveSine, rate)
	samples := make([][2]float64, expected*2)
	n, ok := osc.Stream(samples)
	if n != expected || !ok {
		t.Errorf("first Stream = (%d, %v), want (%d, true)", n, ok, expected)
	}

	n2, ok2 := osc.Stream(samples[:10])
	if ok2 || n2 != 0 {
		t.Errorf("drained Stream = (%d, %v), want (0, false)", n2, ok2)
	}
}

// TestSweepGlides verifies a falling sweep crosses zero less often at the end
func TestSweepGlides(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewSweep(2000, 200, 200*time.Millisecond, WaveSine, rate)
	samples := make([][2]float64, rate.N(200*time.Millisecond))
	n, _ := osc.Stream(samples)

	crossings := func(from, to int) int {
		c := 0
		for i := from + 1; i < to; i++ {
			if (samples[i-1][0] < 0) != (samples[i][0] < 0) {
				c++
			}
		}
		return c
	}
	quarter := n / 4
	head, tail := crossings(0, quarter), crossings(n-quarter, n)
	if head <= tail {
		t.Errorf("crossings head=%d tail=%d, want head > tail", head, tail)
	}
}

// TestEnvelopeAttackPhase verifies attack ramp-up
func TestEnvelopeAttackPhase(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 100 * time.Millisecond
	attack := 50 * time.Millisecond

	osc := NewOscillator(100.0, duration, WaveSquare, rate)
	env := NewEnvelope(osc, duration, attack, 10*time.Millisecond, rate)

	samples := make([][2]float64, rate.N(attack))
	n, ok := env.Stream(samples)
	if !ok {
		t.Fatal("expected envelope to stream")
	}

	first, last := math.Abs(samples[0][0]), math.Abs(samples[n-1][0])
	if first >= last {
		t.Errorf("attack did not ramp: first=%f last=%f", first, last)
	}
	if env.Err() != nil {
		t.Errorf("Err() = %v", env.Err())
	}
}

// TestEnvelopeReleaseEndsQuiet verifies the tail fades toward zero
func TestEnvelopeReleaseEndsQuiet(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 100 * time.Millisecond
	osc := NewOscillator(100.0, duration, WaveSquare, rate)
	env := NewEnvelope(osc, duration, 5*time.Millisecond, 40*time.Millisecond, rate)

	samples := make([][2]float64, rate.N(duration))
	n, _ := env.Stream(samples)
	if n != len(samples) {
		t.Fatalf("streamed %d, want %d", n, len(samples))
	}
	if v := math.Abs(samples[n-1][0]); v > 0.01 {
		t.Errorf("last sample = %f, want near zero", v)
	}
	if v := math.Abs(samples[n/2][0]); v < 0.99 {
		t.Errorf("sustain sample = %f, want full level", v)
	}
}

// TestLowpassSmooths verifies filtered noise has less sample-to-sample jump
func TestLowpassSmooths(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 20 * time.Millisecond

	jump := func(s beep.Streamer) float64 {
		samples := make([][2]float64, rate.N(d))
		n, _ := s.Stream(samples)
		total := 0.0
		for i := 1; i < n; i++ {
			total += math.Abs(samples[i][0] - samples[i-1][0])
		}
		return total
	}

	raw := jump(NewOscillator(0, d, WaveNoise, rate))
	filtered := jump(NewLowpass(NewOscillator(0, d, WaveNoise, rate), 300, rate))
	if filtered >= raw/4 {
		t.Errorf("filtered jump %f not well below raw %f", filtered, raw)
	}
}

// TestNewVolumeZero verifies zero volume silences rather than producing -Inf gain
func TestNewVolumeZero(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := newVolume(NewOscillator(440, 10*time.Millisecond, WaveSquare, rate), 0)
	samples := make([][2]float64, 100)
	n, _ := s.Stream(samples)
	for i := 0; i < n; i++ {
		if samples[i][0] != 0 {
			t.Fatalf("sample %d = %f, want 0", i, samples[i][0])
		}
	}

	half := newVolume(NewOscillator(440, 10*time.Millisecond, WaveSquare, rate), 0.5)
	n, _ = half.Stream(samples)
	for i := 0; i < n; i++ {
		if math.Abs(math.Abs(samples[i][0])-0.5) > 1e-9 {
			t.Fatalf("sample %d = %f, want ±0.5", i, samples[i][0])
		}
	}
}
