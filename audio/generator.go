package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// render drains s into a mono buffer of at most d
func render(s beep.Streamer, d time.Duration) floatBuffer {
	n := sampleRate.N(d)
	buf := make(floatBuffer, 0, n)
	chunk := make([][2]float64, 512)
	s = beep.Take(n, s)
	for len(buf) < n {
		k, ok := s.Stream(chunk)
		for i := 0; i < k; i++ {
			buf = append(buf, (chunk[i][0]+chunk[i][1])*0.5)
		}
		if !ok || k == 0 {
			break
		}
	}
	return buf
}

func tone(freq float64, d time.Duration, wave WaveType) beep.Streamer {
	return NewOscillator(freq, d, wave, sampleRate)
}

func shaped(s beep.Streamer, d time.Duration) beep.Streamer {
	return NewEnvelope(s, d, parameter.SoundAttack, parameter.SoundRelease, sampleRate)
}

func rumble(cutoff float64, d time.Duration) beep.Streamer {
	return NewLowpass(tone(0, d, WaveNoise), cutoff, sampleRate)
}

// motorLoop is unshaped so the mixer can wrap it seamlessly; tone
// frequencies complete whole cycles in MotorLoopDuration
func motorLoop(parts ...beep.Streamer) floatBuffer {
	return render(beep.Mix(parts...), parameter.MotorLoopDuration)
}

// generateSound builds the unity-gain buffer for st
func generateSound(st core.SoundType) floatBuffer {
	d := parameter.MotorLoopDuration
	switch st {
	case core.SoundMotorIdle:
		return motorLoop(
			newVolume(tone(55, d, WaveSaw), 0.5),
			newVolume(tone(110, d, WaveSquare), 0.15),
			newVolume(rumble(200, d), 0.3),
		)
	case core.SoundMotorFull:
		return motorLoop(
			newVolume(tone(80, d, WaveSaw), 0.5),
			newVolume(tone(160, d, WaveSaw), 0.2),
			newVolume(rumble(400, d), 0.3),
		)
	case core.SoundMotorJet:
		return motorLoop(
			newVolume(rumble(1200, d), 0.8),
			newVolume(tone(200, d, WaveSine), 0.2),
		)
	case core.SoundMotorTrack:
		return motorLoop(
			newVolume(tone(40, d, WaveSquare), 0.4),
			newVolume(rumble(300, d), 0.5),
		)

	case core.SoundImpact:
		d = parameter.ImpactSoundDuration
		return render(shaped(beep.Mix(
			newVolume(rumble(800, d), 0.7),
			newVolume(NewSweep(120, 60, d, WaveSine, sampleRate), 0.5),
		), d), d)
	case core.SoundImpactMetal:
		d = parameter.ImpactSoundDuration
		return render(shaped(beep.Mix(
			newVolume(tone(440, d, WaveSquare), 0.3),
			newVolume(tone(660, d, WaveSine), 0.4),
			newVolume(rumble(2000, d), 0.3),
		), d), d)
	case core.SoundImpactSoft:
		d = parameter.ImpactSoundDuration
		return render(shaped(rumble(300, d), d), d)
	case core.SoundLand:
		d = parameter.LandSoundDuration
		return render(shaped(beep.Mix(
			newVolume(NewSweep(90, 40, d, WaveSine, sampleRate), 0.7),
			newVolume(rumble(250, d), 0.3),
		), d), d)
	case core.SoundJostle:
		d = parameter.JostleSoundDuration
		return render(shaped(rumble(2000, d), d), d)
	case core.SoundSplash:
		d = parameter.SplashSoundDuration
		return render(NewEnvelope(rumble(3000, d), d, parameter.SoundAttack, d/2, sampleRate), d)
	case core.SoundSkid:
		d = parameter.SkidSoundDuration
		return render(shaped(beep.Mix(
			newVolume(NewSweep(900, 700, d, WaveSaw, sampleRate), 0.3),
			newVolume(rumble(4000, d), 0.4),
		), d), d)

	case core.SoundWaypoint:
		// Fundamental A5 with an octave overtone
		d = parameter.ChimeSoundDuration
		return render(shaped(beep.Mix(
			newVolume(NewEnvelope(tone(880, d, WaveSine), d, parameter.SoundAttack, d*3/4, sampleRate), 0.7),
			newVolume(NewEnvelope(tone(1760, d, WaveSine), d, parameter.SoundAttack, d/3, sampleRate), 0.3),
		), d), d)
	case core.SoundLap:
		d = parameter.LapSoundDuration
		note := d / 3
		return render(beep.Seq(
			shaped(tone(659.25, note, WaveSquare), note),
			shaped(tone(880, note, WaveSquare), note),
			shaped(tone(1318.51, note, WaveSquare), note),
		), d)
	case core.SoundError:
		d = parameter.ErrorSoundDuration
		return render(shaped(tone(100, d, WaveSaw), d), d)
	case core.SoundExplosion:
		d = parameter.ExplosionSoundDuration
		return render(NewEnvelope(beep.Mix(
			newVolume(rumble(400, d), 0.8),
			newVolume(NewSweep(80, 30, d, WaveSine, sampleRate), 0.5),
		), d, parameter.SoundAttack, d*2/3, sampleRate), d)
	default:
		return nil
	}
}

// soundCache renders each sound once on first use; buffers are read-only afterwards
type soundCache struct {
	once [core.SoundTypeCount]sync.Once
	bufs [core.SoundTypeCount]floatBuffer
}

func newSoundCache() *soundCache {
	return &soundCache{}
}

// get returns the buffer for st, nil for SoundNone and out of range kinds
func (c *soundCache) get(st core.SoundType) floatBuffer {
	if st <= core.SoundNone || st >= core.SoundTypeCount {
		return nil
	}
	c.once[st].Do(func() { c.bufs[st] = generateSound(st) })
	return c.bufs[st]
}

// preload renders the motor loops and the per-tick one-shots
func (c *soundCache) preload() {
	for _, st := range []core.SoundType{
		core.SoundMotorIdle, core.SoundMotorFull, core.SoundMotorJet, core.SoundMotorTrack,
		core.SoundImpact, core.SoundJostle,
	} {
		c.get(st)
	}
}
