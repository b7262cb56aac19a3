package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate    = 44100
	AudioChannels      = 2
	AudioBitDepth      = 16
	AudioBytesPerFrame = AudioChannels * (AudioBitDepth / 8)
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines latency and mixer tick rate
	AudioBufferDuration = 50 * time.Millisecond

	// AudioBufferSamples is frames per mixer tick at 44.1kHz
	AudioBufferSamples = (AudioSampleRate * 50) / 1000

	// AudioDrainTimeout for queue cleanup on stop
	AudioDrainTimeout = 100 * time.Millisecond

	// AudioQueueSize is the capacity of the one-shot play queue
	AudioQueueSize = 64

	// AudioMaxVoices caps simultaneous one-shot voices
	AudioMaxVoices = 24

	// AudioHearingDistance is the distance at which a sound fades to silence
	AudioHearingDistance = 120.0
)

// Sound shapes
const (
	ImpactSoundDuration    = 180 * time.Millisecond
	LandSoundDuration      = 250 * time.Millisecond
	JostleSoundDuration    = 120 * time.Millisecond
	SplashSoundDuration    = 400 * time.Millisecond
	SkidSoundDuration      = 200 * time.Millisecond
	ChimeSoundDuration     = 500 * time.Millisecond
	LapSoundDuration       = 900 * time.Millisecond
	ErrorSoundDuration     = 80 * time.Millisecond
	ExplosionSoundDuration = 900 * time.Millisecond
	MotorLoopDuration      = 200 * time.Millisecond

	SoundAttack  = 5 * time.Millisecond
	SoundRelease = 60 * time.Millisecond
)
