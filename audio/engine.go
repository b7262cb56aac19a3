package audio

import (
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/vmath"
)

// Playback rate bounds for the frequency multiplier
const (
	minRate = 0.25
	maxRate = 4.0
)

// Locator resolves the world position of a loop owner
type Locator func(core.ObjectID) (mgl64.Vec3, bool)

// AudioEngine manages audio via pipe to system tools and satisfies the
// physics sound sink
type AudioEngine struct {
	config *Config
	cache  *soundCache
	mixer  *Mixer
	log    zerolog.Logger

	backend *BackendConfig
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	ossFile *os.File // For direct OSS writes

	running    atomic.Bool
	muted      atomic.Bool
	silentMode atomic.Bool

	mu       sync.RWMutex // Protects config, listener, locator
	listener mgl64.Vec3
	locator  Locator
	wg       sync.WaitGroup
}

// NewAudioEngine creates an audio engine; a nil cfg uses DefaultConfig
func NewAudioEngine(cfg *Config, log zerolog.Logger) *AudioEngine {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	ae := &AudioEngine{
		config: cfg,
		cache:  newSoundCache(),
		log:    log.With().Str("component", "audio").Logger(),
	}
	ae.muted.Store(!cfg.Enabled)
	ae.cache.preload()

	return ae
}

// Start launches the detected backend and mixer; a missing backend leaves the
// engine running in silent mode
func (ae *AudioEngine) Start() error {
	if ae.running.Load() {
		return ErrRunning
	}

	backend, err := DetectBackend()
	if err != nil {
		ae.log.Warn().Err(err).Msg("audio running silent")
		ae.silentMode.Store(true)
		ae.running.Store(true)
		return nil
	}
	ae.backend = backend

	var writer io.Writer
	if backend.Type == BackendOSS {
		f, err := os.OpenFile(backend.Path, os.O_WRONLY, 0)
		if err != nil {
			ae.log.Warn().Err(err).Str("device", backend.Path).Msg("audio running silent")
			ae.silentMode.Store(true)
			ae.running.Store(true)
			return nil
		}
		ae.ossFile = f
		writer = f
	} else {
		cmd := exec.Command(backend.Path, backend.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			ae.silentMode.Store(true)
			ae.running.Store(true)
			return nil
		}

		if err := cmd.Start(); err != nil {
			stdin.Close()
			ae.log.Warn().Err(err).Str("backend", backend.Name).Msg("audio running silent")
			ae.silentMode.Store(true)
			ae.running.Store(true)
			return nil
		}

		ae.cmd = cmd
		ae.stdin = stdin
		writer = stdin

		ae.wg.Add(1)
		go ae.monitorProcess()
	}

	ae.log.Info().Str("backend", backend.Name).Msg("audio started")
	return ae.StartWith(writer)
}

// StartWith runs the mixer against w instead of a detected backend
func (ae *AudioEngine) StartWith(w io.Writer) error {
	if !ae.running.CompareAndSwap(false, true) {
		return ErrRunning
	}

	ae.mixer = NewMixer(w, ae.cache)
	ae.mixer.SetMuted(ae.muted.Load())
	ae.mixer.Start()

	ae.wg.Add(1)
	go ae.monitorMixer()
	return nil
}

// monitorProcess watches for subprocess exit
func (ae *AudioEngine) monitorProcess() {
	defer ae.wg.Done()

	if ae.cmd == nil {
		return
	}

	err := ae.cmd.Wait()
	if err != nil && ae.running.Load() && !ae.silentMode.Load() {
		ae.log.Warn().Err(err).Msg("audio backend exited")
		ae.silentMode.Store(true)
	}
}

// monitorMixer watches for pipe errors
func (ae *AudioEngine) monitorMixer() {
	defer ae.wg.Done()

	select {
	case err := <-ae.mixer.Errors():
		ae.log.Warn().Err(err).Msg("audio output lost")
		ae.silentMode.Store(true)
	case <-ae.mixer.stopChan:
	}
}

// Stop terminates the engine
func (ae *AudioEngine) Stop() {
	if !ae.running.CompareAndSwap(true, false) {
		return
	}

	if ae.mixer != nil {
		ae.mixer.Stop()
	}
	if ae.stdin != nil {
		ae.stdin.Close()
	}
	if ae.ossFile != nil {
		ae.ossFile.Close()
	}
	if ae.cmd != nil && ae.cmd.Process != nil {
		ae.cmd.Process.Kill()
	}

	ae.wg.Wait()
}

// SetListener moves the ear used for distance attenuation
func (ae *AudioEngine) SetListener(pos mgl64.Vec3) {
	ae.mu.Lock()
	ae.listener = pos
	ae.mu.Unlock()
}

// SetLocator lets loops attenuate by their owner's position
func (ae *AudioEngine) SetLocator(fn Locator) {
	ae.mu.Lock()
	ae.locator = fn
	ae.mu.Unlock()
}

// volume is amplitude scaled by config gain and distance from the listener
func (ae *AudioEngine) volume(st core.SoundType, pos mgl64.Vec3, amplitude float64) float64 {
	ae.mu.RLock()
	defer ae.mu.RUnlock()
	return vmath.Norm01(amplitude) * ae.config.gain(st) * ae.config.falloff(pos.Sub(ae.listener).Len())
}

func (ae *AudioEngine) loopVolume(owner core.ObjectID, st core.SoundType, amplitude float64) float64 {
	ae.mu.RLock()
	locate := ae.locator
	ae.mu.RUnlock()

	if locate != nil {
		if pos, ok := locate(owner); ok {
			return ae.volume(st, pos, amplitude)
		}
	}
	ae.mu.RLock()
	defer ae.mu.RUnlock()
	return vmath.Norm01(amplitude) * ae.config.gain(st)
}

func playbackRate(frequency float64) float64 {
	if frequency <= 0 {
		return 1
	}
	return vmath.Clamp(frequency, minRate, maxRate)
}

// Play queues a positioned one-shot; frequency is a pitch multiplier
func (ae *AudioEngine) Play(kind core.SoundType, pos mgl64.Vec3, amplitude, frequency float64) {
	if !ae.IsEnabled() || ae.mixer == nil || kind.IsLoop() {
		return
	}
	vol := ae.volume(kind, pos, amplitude)
	if vol <= 0 {
		return
	}
	ae.mixer.Play(kind, vol, playbackRate(frequency))
}

// Loop starts or retunes owner's continuous sound
func (ae *AudioEngine) Loop(owner core.ObjectID, kind core.SoundType, amplitude, frequency float64) {
	if !ae.IsEnabled() || ae.mixer == nil || !kind.IsLoop() {
		return
	}
	ae.mixer.Loop(owner, kind, ae.loopVolume(owner, kind, amplitude), playbackRate(frequency))
}

// StopLoop fades owner's loop; forwarded while muted so loops do not linger
func (ae *AudioEngine) StopLoop(owner core.ObjectID) {
	if !ae.running.Load() || ae.mixer == nil {
		return
	}
	ae.mixer.StopLoop(owner)
}

// ToggleMute toggles mute state, returns true if now enabled
func (ae *AudioEngine) ToggleMute() bool {
	newMute := !ae.muted.Load()
	ae.muted.Store(newMute)
	if ae.mixer != nil {
		ae.mixer.SetMuted(newMute)
	}
	return !newMute
}

// IsMuted returns current mute state
func (ae *AudioEngine) IsMuted() bool {
	return ae.muted.Load()
}

// IsEnabled returns true if running and unmuted
func (ae *AudioEngine) IsEnabled() bool {
	ae.mu.RLock()
	enabled := ae.config.Enabled
	ae.mu.RUnlock()
	return enabled && ae.running.Load() && !ae.muted.Load() && !ae.silentMode.Load()
}

// IsRunning returns true if engine is running (even in silent mode)
func (ae *AudioEngine) IsRunning() bool {
	return ae.running.Load()
}

// IsSilent reports that no backend is producing output
func (ae *AudioEngine) IsSilent() bool {
	return ae.silentMode.Load()
}

// Backend returns the detected backend, nil in silent mode or before Start
func (ae *AudioEngine) Backend() *BackendConfig {
	return ae.backend
}

// SetVolume updates master volume (0.0-1.0)
func (ae *AudioEngine) SetVolume(vol float64) {
	ae.mu.Lock()
	ae.config.MasterVolume = vmath.Norm01(vol)
	ae.mu.Unlock()
}

// SetConfig replaces config
func (ae *AudioEngine) SetConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	ae.mu.Lock()
	ae.config = cfg
	ae.mu.Unlock()
}

// GetStats returns played and dropped counts
func (ae *AudioEngine) GetStats() (played, dropped uint64) {
	if ae.mixer != nil {
		return ae.mixer.GetStats()
	}
	return 0, 0
}
