package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
)

// voice is a playing buffer read at a pitch-scaled rate
type voice struct {
	buffer floatBuffer
	pos    float64
	rate   float64
	volume float64
}

// next returns the interpolated sample and advances, wrapping when loop is set
func (v *voice) next(loop bool) (float64, bool) {
	n := len(v.buffer)
	if n == 0 {
		return 0, false
	}
	if v.pos >= float64(n) {
		if !loop {
			return 0, false
		}
		v.pos -= float64(n) * float64(int(v.pos/float64(n)))
	}
	i := int(v.pos)
	frac := v.pos - float64(i)
	a := v.buffer[i]
	b := a
	if i+1 < n {
		b = v.buffer[i+1]
	} else if loop {
		b = v.buffer[0]
	}
	v.pos += v.rate
	return a + (b-a)*frac, true
}

// loopVoice glides volume and pitch toward their targets per buffer
type loopVoice struct {
	voice
	sound        core.SoundType
	targetVolume float64
	targetRate   float64
	stopping     bool
}

type requestKind uint8

const (
	reqPlay requestKind = iota
	reqLoop
	reqStop
)

type request struct {
	kind   requestKind
	sound  core.SoundType
	owner  core.ObjectID
	volume float64
	rate   float64
}

// Mixer handles mixing and output
type Mixer struct {
	output io.Writer
	cache  *soundCache

	requests chan request
	stopChan chan struct{}
	stopped  atomic.Bool
	muted    atomic.Bool

	// Accessed only by mix goroutine
	active []voice
	loops  map[core.ObjectID]*loopVoice

	statsMu sync.Mutex
	played  uint64
	dropped uint64

	errChan chan error
}

// NewMixer creates a mixer writing to out
func NewMixer(out io.Writer, cache *soundCache) *Mixer {
	return &Mixer{
		output:   out,
		cache:    cache,
		requests: make(chan request, parameter.AudioQueueSize),
		stopChan: make(chan struct{}),
		active:   make([]voice, 0, parameter.AudioMaxVoices),
		loops:    make(map[core.ObjectID]*loopVoice),
		errChan:  make(chan error, 1),
	}
}

// Start begins the mixing loop
func (m *Mixer) Start() {
	go m.loop()
}

// Stop signals the mixer to halt
func (m *Mixer) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
	}
}

// SetMuted keeps voices advancing but writes silence
func (m *Mixer) SetMuted(muted bool) {
	m.muted.Store(muted)
}

// Play queues a one-shot at linear volume and playback rate
func (m *Mixer) Play(st core.SoundType, volume, rate float64) {
	m.send(request{kind: reqPlay, sound: st, volume: volume, rate: rate})
}

// Loop starts or retunes the continuous sound owned by owner
func (m *Mixer) Loop(owner core.ObjectID, st core.SoundType, volume, rate float64) {
	m.send(request{kind: reqLoop, sound: st, owner: owner, volume: volume, rate: rate})
}

// StopLoop fades out the loop owned by owner
func (m *Mixer) StopLoop(owner core.ObjectID) {
	m.send(request{kind: reqStop, owner: owner})
}

func (m *Mixer) send(req request) {
	if m.stopped.Load() {
		return
	}
	select {
	case m.requests <- req:
	default:
		m.statsMu.Lock()
		m.dropped++
		m.statsMu.Unlock()
	}
}

// Errors returns channel for pipe errors
func (m *Mixer) Errors() <-chan error {
	return m.errChan
}

// loop is the main mixing goroutine
func (m *Mixer) loop() {
	ticker := time.NewTicker(parameter.AudioBufferDuration)
	defer ticker.Stop()

	mixBuf := make([]float64, parameter.AudioBufferSamples)
	outBytes := make([]byte, parameter.AudioBufferSamples*parameter.AudioBytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return

		case req := <-m.requests:
			m.apply(req)

		case <-ticker.C:
			m.drain()
			m.mix(mixBuf)
			if m.muted.Load() {
				clear(mixBuf)
			}
			floatToBytes(mixBuf, outBytes)

			// Silence is written too to keep the pipe alive
			if _, err := m.output.Write(outBytes); err != nil {
				select {
				case m.errChan <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
				default:
				}
				return
			}
		}
	}
}

func (m *Mixer) drain() {
	for {
		select {
		case req := <-m.requests:
			m.apply(req)
		default:
			return
		}
	}
}

func (m *Mixer) voices() int {
	return len(m.active) + len(m.loops)
}

// apply mutates voice state; mix goroutine only
func (m *Mixer) apply(req request) {
	switch req.kind {
	case reqPlay:
		buf := m.cache.get(req.sound)
		if len(buf) == 0 {
			return
		}
		if m.voices() >= parameter.AudioMaxVoices {
			m.statsMu.Lock()
			m.dropped++
			m.statsMu.Unlock()
			return
		}
		m.active = append(m.active, voice{buffer: buf, rate: req.rate, volume: req.volume})
		m.statsMu.Lock()
		m.played++
		m.statsMu.Unlock()

	case reqLoop:
		buf := m.cache.get(req.sound)
		if len(buf) == 0 {
			return
		}
		if lv, ok := m.loops[req.owner]; ok {
			if lv.sound != req.sound {
				lv.buffer = buf
				lv.sound = req.sound
				lv.pos = 0
			}
			lv.targetVolume = req.volume
			lv.targetRate = req.rate
			lv.stopping = false
			return
		}
		if m.voices() >= parameter.AudioMaxVoices {
			m.statsMu.Lock()
			m.dropped++
			m.statsMu.Unlock()
			return
		}
		m.loops[req.owner] = &loopVoice{
			voice:        voice{buffer: buf, rate: req.rate},
			sound:        req.sound,
			targetVolume: req.volume,
			targetRate:   req.rate,
		}

	case reqStop:
		if lv, ok := m.loops[req.owner]; ok {
			lv.targetVolume = 0
			lv.stopping = true
		}
	}
}

// mix renders one buffer of all voices into buf, dropping finished ones
func (m *Mixer) mix(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}

	remaining := m.active[:0]
	for i := range m.active {
		v := &m.active[i]
		alive := true
		for j := range buf {
			s, ok := v.next(false)
			if !ok {
				alive = false
				break
			}
			buf[j] += s * v.volume
		}
		if alive {
			remaining = append(remaining, *v)
		}
	}
	m.active = remaining

	n := float64(len(buf))
	for owner, lv := range m.loops {
		startVol, startRate := lv.volume, lv.rate
		for j := range buf {
			t := float64(j+1) / n
			lv.rate = startRate + (lv.targetRate-startRate)*t
			vol := startVol + (lv.targetVolume-startVol)*t
			s, _ := lv.next(true)
			buf[j] += s * vol
		}
		lv.volume = lv.targetVolume
		lv.rate = lv.targetRate
		if lv.stopping {
			delete(m.loops, owner)
		}
	}
}

// floatToBytes converts float64 mono to interleaved stereo int16 LE bytes
// Applies soft limiting before hard clip
func floatToBytes(in []float64, out []byte) {
	for i, v := range in {
		if v > 0.8 {
			v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
		} else if v < -0.8 {
			v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
		}

		if v > 1.0 {
			v = 1.0
		} else if v < -1.0 {
			v = -1.0
		}

		i16 := int16(v * 32767)
		idx := i * parameter.AudioBytesPerFrame
		binary.LittleEndian.PutUint16(out[idx:], uint16(i16))   // L
		binary.LittleEndian.PutUint16(out[idx+2:], uint16(i16)) // R
	}
}

// GetStats returns played and dropped counts
func (m *Mixer) GetStats() (played, dropped uint64) {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return m.played, m.dropped
}

// loopCount is the number of live loops; mix goroutine only
func (m *Mixer) loopCount() int {
	return len(m.loops)
}
