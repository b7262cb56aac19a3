package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides simulation time that stops while paused.
// It implements physics.PauseState.
type PausableClock struct {
	mu sync.RWMutex

	realStart time.Time

	isPaused        atomic.Bool
	pauseStart      time.Time
	totalPausedTime time.Duration

	provider TimeProvider
}

// NewPausableClock creates a clock on the system time
func NewPausableClock() *PausableClock {
	return NewPausableClockWith(NewMonotonicTimeProvider())
}

// NewPausableClockWith creates a clock reading the given provider
func NewPausableClockWith(provider TimeProvider) *PausableClock {
	return &PausableClock{
		realStart: provider.Now(),
		provider:  provider,
	}
}

// Elapsed returns simulation time since creation, excluding pauses
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.pauseStart.Sub(pc.realStart) - pc.totalPausedTime
	}
	return pc.provider.Now().Sub(pc.realStart) - pc.totalPausedTime
}

// Pause stops simulation time
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.pauseStart = pc.provider.Now()
	}
}

// Resume continues simulation time
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		defer pc.mu.Unlock()

		if !pc.pauseStart.IsZero() {
			pc.totalPausedTime += pc.provider.Now().Sub(pc.pauseStart)
			pc.pauseStart = time.Time{}
		}
	}
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time, including a pause in progress
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStart.IsZero() {
		total += pc.provider.Now().Sub(pc.pauseStart)
	}
	return total
}
