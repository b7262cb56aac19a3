package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
)

// ClockScheduler steps the world on a fixed tick with pause awareness,
// applies queued driver commands before each tick and publishes frames.
type ClockScheduler struct {
	world *World
	clock *PausableClock
	log   zerolog.Logger

	tickInterval     time.Duration
	nextTickDeadline time.Time

	tickCount atomic.Uint64
	mu        sync.Mutex

	commands chan Command
	onFrame  func(Frame)

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewClockScheduler creates a scheduler; onFrame may be nil
func NewClockScheduler(world *World, tickInterval time.Duration, onFrame func(Frame), log zerolog.Logger) *ClockScheduler {
	if tickInterval <= 0 {
		tickInterval = parameter.TickInterval
	}
	return &ClockScheduler{
		world:        world,
		clock:        world.Clock(),
		log:          log.With().Str("component", "scheduler").Logger(),
		tickInterval: tickInterval,
		commands:     make(chan Command, parameter.CommandQueueSize),
		onFrame:      onFrame,
		stopChan:     make(chan struct{}),
	}
}

// Submit queues a command for the next tick without blocking.
// It reports false when the queue is full.
func (cs *ClockScheduler) Submit(cmd Command) bool {
	select {
	case cs.commands <- cmd:
		return true
	default:
		return false
	}
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for it to exit
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// Ticks returns the number of processed ticks
func (cs *ClockScheduler) Ticks() uint64 { return cs.tickCount.Load() }

func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.nextTickDeadline = time.Now().Add(cs.tickInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		var sleep time.Duration
		if cs.clock.IsPaused() {
			// Commands still apply so a paused world can be set up
			cs.drainCommands()
			sleep = cs.tickInterval * 2
			cs.mu.Lock()
			cs.nextTickDeadline = time.Now().Add(cs.tickInterval)
			cs.mu.Unlock()
		} else {
			now := time.Now()
			cs.mu.Lock()
			deadline := cs.nextTickDeadline
			cs.mu.Unlock()

			if !now.Before(deadline) {
				cs.processTick()

				cs.mu.Lock()
				cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
				if now.Sub(cs.nextTickDeadline) > cs.tickInterval*2 {
					cs.log.Debug().Dur("behind", now.Sub(cs.nextTickDeadline)).Msg("tick deadline reset")
					cs.nextTickDeadline = now.Add(cs.tickInterval)
				}
				deadline = cs.nextTickDeadline
				cs.mu.Unlock()
			}
			sleep = max(0, time.Until(deadline))
		}

		if sleep > 0 {
			timer.Reset(sleep)
			select {
			case <-timer.C:
			case <-cs.stopChan:
				return
			}
		}
	}
}

func (cs *ClockScheduler) drainCommands() {
	for {
		select {
		case cmd := <-cs.commands:
			if err := cs.world.Apply(cmd); err != nil {
				cs.log.Debug().Err(err).Msg("command rejected")
			}
		default:
			return
		}
	}
}

// processTick executes one fixed step
func (cs *ClockScheduler) processTick() {
	cs.drainCommands()
	cs.world.Step(cs.tickInterval.Seconds())
	cs.tickCount.Add(1)

	if cs.onFrame != nil {
		cs.onFrame(cs.world.Snapshot())
	}
}
