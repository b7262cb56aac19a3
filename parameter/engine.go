package parameter

import "time"

// Simulation timing
const (
	// TickInterval is the fixed simulation step (~60 Hz)
	TickInterval = time.Second / 60

	// ReplicationInterval is the state broadcast period (~20 Hz)
	ReplicationInterval = time.Second / 20

	// FrameUpdateInterval is the sandbox rendering interval
	FrameUpdateInterval = 33 * time.Millisecond
)

// Buffers and limits
const (
	// ParticleCapacity is the fixed size of the particle ring buffer
	ParticleCapacity = 1024

	// CommandQueueSize is the capacity of the server motor command channel
	CommandQueueSize = 256

	// ClientSendQueue is the per-client outgoing snapshot queue
	ClientSendQueue = 16
)

// Streaming transport
const (
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 4096
)

// Logging
const (
	// LogMaxSize rotates an existing log file above this size
	LogMaxSize = 10 * 1024 * 1024

	// LogBurst is the per-period event budget of sampled per-tick log lines
	LogBurst = 5

	// LogBurstPeriod is the sampler window
	LogBurstPeriod = time.Second
)
