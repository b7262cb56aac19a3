package stream

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/engine"
	"github.com/lixenwraith/rover/physics"
)

// Envelope types
const (
	TypeWelcome = "welcome"
	TypeState   = "state"
	TypeInput   = "input"
	TypePing    = "ping"
	TypePong    = "pong"
	TypeError   = "error"
)

// ObjectState is the replicated state of one body
type ObjectState struct {
	ID           uint32     `json:"id" msgpack:"id"`
	Type         string     `json:"type" msgpack:"type"`
	Position     mgl64.Vec3 `json:"position" msgpack:"position"`
	Rotation     mgl64.Vec3 `json:"rotation" msgpack:"rotation"`
	Velocity     mgl64.Vec3 `json:"velocity" msgpack:"velocity"`
	Motor        mgl64.Vec3 `json:"motor" msgpack:"motor"`
	Land         bool       `json:"land" msgpack:"land"`
	Swim         bool       `json:"swim,omitempty" msgpack:"swim,omitempty"`
	ReactorRange float64    `json:"reactor_range" msgpack:"reactor_range"`
	Status       string     `json:"status" msgpack:"status"`
	Laps         int        `json:"laps,omitempty" msgpack:"laps,omitempty"`
}

// WorldSnapshot is broadcast to every client at the replication rate
type WorldSnapshot struct {
	Tick    uint64        `json:"tick" msgpack:"tick"`
	Time    float64       `json:"time" msgpack:"time"`
	Paused  bool          `json:"paused" msgpack:"paused"`
	Objects []ObjectState `json:"objects" msgpack:"objects"`
}

// DriveInput is a client motor request
type DriveInput struct {
	Object    uint32     `json:"object" msgpack:"object"`
	Sequence  uint64     `json:"sequence" msgpack:"sequence"`
	Motor     mgl64.Vec3 `json:"motor" msgpack:"motor"`
	Handbrake float64    `json:"handbrake" msgpack:"handbrake"`
}

// ClientEnvelope is sent from client to server
type ClientEnvelope struct {
	Type  string      `json:"type" msgpack:"type"`
	Input *DriveInput `json:"input,omitempty" msgpack:"input,omitempty"`
}

// ServerEnvelope is sent from server to client
type ServerEnvelope struct {
	Type     string         `json:"type" msgpack:"type"`
	Tick     uint64         `json:"tick,omitempty" msgpack:"tick,omitempty"`
	State    *WorldSnapshot `json:"state,omitempty" msgpack:"state,omitempty"`
	ServerMS int64          `json:"server_ms,omitempty" msgpack:"server_ms,omitempty"`
	Message  string         `json:"message,omitempty" msgpack:"message,omitempty"`
	AckSeq   uint64         `json:"ack_seq,omitempty" msgpack:"ack_seq,omitempty"`
}

// FromFrame converts an engine frame to its wire form
func FromFrame(f engine.Frame) WorldSnapshot {
	s := WorldSnapshot{
		Tick:    f.Tick,
		Time:    f.Time,
		Paused:  f.Paused,
		Objects: make([]ObjectState, 0, len(f.Objects)),
	}
	for _, st := range f.Objects {
		s.Objects = append(s.Objects, fromState(st, f.Laps[st.ID]))
	}
	return s
}

func fromState(st physics.State, laps int) ObjectState {
	return ObjectState{
		ID:           uint32(st.ID),
		Type:         st.Type.String(),
		Position:     st.Position,
		Rotation:     st.Rotation,
		Velocity:     st.Velocity,
		Motor:        st.Motor,
		Land:         st.Land,
		Swim:         st.Swim,
		ReactorRange: st.ReactorRange,
		Status:       st.Status.String(),
		Laps:         laps,
	}
}
