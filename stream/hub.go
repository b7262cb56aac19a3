package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/engine"
	"github.com/lixenwraith/rover/logging"
	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/status"
)

// Submitter accepts driver commands for the next tick without blocking
type Submitter interface {
	Submit(cmd engine.Command) bool
}

type client struct {
	id     uint64
	object core.ObjectID // bound object, zero lets the client pick per input
	conn   *websocket.Conn
	send   chan []byte
}

// Hub owns the websocket clients. Publish is called from the simulation
// goroutine; Broadcast and the pumps run on their own goroutines.
type Hub struct {
	codec    Codec
	submit   Submitter
	log      zerolog.Logger
	noisy    zerolog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[uint64]*client
	nextID  atomic.Uint64

	latest  atomic.Pointer[WorldSnapshot]
	dropped atomic.Uint64

	gauges   *status.Registry
	clientsG *atomic.Int64
	droppedG *atomic.Int64
	rejectG  *atomic.Int64
}

// NewHub creates a hub; a nil codec selects JSON
func NewHub(codec Codec, submit Submitter, log zerolog.Logger) *Hub {
	if codec == nil {
		codec = jsonCodec{}
	}
	l := log.With().Str("component", "stream").Logger()
	return &Hub{
		codec:  codec,
		submit: submit,
		log:    l,
		noisy:  logging.Sampled(l),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  parameter.MaxMessageSize,
			WriteBufferSize: parameter.MaxMessageSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[uint64]*client),
	}
}

// SetStatus publishes hub gauges to r and reports r on /health.
// Call it before serving.
func (h *Hub) SetStatus(r *status.Registry) {
	h.gauges = r
	h.clientsG = r.Int(status.StreamClients)
	h.droppedG = r.Int(status.StreamDropped)
	h.rejectG = r.Int(status.CommandsRejected)
}

// Handler serves /ws and /health
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/ws", h.HandleWS)
	return mux
}

// Publish stores the latest frame for the next broadcast
func (h *Hub) Publish(f engine.Frame) {
	s := FromFrame(f)
	h.latest.Store(&s)
}

// Latest returns the most recent published snapshot, nil before the first frame
func (h *Hub) Latest() *WorldSnapshot { return h.latest.Load() }

// Run broadcasts the latest snapshot every interval until ctx is done
func (h *Hub) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = parameter.ReplicationInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Broadcast()
		}
	}
}

// Broadcast sends the latest snapshot to every client. Slow clients drop frames.
func (h *Hub) Broadcast() {
	state := h.latest.Load()
	if state == nil {
		return
	}
	payload, err := h.codec.Marshal(ServerEnvelope{
		Type:     TypeState,
		Tick:     state.Tick,
		State:    state,
		ServerMS: time.Now().UTC().UnixMilli(),
	})
	if err != nil {
		h.log.Error().Err(err).Msg("marshal state failed")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.dropped.Add(1)
			h.noisy.Debug().Uint64("client", c.id).Msg("client queue full, frame dropped")
		}
	}
	if h.gauges != nil {
		h.droppedG.Store(int64(h.dropped.Load()))
	}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns the number of frames not delivered to slow clients
func (h *Hub) Dropped() uint64 { return h.dropped.Load() }

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		_ = c.conn.Close()
	}
}

// HandleWS upgrades the request. An optional object query parameter binds
// the connection to one object.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	var bound core.ObjectID
	if q := r.URL.Query().Get("object"); q != "" {
		id, err := strconv.ParseUint(q, 10, 32)
		if err != nil {
			http.Error(w, "bad object id", http.StatusBadRequest)
			return
		}
		bound = core.ObjectID(id)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade error")
		return
	}

	c := &client{
		id:     h.nextID.Add(1),
		object: bound,
		conn:   conn,
		send:   make(chan []byte, parameter.ClientSendQueue),
	}
	h.register(c)
	h.log.Info().Uint64("client", c.id).Uint32("object", uint32(bound)).Str("remote", r.RemoteAddr).Msg("client connected")

	h.reply(c, ServerEnvelope{
		Type:     TypeWelcome,
		State:    h.latest.Load(),
		ServerMS: time.Now().UTC().UnixMilli(),
		Message:  "connected",
	})

	core.Go(func() { h.writePump(c) })
	h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(parameter.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(parameter.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(parameter.PongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Info().Uint64("client", c.id).Msg("client disconnected")
			} else {
				h.log.Debug().Uint64("client", c.id).Err(err).Msg("read error")
			}
			return
		}

		var in ClientEnvelope
		if err := h.codec.Unmarshal(msg, &in); err != nil {
			h.sendError(c, "bad_payload")
			continue
		}

		switch in.Type {
		case TypeInput:
			h.handleInput(c, in.Input)
		case TypePing:
			h.reply(c, ServerEnvelope{Type: TypePong, ServerMS: time.Now().UTC().UnixMilli()})
		default:
			h.sendError(c, "unsupported_message_type")
		}
	}
}

func (h *Hub) handleInput(c *client, in *DriveInput) {
	if in == nil {
		h.sendError(c, "missing_input")
		return
	}
	id := c.object
	if id == 0 {
		id = core.ObjectID(in.Object)
	}
	if id == 0 {
		h.sendError(c, "missing_object")
		return
	}
	if h.submit == nil || !h.submit.Submit(engine.Command{ID: id, Motor: in.Motor, Handbrake: in.Handbrake}) {
		if h.gauges != nil {
			h.rejectG.Add(1)
		}
		h.sendError(c, "queue_full")
		return
	}
	h.noisy.Trace().Uint64("client", c.id).Uint64("seq", in.Sequence).Msg("input queued")
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(parameter.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(parameter.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(h.codec.MessageType(), msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(parameter.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	h.countClients()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		close(c.send)
		delete(h.clients, c.id)
	}
	h.countClients()
}

// countClients updates the client gauge; callers hold mu
func (h *Hub) countClients() {
	if h.gauges != nil {
		h.clientsG.Store(int64(len(h.clients)))
	}
}

// reply queues an envelope for one client, dropping it when the queue is full
func (h *Hub) reply(c *client, env ServerEnvelope) {
	payload, err := h.codec.Marshal(env)
	if err != nil {
		h.log.Error().Err(err).Str("type", env.Type).Msg("marshal reply failed")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (h *Hub) sendError(c *client, message string) {
	h.reply(c, ServerEnvelope{Type: TypeError, Message: message})
}

func (h *Hub) handleHealth(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{
		"status":  "ok",
		"clients": h.Clients(),
	}
	if h.gauges != nil {
		body["gauges"] = h.gauges.Snapshot()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
