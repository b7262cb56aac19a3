package status

import "sync/atomic"

// Gauge names published by the server
const (
	SimTick          = "sim.tick"
	SimTime          = "sim.time"
	SimObjects       = "sim.objects"
	ParticlesLive    = "particles.live"
	StreamClients    = "stream.clients"
	StreamDropped    = "stream.dropped"
	CommandsRejected = "commands.rejected"
)

// Registry is the gauge facade. Writers cache the pointer once and store to
// the atomic directly; Snapshot reads everything for reporting.
type Registry struct {
	ints   *gauges[atomic.Int64]
	floats *gauges[Float]
}

func NewRegistry() *Registry {
	return &Registry{
		ints:   newGauges[atomic.Int64](),
		floats: newGauges[Float](),
	}
}

// Int returns the integer gauge for name, creating it on first use
func (r *Registry) Int(name string) *atomic.Int64 { return r.ints.get(name) }

// Float returns the float gauge for name, creating it on first use
func (r *Registry) Float(name string) *Float { return r.floats.get(name) }

// Len returns the number of gauges
func (r *Registry) Len() int {
	return r.ints.count() + r.floats.count()
}

// Snapshot returns the current value of every gauge keyed by name
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.Len())
	r.ints.each(func(name string, p *atomic.Int64) { out[name] = p.Load() })
	r.floats.each(func(name string, p *Float) { out[name] = p.Load() })
	return out
}
