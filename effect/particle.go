// Package effect keeps short-lived visual particles emitted by physics
package effect

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
)

// Particle is one live visual effect
type Particle struct {
	Kind     core.ParticleType
	Pos      mgl64.Vec3
	Speed    mgl64.Vec3
	Size     float64
	Age      float64
	Duration float64
}

// Life returns the remaining fraction in [0, 1]
func (p *Particle) Life() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return max(0, 1-p.Age/p.Duration)
}

// System stores particles in pre-allocated storage. When full, the oldest
// particle is overwritten. Not safe for concurrent use.
type System struct {
	backing []Particle
	head    int // index of the oldest particle
	count   int

	gravity float64

	emitted uint64
	dropped uint64
}

// NewSystem creates a particle store holding up to capacity particles
func NewSystem(capacity int) *System {
	if capacity <= 0 {
		capacity = parameter.ParticleCapacity
	}
	return &System{
		backing: make([]Particle, capacity),
		gravity: parameter.Gravity * 0.3,
	}
}

// Emit implements physics.ParticleSink
func (s *System) Emit(kind core.ParticleType, pos, speed mgl64.Vec3, size, duration float64) {
	if duration <= 0 {
		return
	}
	s.emitted++
	p := Particle{Kind: kind, Pos: pos, Speed: speed, Size: size, Duration: duration}

	if s.count == len(s.backing) {
		s.backing[s.head] = p
		s.head = (s.head + 1) % len(s.backing)
		s.dropped++
		return
	}
	s.backing[(s.head+s.count)%len(s.backing)] = p
	s.count++
}

// Update ages and moves particles, compacting expired ones out
func (s *System) Update(dt float64) {
	if dt <= 0 || s.count == 0 {
		return
	}
	n := len(s.backing)
	kept := 0
	for i := 0; i < s.count; i++ {
		p := s.backing[(s.head+i)%n]
		p.Age += dt
		if p.Age >= p.Duration {
			continue
		}
		if falls(p.Kind) {
			p.Speed[1] -= s.gravity * dt
		}
		p.Pos = p.Pos.Add(p.Speed.Mul(dt))
		s.backing[(s.head+kept)%n] = p
		kept++
	}
	s.count = kept
}

// falls reports whether a particle kind is pulled down
func falls(kind core.ParticleType) bool {
	switch kind {
	case core.ParticleSmoke, core.ParticleBubble, core.ParticleFlame:
		return false
	}
	return true
}

// Each visits live particles from oldest to newest until fn returns false
func (s *System) Each(fn func(*Particle) bool) {
	n := len(s.backing)
	for i := 0; i < s.count; i++ {
		if !fn(&s.backing[(s.head+i)%n]) {
			return
		}
	}
}

// Count returns the number of live particles
func (s *System) Count() int { return s.count }

// Stats returns total emitted and overwritten particles
func (s *System) Stats() (emitted, dropped uint64) { return s.emitted, s.dropped }

// Clear drops every particle
func (s *System) Clear() {
	s.head = 0
	s.count = 0
}
