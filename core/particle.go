package core

// ParticleType selects the visual effect spawned by physics
type ParticleType int

const (
	ParticleDust     ParticleType = iota // Wheel dust on dry ground
	ParticleSmoke                        // Burnout smoke
	ParticleCrash                        // Ground impact puff
	ParticleSpark                        // Metal collision sparks
	ParticleSplash                       // Water entry
	ParticleBubble                       // Underwater motion
	ParticleFlame                        // Jet reactor exhaust
	ParticleCheckpoint                   // Waypoint pyro
	ParticleDebris                       // Destruction fragments
	ParticleTypeCount
)

// Glyph returns the rune used by terminal renderers
func (p ParticleType) Glyph() rune {
	switch p {
	case ParticleDust:
		return '.'
	case ParticleSmoke:
		return ':'
	case ParticleCrash:
		return '*'
	case ParticleSpark:
		return '+'
	case ParticleSplash, ParticleBubble:
		return 'o'
	case ParticleFlame:
		return '^'
	case ParticleCheckpoint:
		return '#'
	case ParticleDebris:
		return '%'
	default:
		return '?'
	}
}
