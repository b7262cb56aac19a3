package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/vmath"
)

// PassResult is the outcome of driving through a circuit door
type PassResult uint8

const (
	PassAdvanced PassResult = iota
	PassLapCompleted
	PassWrongOrder
	PassAlreadyPassed
	PassIgnored
)

func (r PassResult) String() string {
	switch r {
	case PassAdvanced:
		return "advanced"
	case PassLapCompleted:
		return "lap"
	case PassWrongOrder:
		return "wrong_order"
	case PassAlreadyPassed:
		return "already_passed"
	}
	return "ignored"
}

// Circuit is the door counter shared by all racers of a scene.
// A wrong door plays feedback only; progress is not reset.
type Circuit struct {
	doors int
	next  map[core.ObjectID]int
	laps  map[core.ObjectID]int
	log   zerolog.Logger
}

// NewCircuit creates a counter for doors numbered 0..doors-1
func NewCircuit(doors int, log zerolog.Logger) *Circuit {
	return &Circuit{
		doors: doors,
		next:  make(map[core.ObjectID]int),
		laps:  make(map[core.ObjectID]int),
		log:   log,
	}
}

// Doors returns the number of doors
func (c *Circuit) Doors() int {
	if c == nil {
		return 0
	}
	return c.doors
}

// SetDoors resizes the circuit and resets progress
func (c *Circuit) SetDoors(n int) {
	c.doors = n
	clear(c.next)
	clear(c.laps)
}

// Pass records a racer entering a door
func (c *Circuit) Pass(racer core.ObjectID, door int) PassResult {
	if c == nil || c.doors <= 0 || door < 0 || door >= c.doors {
		return PassIgnored
	}
	expected := c.next[racer]
	switch door {
	case expected:
		expected = (expected + 1) % c.doors
		c.next[racer] = expected
		if expected == 0 {
			c.laps[racer]++
			c.log.Info().Uint32("racer", uint32(racer)).Int("lap", c.laps[racer]).Msg("lap completed")
			return PassLapCompleted
		}
		return PassAdvanced
	case (expected - 1 + c.doors) % c.doors:
		return PassAlreadyPassed
	}
	c.log.Warn().
		Uint32("racer", uint32(racer)).
		Int("door", door).
		Int("expected", expected).
		Msg("circuit door out of order")
	return PassWrongOrder
}

// Next returns the door a racer must pass next
func (c *Circuit) Next(racer core.ObjectID) int {
	if c == nil {
		return 0
	}
	return c.next[racer]
}

// Laps returns completed laps of a racer
func (c *Circuit) Laps(racer core.ObjectID) int {
	if c == nil {
		return 0
	}
	return c.laps[racer]
}

// marker handles waypoint collection and circuit doors, triggering on entry only
func (p *Physics) marker(o Body, pos mgl64.Vec3) {
	cat := p.trait.Category
	if cat != core.CategoryVehicle && cat != core.CategoryHuman {
		return
	}

	dist := vmath.DistanceProjected(pos, o.Position())
	id := o.ID()

	if o.Type() == core.ObjectWaypoint {
		if dist < parameter.WaypointRadius {
			p.pyro(o.Position(), core.ParticleCheckpoint)
			p.sound(core.SoundWaypoint, o.Position(), 1, 1)
			p.log.Debug().Uint32("waypoint", uint32(id)).Msg("waypoint collected")
			o.Destroy(core.CauseCheckpoint)
		}
		return
	}

	door, ok := o.Checkpoint()
	if !ok {
		return
	}
	if dist >= parameter.TargetRadius {
		delete(p.inside, id)
		return
	}
	if p.inside[id] {
		return
	}
	p.inside[id] = true

	switch p.deps.Circuit.Pass(p.body.ID(), door) {
	case PassAdvanced:
		p.pyro(o.Position(), core.ParticleCheckpoint)
		p.sound(core.SoundWaypoint, o.Position(), 1, 1)
	case PassLapCompleted:
		p.pyro(o.Position(), core.ParticleCheckpoint)
		p.sound(core.SoundLap, o.Position(), 1, 1)
	case PassWrongOrder:
		p.sound(core.SoundError, o.Position(), 1, 1)
	}
}
