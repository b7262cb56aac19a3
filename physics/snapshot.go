package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
)

// State is a read-only view of one body for renderers and replication
type State struct {
	ID           core.ObjectID
	Type         core.ObjectType
	Position     mgl64.Vec3
	Rotation     mgl64.Vec3
	Velocity     mgl64.Vec3
	Motor        mgl64.Vec3
	Land         bool
	Swim         bool
	ReactorRange float64
	FloorHeight  float64
	WheelSlide   float64
	Suspension   [2]float64
	Lift         float64
	Status       Status
}

// Snapshot captures the current state
func (p *Physics) Snapshot() State {
	front, back, lift := p.Suspension()
	return State{
		ID:           p.body.ID(),
		Type:         p.body.Type(),
		Position:     p.body.Position(),
		Rotation:     p.body.Rotation(),
		Velocity:     p.WorldVelocity(),
		Motor:        p.motor,
		Land:         p.land,
		Swim:         p.swim,
		ReactorRange: p.reactorRange,
		FloorHeight:  p.floorHeight,
		WheelSlide:   p.wheelSlide,
		Suspension:   [2]float64{front, back},
		Lift:         lift,
		Status:       p.Status(),
	}
}
