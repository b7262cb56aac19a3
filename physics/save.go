package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/savefile"
)

// Save keys
const (
	KeyMotor        = "motor"
	KeyReactorRange = "reactorRange"
	KeyLand         = "land"
)

// Write stores the persistent subset of the state into a save line
func (p *Physics) Write(l *savefile.Line) {
	l.SetVec3(KeyMotor, p.motor)
	if p.trait.Flying == core.FlyJet {
		l.SetFloat(KeyReactorRange, p.reactorRange)
	}
	if p.trait.IsFlying() {
		l.SetBool(KeyLand, p.land)
	}
}

// Read restores the persistent subset. Missing keys take defaults; unknown keys are ignored.
func (p *Physics) Read(l savefile.Line) error {
	motor, err := l.Vec3(KeyMotor, mgl64.Vec3{})
	if err != nil {
		return fmt.Errorf("physics %d: %w", p.body.ID(), err)
	}
	p.SetMotorSpeed(motor)

	if p.trait.Flying == core.FlyJet {
		r, err := l.Float(KeyReactorRange, 1)
		if err != nil {
			return fmt.Errorf("physics %d: %w", p.body.ID(), err)
		}
		p.SetReactorRange(r)
		p.reactorDepleted = p.reactorRange <= 0
	}

	if p.trait.IsFlying() {
		land, err := l.Bool(KeyLand, true)
		if err != nil {
			return fmt.Errorf("physics %d: %w", p.body.ID(), err)
		}
		p.SetLand(land)
	}
	return nil
}
