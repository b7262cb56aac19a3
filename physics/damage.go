package physics

import (
	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
)

// Impact is the effect of a collision on the moving body
type Impact uint8

const (
	ImpactPassThrough Impact = iota
	ImpactBounce
	ImpactDamaged
	ImpactDestroyed
)

func (i Impact) String() string {
	switch i {
	case ImpactPassThrough:
		return "pass"
	case ImpactBounce:
		return "bounce"
	case ImpactDamaged:
		return "damaged"
	case ImpactDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// exploOther damages the obstacle according to its category
func (p *Physics) exploOther(o Body, force float64) {
	ot := o.Trait()
	switch ot.Category {
	case core.CategoryExplosive:
		if force > parameter.ExplosiveTrigger {
			p.log.Info().Uint32("obstacle", uint32(o.ID())).Float64("force", force).Msg("explosive triggered")
			p.explosion(o)
			o.Destroy(core.CauseExplosion)
		}
	case core.CategoryBuilding, core.CategoryVehicle, core.CategoryInsect, core.CategoryHuman, core.CategoryOre:
		if ot.DamageDivisor <= 0 || force <= ot.DamageThreshold {
			return
		}
		d, ok := o.Damageable()
		if !ok {
			return
		}
		if d.Damage((force-ot.DamageThreshold)/ot.DamageDivisor, core.CauseCollision) {
			p.log.Info().Uint32("obstacle", uint32(o.ID())).Float64("force", force).Msg("obstacle destroyed")
			p.explosion(o)
			o.Destroy(core.CauseCollision)
		}
	}
}

// exploHimself applies the collision to the moving body
func (p *Physics) exploHimself(o Body, force float64) Impact {
	ot := o.Trait()
	if ot.PassThrough {
		return ImpactPassThrough
	}

	amount := 0.0
	cause := core.CauseCollision
	if ot.Explosive && force > parameter.ExplosiveTrigger {
		amount = 0.6
		cause = core.CauseExplosion
	} else if p.trait.DamageDivisor > 0 && force > p.trait.DamageThreshold {
		amount = (force - p.trait.DamageThreshold) / p.trait.DamageDivisor
	}
	if amount <= 0 {
		return ImpactBounce
	}

	d, ok := p.body.Damageable()
	if !ok {
		return ImpactBounce
	}
	if d.Damage(amount, cause) {
		p.log.Info().Str("cause", cause.String()).Float64("force", force).Msg("destroyed by collision")
		p.explosion(p.body)
		p.body.Destroy(cause)
		return ImpactDestroyed
	}
	return ImpactDamaged
}
