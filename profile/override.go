package profile

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/rover/core"
)

// Override carries optional tuning for one object type, decoded from the profiles config section.
// Nil fields keep the built-in value.
type Override struct {
	Mass            *float64 `mapstructure:"mass"`
	AdvanceSpeed    *float64 `mapstructure:"advance_speed"`
	RecedeSpeed     *float64 `mapstructure:"recede_speed"`
	AdvanceAccel    *float64 `mapstructure:"advance_accel"`
	TurnSpeed       *float64 `mapstructure:"turn_speed"`
	ClimbSpeed      *float64 `mapstructure:"climb_speed"`
	Grip            *float64 `mapstructure:"grip"`
	ReactorRange    *float64 `mapstructure:"reactor_range"`
	ReactorRecharge *float64 `mapstructure:"reactor_recharge"`
	FallDamageSpeed *float64 `mapstructure:"fall_damage_speed"`
	EnergyUse       *float64 `mapstructure:"energy_use"`
}

// Apply returns a copy of the table with overrides merged in, keyed by type name
func (t *Table) Apply(overrides map[string]Override) (*Table, error) {
	out := &Table{profiles: make(map[core.ObjectType]Profile, len(t.profiles))}
	for typ, p := range t.profiles {
		out.profiles[typ] = p
	}

	// Sorted for deterministic error reporting
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		typ, ok := core.ParseObjectType(name)
		if !ok {
			return nil, fmt.Errorf("profile override: unknown object type %q", name)
		}
		p, ok := out.profiles[typ]
		if !ok {
			return nil, fmt.Errorf("profile override: type %s has no profile", typ)
		}
		p.Character = overrides[name].merge(p.Character)
		out.profiles[typ] = p
	}
	return out, nil
}

func (o Override) merge(c Character) Character {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.Mass, o.Mass)
	set(&c.Linear.AdvanceSpeed[0], o.AdvanceSpeed)
	set(&c.Linear.RecedeSpeed[0], o.RecedeSpeed)
	set(&c.Linear.AdvanceAccel[0], o.AdvanceAccel)
	set(&c.Circular.AdvanceSpeed[1], o.TurnSpeed)
	set(&c.Circular.RecedeSpeed[1], o.TurnSpeed)
	if o.ClimbSpeed != nil {
		c.Linear.AdvanceSpeed[1] = *o.ClimbSpeed
		c.Linear.RecedeSpeed[1] = *o.ClimbSpeed
	}
	set(&c.Grip, o.Grip)
	set(&c.ReactorRange, o.ReactorRange)
	set(&c.ReactorRecharge, o.ReactorRecharge)
	set(&c.FallDamageSpeed, o.FallDamageSpeed)
	set(&c.EnergyUse, o.EnergyUse)
	return c
}
