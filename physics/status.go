package physics

// Status is the condition shown on an object's status icon
type Status uint8

const (
	StatusOK Status = iota
	StatusNoPowerCell
	StatusEmptyBattery
	StatusVirus
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoPowerCell:
		return "no_power_cell"
	case StatusEmptyBattery:
		return "empty_battery"
	case StatusVirus:
		return "virus"
	}
	return "unknown"
}

// Status reports the first failing condition: virus, missing cell, empty cell
func (p *Physics) Status() Status {
	if p.body.VirusActive() {
		return StatusVirus
	}
	if !p.trait.UsesPower {
		return StatusOK
	}
	pc, ok := p.body.Powered()
	if !ok {
		return StatusOK
	}
	if !pc.HasPowerCell() {
		return StatusNoPowerCell
	}
	if pc.Energy() <= 0 {
		return StatusEmptyBattery
	}
	return StatusOK
}
