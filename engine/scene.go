package engine

import (
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/savefile"
	"github.com/lixenwraith/rover/terrain"
)

// Scene commands
const (
	CmdTerrain = "Terrain"
	CmdZone    = "Zone"
	CmdCircuit = "Circuit"
	CmdObject  = "CreateObject"
)

// LoadScene reads a scene into the world. Unknown commands are skipped.
func LoadScene(w *World, r io.Reader) error {
	lines, err := savefile.Read(r)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	var ground *terrain.Heightmap
	for i, l := range lines {
		switch l.Command {
		case CmdTerrain:
			ground, err = buildTerrain(l)
			if err == nil {
				w.SetTerrain(ground)
				w.terrainLine = l.String()
				w.zoneLines = nil
			}
		case CmdZone:
			if ground == nil {
				err = fmt.Errorf("%w: zone before terrain", savefile.ErrMalformed)
				break
			}
			if err = addZone(ground, l); err == nil {
				w.zoneLines = append(w.zoneLines, l.String())
			}
		case CmdCircuit:
			var doors float64
			doors, err = l.Float("doors", 0)
			if err == nil {
				w.circuit.SetDoors(int(doors))
			}
		case CmdObject:
			err = loadObject(w, l)
		default:
			w.log.Debug().Str("command", l.Command).Msg("scene command skipped")
		}
		if err != nil {
			return fmt.Errorf("load scene: entry %d (%s): %w", i+1, l.Command, err)
		}
	}

	w.log.Info().Int("objects", w.Len()).Int("doors", w.circuit.Doors()).Msg("scene loaded")
	return nil
}

// params reads line values, keeping the first error
type params struct {
	l   savefile.Line
	err error
}

func (p *params) float(key string, def float64) float64 {
	if p.err != nil {
		return def
	}
	v, err := p.l.Float(key, def)
	if err != nil {
		p.err = err
	}
	return v
}

func (p *params) vec3(key string) mgl64.Vec3 {
	if p.err != nil {
		return mgl64.Vec3{}
	}
	v, err := p.l.Vec3(key, mgl64.Vec3{})
	if err != nil {
		p.err = err
	}
	return v
}

func (p *params) flag(key string, def bool) bool {
	if p.err != nil {
		return def
	}
	v, err := p.l.Bool(key, def)
	if err != nil {
		p.err = err
	}
	return v
}

func buildTerrain(l savefile.Line) (*terrain.Heightmap, error) {
	p := &params{l: l}
	size := p.float("size", 400)

	var h *terrain.Heightmap
	if seed := p.float("seed", 0); seed != 0 {
		cell := max(p.float("cell", 4), 0.5)
		n := int(size/cell) + 1
		h = terrain.Generate(terrain.Options{
			Width:     n,
			Depth:     n,
			Cell:      cell,
			MinHeight: p.float("min", 0),
			MaxHeight: p.float("max", 0),
			Seed:      seed,
		})
	} else {
		h = terrain.Flat(size)
	}
	h.SetWaterLevel(p.float("water", math.Inf(-1)))
	h.SetFlyingHeight(p.float("ceiling", 0))
	return h, p.err
}

func addZone(h *terrain.Heightmap, l savefile.Line) error {
	p := &params{l: l}
	pos := p.vec3("pos")
	z := terrain.Zone{
		Center:   mgl64.Vec2{pos[0], pos[2]},
		Radius:   p.float("radius", 0),
		Hardness: p.float("hardness", 1),
		Slow:     p.float("slow", 1),
		Lava:     p.flag("lava", false),
	}
	if p.err != nil {
		return p.err
	}
	h.AddZone(z)
	return nil
}

func loadObject(w *World, l savefile.Line) error {
	name, _ := l.Get("type")
	typ, ok := core.ParseObjectType(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, name)
	}

	p := &params{l: l}
	pos := p.vec3("pos")
	angle := p.vec3("angle")
	energy := p.float("energy", 1)
	health := p.float("health", 1)
	door := p.float("door", 0)
	if p.err != nil {
		return p.err
	}

	o, err := w.Spawn(typ, pos, angle[1])
	if err != nil {
		return err
	}
	o.SetRotation(angle)
	o.InstallCell(energy)
	o.SetHealth(health)
	o.SetDoor(int(door))

	if o.phys != nil {
		return o.phys.Read(l)
	}
	return nil
}

// SaveScene writes the ground, the circuit and every live object
func SaveScene(w *World, out io.Writer) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var lines []savefile.Line
	for _, raw := range append([]string{w.terrainLine}, w.zoneLines...) {
		if l, err := savefile.Parse(raw); err == nil {
			lines = append(lines, l)
		}
	}
	if n := w.circuit.Doors(); n > 0 {
		c := savefile.NewLine(CmdCircuit)
		c.SetFloat("doors", float64(n))
		lines = append(lines, c)
	}

	for _, o := range w.objects {
		if o.dying {
			continue
		}
		l := savefile.NewLine(CmdObject)
		l.Set("type", o.typ.String())
		l.SetVec3("pos", o.pos)
		l.SetVec3("angle", o.rot)
		if o.cell != nil {
			e := o.cell.energy
			if !o.cell.present {
				e = -1
			}
			l.SetFloat("energy", e)
		}
		if o.health < 1 {
			l.SetFloat("health", o.health)
		}
		if o.typ == core.ObjectTarget {
			l.SetFloat("door", float64(o.door))
		}
		if o.phys != nil {
			o.phys.Write(&l)
		}
		lines = append(lines, l)
	}

	if err := savefile.Write(out, lines); err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	return nil
}
