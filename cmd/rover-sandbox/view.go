package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/vmath"
)

// cellAspect is the height-to-width ratio of a terminal cell
const cellAspect = 2.0

// camera maps the XZ plane to screen cells, +Z pointing down the screen
type camera struct {
	center        mgl64.Vec2
	scale         float64 // world units per row
	width, height int
}

func (c camera) project(p mgl64.Vec3) (col, row int, ok bool) {
	if c.scale <= 0 {
		return 0, 0, false
	}
	dx := (p[0] - c.center[0]) / c.scale * cellAspect
	dz := (p[2] - c.center[1]) / c.scale
	col = c.width/2 + int(math.Round(dx))
	row = c.height/2 + int(math.Round(dz))
	ok = col >= 0 && col < c.width && row >= 0 && row < c.height
	return col, row, ok
}

// unproject returns the world XZ point at the cell center
func (c camera) unproject(col, row int) (x, z float64) {
	x = c.center[0] + float64(col-c.width/2)*c.scale/cellAspect
	z = c.center[1] + float64(row-c.height/2)*c.scale
	return x, z
}

func (c *camera) zoom(factor float64) {
	c.scale = vmath.Clamp(c.scale*factor, 0.25, 16)
}

var headingGlyphs = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// headingGlyph picks the arrow nearest to the yaw, positive yaw turning
// toward the top of the screen
func headingGlyph(yaw float64) rune {
	sector := int(math.Round(vmath.NormAngle(yaw)/(math.Pi/4))) % 8
	if sector < 0 {
		sector += 8
	}
	return headingGlyphs[sector]
}

var (
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleWarn     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorNavy)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleVehicle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleFlyer    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleBuilding = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	stylePlant    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleMarker   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHazard   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// objectGlyph returns the rune and style for static objects; vehicles use
// headingGlyph instead
func objectGlyph(typ core.ObjectType) (rune, tcell.Style) {
	switch typ {
	case core.ObjectFactory, core.ObjectPowerStation, core.ObjectDerrick:
		return '█', styleBuilding
	case core.ObjectBarrier:
		return '#', styleBuilding
	case core.ObjectPlant:
		return '♣', stylePlant
	case core.ObjectWaypoint:
		return '◇', styleMarker
	case core.ObjectTarget:
		return '◎', styleMarker
	case core.ObjectFlag:
		return '⚑', styleMarker
	case core.ObjectMine, core.ObjectTNT:
		return '✱', styleHazard
	case core.ObjectBox, core.ObjectTitanium, core.ObjectPowerCell:
		return '▪', styleVehicle
	default:
		return '?', styleVehicle
	}
}

// groundStyle shades a cell by height, with water and lava overriding
func groundStyle(height, lo, hi, water float64, lava bool) tcell.Style {
	switch {
	case lava:
		return tcell.StyleDefault.Background(tcell.NewRGBColor(120, 20, 0))
	case height < water:
		return tcell.StyleDefault.Background(tcell.NewRGBColor(10, 30, 90))
	}
	t := 0.5
	if hi > lo {
		t = vmath.Norm01((height - lo) / (hi - lo))
	}
	g := int32(40 + t*60)
	return tcell.StyleDefault.Background(tcell.NewRGBColor(g/2, g, g/3))
}

func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
