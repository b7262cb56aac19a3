// Package terrain provides heightmap ground with soft, slow and lava zones.
package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/vmath"
)

// Zone overrides ground properties inside a circle on the XZ plane
type Zone struct {
	Center   mgl64.Vec2
	Radius   float64
	Hardness float64 // 0 soft .. 1 hard
	Slow     float64 // top speed multiplier, 1 is no effect
	Lava     bool
}

func (z Zone) contains(x, zz float64) bool {
	dx, dz := x-z.Center[0], zz-z.Center[1]
	return dx*dx+dz*dz < z.Radius*z.Radius
}

// Heightmap is a regular grid of heights centered on the world origin.
// Queries outside the grid clamp to the border.
type Heightmap struct {
	width, depth int
	cell         float64
	heights      []float64

	water   float64
	ceiling float64
	zones   []Zone
}

// New creates a zero heightmap of width × depth samples spaced cell apart
func New(width, depth int, cell float64) *Heightmap {
	width = max(width, 2)
	depth = max(depth, 2)
	if cell <= 0 {
		cell = 1
	}
	return &Heightmap{
		width:   width,
		depth:   depth,
		cell:    cell,
		heights: make([]float64, width*depth),
		water:   math.Inf(-1),
	}
}

// Flat creates a level square of the given side length
func Flat(size float64) *Heightmap {
	return New(2, 2, size)
}

// Size returns the world extent on X and Z
func (h *Heightmap) Size() (x, z float64) {
	return float64(h.width-1) * h.cell, float64(h.depth-1) * h.cell
}

// Set stores the height of one grid sample
func (h *Heightmap) Set(i, j int, v float64) {
	if i < 0 || j < 0 || i >= h.width || j >= h.depth {
		return
	}
	h.heights[j*h.width+i] = v
}

func (h *Heightmap) at(i, j int) float64 {
	i = min(max(i, 0), h.width-1)
	j = min(max(j, 0), h.depth-1)
	return h.heights[j*h.width+i]
}

// grid converts world XZ into fractional grid coordinates
func (h *Heightmap) grid(x, z float64) (float64, float64) {
	sx, sz := h.Size()
	gx := (x + sx/2) / h.cell
	gz := (z + sz/2) / h.cell
	return vmath.Clamp(gx, 0, float64(h.width-1)), vmath.Clamp(gz, 0, float64(h.depth-1))
}

// Height interpolates bilinearly between the four surrounding samples
func (h *Heightmap) Height(x, z float64) float64 {
	gx, gz := h.grid(x, z)
	i, j := int(gx), int(gz)
	fx, fz := gx-float64(i), gz-float64(j)

	h00 := h.at(i, j)
	h10 := h.at(i+1, j)
	h01 := h.at(i, j+1)
	h11 := h.at(i+1, j+1)

	a := h00 + (h10-h00)*fx
	b := h01 + (h11-h01)*fx
	return a + (b-a)*fz
}

// Normal returns the unit surface normal from central differences
func (h *Heightmap) Normal(x, z float64) mgl64.Vec3 {
	d := h.cell * 0.5
	dx := (h.Height(x+d, z) - h.Height(x-d, z)) / (2 * d)
	dz := (h.Height(x, z+d) - h.Height(x, z-d)) / (2 * d)
	return mgl64.Vec3{-dx, 1, -dz}.Normalize()
}

// SetWaterLevel sets the global water plane; -Inf disables water
func (h *Heightmap) SetWaterLevel(level float64) { h.water = level }

func (h *Heightmap) WaterLevel() float64 { return h.water }

// SetFlyingHeight sets the flight ceiling above ground; 0 is unlimited
func (h *Heightmap) SetFlyingHeight(ceiling float64) { h.ceiling = max(0, ceiling) }

func (h *Heightmap) FlyingHeight() float64 { return h.ceiling }

// AddZone appends a ground property override; later zones win
func (h *Heightmap) AddZone(z Zone) {
	h.zones = append(h.zones, z)
}

// Zones returns the zone list
func (h *Heightmap) Zones() []Zone { return h.zones }

func (h *Heightmap) zone(x, z float64) (Zone, bool) {
	for i := len(h.zones) - 1; i >= 0; i-- {
		if h.zones[i].contains(x, z) {
			return h.zones[i], true
		}
	}
	return Zone{}, false
}

// Hardness returns ground hardness, 1 outside every zone
func (h *Heightmap) Hardness(x, z float64) float64 {
	if zn, ok := h.zone(x, z); ok {
		return vmath.Norm01(zn.Hardness)
	}
	return 1
}

// SlowFactor returns the top speed multiplier, 1 outside every zone
func (h *Heightmap) SlowFactor(x, z float64) float64 {
	if zn, ok := h.zone(x, z); ok && zn.Slow > 0 {
		return vmath.Norm01(zn.Slow)
	}
	return 1
}

func (h *Heightmap) IsLava(x, z float64) bool {
	zn, ok := h.zone(x, z)
	return ok && zn.Lava
}
