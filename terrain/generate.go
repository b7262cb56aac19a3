package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Hill raises a smooth bump over the base noise
type Hill struct {
	Center mgl64.Vec2 // fraction of the map extent, 0..1
	Height float64
	Radius float64 // in samples
}

// Options controls procedural generation
type Options struct {
	Width, Depth int
	Cell         float64
	MinHeight    float64
	MaxHeight    float64
	Seed         float64
	Hills        []Hill
}

var (
	octaveScales     = []float64{1.0, 0.5, 0.25, 0.125, 0.0625}
	octaveAmplitudes = []float64{0.5, 0.25, 0.125, 0.0625, 0.03125}
)

// hash2 returns a deterministic pseudo-random value in [0, 1)
func hash2(x, y float64) float64 {
	s := math.Abs(math.Sin(x*12.9898+y*78.233) * 43758.5453)
	return s - math.Floor(s)
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// valueNoise interpolates lattice hashes with smoothstep weights
func valueNoise(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	sx, sy := smoothstep(x-x0), smoothstep(y-y0)

	n00 := hash2(x0, y0)
	n10 := hash2(x0+1, y0)
	n01 := hash2(x0, y0+1)
	n11 := hash2(x0+1, y0+1)

	a := n00 + (n10-n00)*sx
	b := n01 + (n11-n01)*sx
	return a + (b-a)*sy
}

// Generate builds fractal terrain with optional hills. Identical options
// produce identical maps.
func Generate(opt Options) *Heightmap {
	h := New(opt.Width, opt.Depth, opt.Cell)
	span := opt.MaxHeight - opt.MinHeight

	for j := 0; j < h.depth; j++ {
		for i := 0; i < h.width; i++ {
			nx := float64(i) / float64(h.width-1)
			nz := float64(j) / float64(h.depth-1)

			v := 0.0
			for k, scale := range octaveScales {
				v += valueNoise(nx*scale*10+opt.Seed, nz*scale*10+opt.Seed) * octaveAmplitudes[k]
			}

			for _, hill := range opt.Hills {
				if hill.Radius <= 0 {
					continue
				}
				dx := float64(i) - hill.Center[0]*float64(h.width)
				dz := float64(j) - hill.Center[1]*float64(h.depth)
				d := math.Sqrt(dx*dx + dz*dz)
				if d < hill.Radius {
					f := 1 - d/hill.Radius
					v += hill.Height * f * f
				}
			}

			h.heights[j*h.width+i] = opt.MinHeight + v*span
		}
	}
	return h
}
