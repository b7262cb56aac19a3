package engine

import (
	"bytes"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/savefile"
	"github.com/lixenwraith/rover/vmath"
)

// DemoOptions shapes the generated sandbox scene
type DemoOptions struct {
	Seed   uint64
	Size   float64
	Cars   int
	Flyers int
	Doors  int
	Plants int
}

// DefaultDemo is the scene the sandbox and server start with
func DefaultDemo() DemoOptions {
	return DemoOptions{Seed: 1, Size: 240, Cars: 3, Flyers: 2, Doors: 4, Plants: 12}
}

// DemoScene builds a scene: hilly ground with a lava pool and a mud patch,
// a ring of circuit targets, buildings, plants, a mine field and vehicles.
// The first object is always the player race car.
func DemoScene(opt DemoOptions) []savefile.Line {
	if opt.Size <= 0 {
		opt.Size = DefaultDemo().Size
	}
	rng := vmath.NewFastRand(opt.Seed + 1)
	half := opt.Size / 2
	var lines []savefile.Line

	ground := savefile.NewLine(CmdTerrain)
	ground.SetFloat("size", opt.Size)
	ground.SetFloat("seed", float64(opt.Seed%1000)+1)
	ground.SetFloat("cell", 4)
	ground.SetFloat("min", 0)
	ground.SetFloat("max", 6)
	ground.SetFloat("water", -1)
	ground.SetFloat("ceiling", 50)
	lines = append(lines, ground)

	lava := savefile.NewLine(CmdZone)
	lava.SetVec3("pos", mgl64.Vec3{half * 0.6, 0, -half * 0.6})
	lava.SetFloat("radius", 8)
	lava.SetBool("lava", true)
	mud := savefile.NewLine(CmdZone)
	mud.SetVec3("pos", mgl64.Vec3{-half * 0.5, 0, half * 0.4})
	mud.SetFloat("radius", 14)
	mud.SetFloat("slow", 0.4)
	mud.SetFloat("hardness", 0.3)
	lines = append(lines, lava, mud)

	object := func(typ core.ObjectType, pos mgl64.Vec3, yaw float64) *savefile.Line {
		l := savefile.NewLine(CmdObject)
		l.Set("type", typ.String())
		l.SetVec3("pos", pos)
		if yaw != 0 {
			l.SetVec3("angle", mgl64.Vec3{0, yaw, 0})
		}
		lines = append(lines, l)
		return &lines[len(lines)-1]
	}
	scatter := func(margin float64) mgl64.Vec3 {
		return mgl64.Vec3{rng.Spread(half - margin), 0, rng.Spread(half - margin)}
	}

	object(core.ObjectRaceCar, mgl64.Vec3{0, 0, -half * 0.35}, 0)

	if opt.Doors > 0 {
		c := savefile.NewLine(CmdCircuit)
		c.SetFloat("doors", float64(opt.Doors))
		lines = append(lines, c)
		radius := half * 0.55
		for i := 0; i < opt.Doors; i++ {
			a := 2 * math.Pi * float64(i) / float64(opt.Doors)
			t := object(core.ObjectTarget, mgl64.Vec3{math.Sin(a) * radius, 0, -math.Cos(a) * radius}, a)
			t.SetFloat("door", float64(i+1))
		}
	}

	object(core.ObjectWaypoint, mgl64.Vec3{-half * 0.3, 0, -half * 0.3}, 0)
	object(core.ObjectWaypoint, mgl64.Vec3{half * 0.3, 0, half * 0.3}, 0)

	object(core.ObjectFactory, mgl64.Vec3{-half * 0.7, 0, -half * 0.7}, 0)
	object(core.ObjectPowerStation, mgl64.Vec3{-half * 0.7, 0, -half * 0.45}, 0)
	object(core.ObjectDerrick, mgl64.Vec3{half * 0.7, 0, half * 0.7}, 0)
	object(core.ObjectBarrier, mgl64.Vec3{0, 0, half * 0.2}, math.Pi/2)

	for i := 0; i < opt.Plants; i++ {
		object(core.ObjectPlant, scatter(10), 0)
	}
	for i := 0; i < 3; i++ {
		object(core.ObjectMine, mgl64.Vec3{half*0.2 + float64(i)*6, 0, -half * 0.1}, 0)
	}
	object(core.ObjectBox, mgl64.Vec3{8, 0, -half * 0.35}, 0)
	object(core.ObjectTitanium, mgl64.Vec3{-8, 0, -half * 0.35}, 0)

	cars := []core.ObjectType{core.ObjectWheeled, core.ObjectTracked, core.ObjectLegged, core.ObjectTank}
	for i := 0; i < opt.Cars; i++ {
		object(cars[i%len(cars)], scatter(20), rng.Range(-math.Pi, math.Pi))
	}
	for i := 0; i < opt.Flyers; i++ {
		pos := scatter(20)
		pos[1] = 12 + float64(i)*4
		f := object(core.ObjectWinged, pos, rng.Range(-math.Pi, math.Pi))
		f.SetBool("land", false)
	}
	return lines
}

// LoadDemo fills the world with DemoScene through the scene loader
func LoadDemo(w *World, opt DemoOptions) error {
	var buf bytes.Buffer
	if err := savefile.Write(&buf, DemoScene(opt)); err != nil {
		return err
	}
	return LoadScene(w, &buf)
}
