package profile

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
)

// Profile pairs the behavior and the physical description of a type
type Profile struct {
	Trait     Trait
	Character Character
}

// Table maps object types to profiles. A Table is read-only once handed to physics.
type Table struct {
	profiles map[core.ObjectType]Profile
}

// Lookup returns the profile of a type
func (t *Table) Lookup(typ core.ObjectType) (Profile, bool) {
	p, ok := t.profiles[typ]
	return p, ok
}

// Types returns all types present in the table in enum order
func (t *Table) Types() []core.ObjectType {
	out := make([]core.ObjectType, 0, len(t.profiles))
	for typ := core.ObjectType(0); typ < core.ObjectTypeCount; typ++ {
		if _, ok := t.profiles[typ]; ok {
			out = append(out, typ)
		}
	}
	return out
}

func groundLinear(advance, recede, accel float64) MotionProfile {
	return MotionProfile{
		AdvanceAccel: mgl64.Vec3{accel, 0, 0},
		RecedeAccel:  mgl64.Vec3{accel, 0, 0},
		StopAccel:    mgl64.Vec3{accel * 1.5, 0, 0},
		AdvanceSpeed: mgl64.Vec3{advance, 0, 0},
		RecedeSpeed:  mgl64.Vec3{recede, 0, 0},
		TerrainForce: mgl64.Vec3{10, 0, 10},
		TerrainSlide: mgl64.Vec3{4, 0, 4},
	}
}

func flyingLinear(advance, recede, accel, climb float64) MotionProfile {
	m := groundLinear(advance, recede, accel)
	m.AdvanceAccel[1] = climb * 2
	m.RecedeAccel[1] = climb * 2
	m.StopAccel[1] = climb * 2
	m.AdvanceSpeed[1] = climb
	m.RecedeSpeed[1] = climb
	return m
}

func turning(speed, accel float64) MotionProfile {
	return MotionProfile{
		AdvanceAccel: mgl64.Vec3{0, accel, 0},
		RecedeAccel:  mgl64.Vec3{0, accel, 0},
		StopAccel:    mgl64.Vec3{0, accel * 2, 0},
		AdvanceSpeed: mgl64.Vec3{0, speed, 0},
		RecedeSpeed:  mgl64.Vec3{0, speed, 0},
	}
}

func sphere(x, y, z, r, hardness float64, snd core.SoundType) core.CrashSphere {
	return core.CrashSphere{Pos: mgl64.Vec3{x, y, z}, Radius: r, Hardness: hardness, Sound: snd}
}

func box(halfX, halfZ, hardness float64, snd core.SoundType) core.CrashLine {
	return core.CrashLine{
		Points: []mgl64.Vec2{
			{-halfX, -halfZ}, {halfX, -halfZ}, {halfX, halfZ}, {-halfX, halfZ},
		},
		Hardness: hardness,
		Sound:    snd,
	}
}

func vehicle(name string, physics core.PhysicsType, snd MotorSound) Trait {
	return Trait{
		Name:            name,
		Category:        core.CategoryVehicle,
		Physics:         physics,
		UsesPower:       true,
		MotorSound:      snd,
		DamageThreshold: parameter.VehicleDamageThreshold,
		DamageDivisor:   parameter.VehicleDamageDivisor,
	}
}

func insect(name string, radius float64) Trait {
	return Trait{
		Name:            name,
		Category:        core.CategoryInsect,
		Physics:         core.PhysicsNormal,
		DamageThreshold: parameter.InsectDamageThreshold,
		DamageDivisor:   parameter.InsectDamageDivisor,
		Spheres:         []core.CrashSphere{sphere(0, 1, 0, radius, 0.5, core.SoundImpactSoft)},
	}
}

func building(name string, halfX, halfZ, radius float64) Trait {
	return Trait{
		Name:            name,
		Category:        core.CategoryBuilding,
		DamageThreshold: parameter.BuildingDamageThreshold,
		DamageDivisor:   parameter.BuildingDamageDivisor,
		Spheres:         []core.CrashSphere{sphere(0, 3, 0, radius, 0.9, core.SoundImpactMetal)},
		Lines:           []core.CrashLine{box(halfX, halfZ, 0.9, core.SoundImpactMetal)},
	}
}

var motorWheels = MotorSound{Idle: core.SoundMotorIdle, Full: core.SoundMotorFull}
var motorTrack = MotorSound{Idle: core.SoundMotorIdle, Full: core.SoundMotorTrack}
var motorJet = MotorSound{Idle: core.SoundMotorIdle, Full: core.SoundMotorJet}

func rover() Character {
	return Character{
		Mass:            1000,
		WheelFront:      3,
		WheelBack:       3,
		WheelLeft:       2,
		WheelRight:      2,
		Height:          1,
		CrashFront:      3.5,
		CrashBack:       3.5,
		CrashWidth:      2.5,
		Grip:            4,
		FallDamageSpeed: 20,
		EnergyUse:       1,
		Linear:          groundLinear(20, 10, 15),
		Circular:        turning(math.Pi, 2*math.Pi),
	}
}

// Default returns the built-in profile table
func Default() *Table {
	m := make(map[core.ObjectType]Profile)

	human := Trait{
		Name:            "Human",
		Category:        core.CategoryHuman,
		Physics:         core.PhysicsNormal,
		Flying:          core.FlyJet,
		Upright:         true,
		MotorSound:      motorJet,
		DamageThreshold: parameter.VehicleDamageThreshold,
		DamageDivisor:   parameter.VehicleDamageDivisor,
		Spheres:         []core.CrashSphere{sphere(0, 1.5, 0, 1, 0.2, core.SoundImpactSoft)},
	}
	humanChar := Character{
		Mass:            80,
		WheelFront:      0.5,
		WheelBack:       0.5,
		WheelLeft:       0.5,
		WheelRight:      0.5,
		Height:          1.8,
		Grip:            8,
		ReactorRange:    10,
		ReactorRecharge: 5,
		FallDamageSpeed: 25,
		EnergyUse:       0.5,
		Linear:          flyingLinear(8, 4, 20, 10),
		Circular:        turning(1.5*math.Pi, 4*math.Pi),
	}
	m[core.ObjectHuman] = Profile{Trait: human, Character: humanChar}

	tech := human
	tech.Name = "Tech"
	tech.Flying = core.FlyNone
	techChar := humanChar
	techChar.Linear = groundLinear(8, 4, 20)
	techChar.ReactorRange = 0
	m[core.ObjectTech] = Profile{Trait: tech, Character: techChar}

	wheeled := vehicle("Wheeled", core.PhysicsNormal, motorWheels)
	wheeled.WheelParticles = true
	wheeled.Spheres = []core.CrashSphere{sphere(0, 1, 0, 3, 0.45, core.SoundImpactMetal)}
	m[core.ObjectWheeled] = Profile{Trait: wheeled, Character: rover()}

	tracked := vehicle("Tracked", core.PhysicsNormal, motorTrack)
	tracked.Spheres = []core.CrashSphere{sphere(0, 1, 0, 3, 0.6, core.SoundImpactMetal)}
	trackedChar := rover()
	trackedChar.Linear = groundLinear(15, 8, 10)
	trackedChar.Linear.TerrainSlide = mgl64.Vec3{8, 0, 8}
	trackedChar.Circular = turning(0.8*math.Pi, 2*math.Pi)
	m[core.ObjectTracked] = Profile{Trait: tracked, Character: trackedChar}

	legged := vehicle("Legged", core.PhysicsNormal, motorWheels)
	legged.Spheres = []core.CrashSphere{sphere(0, 1, 0, 3, 0.5, core.SoundImpactMetal)}
	leggedChar := rover()
	leggedChar.Linear = groundLinear(10, 5, 10)
	leggedChar.Linear.TerrainSlide = mgl64.Vec3{10, 0, 10}
	m[core.ObjectLegged] = Profile{Trait: legged, Character: leggedChar}

	winged := vehicle("Winged", core.PhysicsNormal, motorJet)
	winged.Flying = core.FlyJet
	winged.Spheres = []core.CrashSphere{sphere(0, 1, 0, 3, 0.45, core.SoundImpactMetal)}
	wingedChar := rover()
	wingedChar.ReactorRange = 30
	wingedChar.ReactorRecharge = 10
	wingedChar.Linear = flyingLinear(20, 10, 15, 15)
	m[core.ObjectWinged] = Profile{Trait: winged, Character: wingedChar}

	race := vehicle("RaceCar", core.PhysicsRace, motorWheels)
	race.Rectangular = true
	race.WheelParticles = true
	race.Spheres = []core.CrashSphere{sphere(0, 1, 0, 3.5, 0.6, core.SoundImpactMetal)}
	raceChar := rover()
	raceChar.Mass = 900
	raceChar.CrashFront, raceChar.CrashBack, raceChar.CrashWidth = 3.2, 3.2, 1.8
	raceChar.SuspStiffness, raceChar.SuspDamping, raceChar.SuspStroke = 40, 6, 0.6
	raceChar.Grip = 6
	raceChar.Linear = groundLinear(40, 15, 25)
	raceChar.Circular = turning(1.2*math.Pi, 3*math.Pi)
	m[core.ObjectRaceCar] = Profile{Trait: race, Character: raceChar}

	tank := vehicle("Tank", core.PhysicsTank, motorTrack)
	tank.Rectangular = true
	tank.Spheres = []core.CrashSphere{sphere(0, 1.5, 0, 4, 0.8, core.SoundImpactMetal)}
	tankChar := rover()
	tankChar.Mass = 3000
	tankChar.CrashFront, tankChar.CrashBack, tankChar.CrashWidth = 4, 4, 2.8
	tankChar.Linear = groundLinear(12, 8, 8)
	tankChar.Circular = turning(0.6*math.Pi, 1.5*math.Pi)
	m[core.ObjectTank] = Profile{Trait: tank, Character: tankChar}

	mass := Trait{
		Name:            "Box",
		Category:        core.CategoryOre,
		Physics:         core.PhysicsMass,
		Movable:         true,
		DamageThreshold: parameter.BuildingDamageThreshold,
		DamageDivisor:   parameter.BuildingDamageDivisor,
		Spheres:         []core.CrashSphere{sphere(0, 1, 0, 1.5, 0.7, core.SoundImpact)},
	}
	massChar := Character{
		Mass:       400,
		WheelFront: 1,
		WheelBack:  1,
		WheelLeft:  1,
		WheelRight: 1,
		Grip:       6,
		Linear:     groundLinear(10, 10, 10),
		Circular:   turning(math.Pi, 2*math.Pi),
	}
	m[core.ObjectBox] = Profile{Trait: mass, Character: massChar}

	bugChar := Character{
		Mass:       200,
		WheelFront: 1.5,
		WheelBack:  1.5,
		WheelLeft:  1,
		WheelRight: 1,
		Height:     1,
		Grip:       6,
		Linear:     groundLinear(12, 6, 15),
		Circular:   turning(math.Pi, 3*math.Pi),
	}
	m[core.ObjectAnt] = Profile{Trait: insect("Ant", 2), Character: bugChar}
	m[core.ObjectSpider] = Profile{Trait: insect("Spider", 2.5), Character: bugChar}

	bee := insect("Bee", 1.5)
	bee.Flying = core.FlyPropeller
	beeChar := bugChar
	beeChar.Linear = flyingLinear(15, 8, 15, 10)
	m[core.ObjectBee] = Profile{Trait: bee, Character: beeChar}

	worm := insect("Worm", 1.5)
	worm.Upright = true
	worm.PassThrough = true
	wormChar := bugChar
	wormChar.Linear = groundLinear(4, 2, 5)
	m[core.ObjectWorm] = Profile{Trait: worm, Character: wormChar}

	m[core.ObjectFactory] = Profile{Trait: building("Factory", 6, 6, 7)}
	m[core.ObjectPowerStation] = Profile{Trait: building("PowerStation", 3, 3, 4)}
	m[core.ObjectDerrick] = Profile{Trait: building("Derrick", 2.5, 2.5, 3.5)}

	m[core.ObjectTitanium] = Profile{Trait: Trait{
		Name:            "Titanium",
		Category:        core.CategoryOre,
		DamageThreshold: parameter.BuildingDamageThreshold,
		DamageDivisor:   parameter.BuildingDamageDivisor,
		Spheres:         []core.CrashSphere{sphere(0, 1, 0, 1, 0.9, core.SoundImpactMetal)},
	}}
	m[core.ObjectPowerCell] = Profile{Trait: Trait{
		Name:     "PowerCell",
		Category: core.CategoryOre,
		Spheres:  []core.CrashSphere{sphere(0, 1, 0, 1, 0.3, core.SoundImpact)},
	}}

	explosive := Trait{
		Name:      "TNT",
		Category:  core.CategoryExplosive,
		Explosive: true,
		Spheres:   []core.CrashSphere{sphere(0, 1, 0, 1.2, 0.5, core.SoundImpact)},
	}
	m[core.ObjectTNT] = Profile{Trait: explosive}
	mine := explosive
	mine.Name = "Mine"
	mine.Spheres = []core.CrashSphere{sphere(0, 0, 0, 1.5, 0.5, core.SoundImpact)}
	m[core.ObjectMine] = Profile{Trait: mine}

	m[core.ObjectPlant] = Profile{Trait: Trait{
		Name:         "Plant",
		Category:     core.CategoryPlant,
		PassThrough:  true,
		JostleRadius: 3,
		Spheres:      []core.CrashSphere{sphere(0, 1, 0, 1, 0.1, core.SoundImpactSoft)},
	}}

	m[core.ObjectBarrier] = Profile{Trait: Trait{
		Name:     "Barrier",
		Category: core.CategoryBuilding,
		Spheres:  []core.CrashSphere{sphere(0, 1, 0, 2, 1.0, core.SoundImpact)},
		Lines:    []core.CrashLine{box(4, 0.6, 1.0, core.SoundImpact)},
	}}

	m[core.ObjectFlag] = Profile{Trait: Trait{
		Name:        "Flag",
		Category:    core.CategoryDecoration,
		PassThrough: true,
	}}

	m[core.ObjectWaypoint] = Profile{Trait: Trait{Name: "Waypoint", Category: core.CategoryMarker, PassThrough: true}}
	m[core.ObjectTarget] = Profile{Trait: Trait{Name: "Target", Category: core.CategoryMarker, PassThrough: true}}

	return &Table{profiles: m}
}
