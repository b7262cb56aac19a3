package core

import "strings"

// ObjectID is a stable handle into the world arena
type ObjectID uint32

// ObjectType identifies the game object kind
type ObjectType int

const (
	ObjectNone ObjectType = iota
	ObjectHuman
	ObjectTech
	ObjectWheeled
	ObjectTracked
	ObjectLegged
	ObjectWinged
	ObjectRaceCar
	ObjectTank
	ObjectBox
	ObjectAnt
	ObjectSpider
	ObjectBee
	ObjectWorm
	ObjectFactory
	ObjectPowerStation
	ObjectDerrick
	ObjectTitanium
	ObjectPowerCell
	ObjectTNT
	ObjectMine
	ObjectPlant
	ObjectBarrier
	ObjectFlag
	ObjectWaypoint
	ObjectTarget
	ObjectTypeCount
)

var objectNames = [ObjectTypeCount]string{
	"None", "Human", "Tech", "Wheeled", "Tracked", "Legged", "Winged",
	"RaceCar", "Tank", "Box", "Ant", "Spider", "Bee", "Worm",
	"Factory", "PowerStation", "Derrick", "Titanium", "PowerCell",
	"TNT", "Mine", "Plant", "Barrier", "Flag", "Waypoint", "Target",
}

// String returns the save-file name of the type
func (t ObjectType) String() string {
	if t < 0 || t >= ObjectTypeCount {
		return "Unknown"
	}
	return objectNames[t]
}

// ParseObjectType resolves a save-file name, case-insensitive
func ParseObjectType(s string) (ObjectType, bool) {
	for i, name := range objectNames {
		if strings.EqualFold(name, s) {
			return ObjectType(i), i != 0
		}
	}
	return ObjectNone, false
}

// Category groups object types by collision and damage behavior
type Category uint8

const (
	CategoryNone Category = iota
	CategoryVehicle
	CategoryHuman
	CategoryInsect
	CategoryBuilding
	CategoryOre
	CategoryExplosive
	CategoryPlant
	CategoryDecoration
	CategoryMarker
)

// PhysicsType selects the simulation profile of a physics component
type PhysicsType uint8

const (
	PhysicsNone PhysicsType = iota // Static object, no physics component
	PhysicsNormal
	PhysicsMass
	PhysicsRace
	PhysicsTank
)

func (t PhysicsType) String() string {
	switch t {
	case PhysicsNormal:
		return "normal"
	case PhysicsMass:
		return "mass"
	case PhysicsRace:
		return "race"
	case PhysicsTank:
		return "tank"
	default:
		return "none"
	}
}

// FlyKind describes how an object sustains flight
type FlyKind uint8

const (
	FlyNone      FlyKind = iota
	FlyPropeller         // Unlimited flight
	FlyJet               // Flight limited by reactor range
)

// Cause records why an object was destroyed
type Cause uint8

const (
	CauseNone Cause = iota
	CauseCollision
	CauseExplosion
	CauseFall
	CauseDrown
	CauseLava
	CauseCheckpoint
)

func (c Cause) String() string {
	switch c {
	case CauseCollision:
		return "collision"
	case CauseExplosion:
		return "explosion"
	case CauseFall:
		return "fall"
	case CauseDrown:
		return "drown"
	case CauseLava:
		return "lava"
	case CauseCheckpoint:
		return "checkpoint"
	default:
		return "none"
	}
}
