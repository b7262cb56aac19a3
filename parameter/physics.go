package parameter

// Kinematics
const (
	// Gravity is the vertical acceleration used by the RACE mass-spring and free falls
	Gravity = 30.0

	// InclinSmooth is the per-second blend rate of body tilt toward terrain tilt
	InclinSmooth = 6.0

	// SteepSlopeNormalY is the terrain normal Y below which a flyer touching down counts as hitting a cliff
	SteepSlopeNormalY = 0.5

	// MaxTickTime caps the integration step to keep explicit Euler stable on hitches
	MaxTickTime = 0.25
)

// Energy
const (
	// EnergyConsumption is the energy drained per second at full motor intent
	EnergyConsumption = 0.02
)

// Flight
const (
	// FlightWobbleHeight is the altitude above which flight wobble reaches full effect
	FlightWobbleHeight = 4.0

	// FlightWobbleSmooth is the per-second blend rate of the wobble factor
	FlightWobbleSmooth = 2.0

	// FlightWobbleAmplitude is the tilt (radians) applied at full wobble
	FlightWobbleAmplitude = 0.05

	// LandImpactParticle is the vertical impact speed above which a crash puff is spawned
	LandImpactParticle = 6.0

	// LandImpactSoundScale maps vertical impact speed to sound amplitude
	LandImpactSoundScale = 0.05

	// ReactorRestart is the reactor range required before a depleted jet may climb again
	ReactorRestart = 0.1

	// CeilingTiltFade is the fraction of the flight ceiling above which terrain tilt fades out
	CeilingTiltFade = 0.5
)

// RACE mode
const (
	// RaceSoftHardness is the terrain hardness below which acceleration is scaled down
	RaceSoftHardness = 0.5

	// RaceSoftAccel is the acceleration factor on fully soft ground
	RaceSoftAccel = 0.5

	// HandbrakeStopFactor multiplies stop acceleration at full handbrake
	HandbrakeStopFactor = 3.0

	// HandbrakeGrip is the fraction of lateral grip kept at full handbrake
	HandbrakeGrip = 0.3

	// OversteerFactor scales how much wheel slide amplifies turning
	OversteerFactor = 0.6

	// WheelSlideParticle is the slide factor above which burnout smoke is emitted
	WheelSlideParticle = 0.3

	// GraviGluDuration is how long (seconds) upward bounce is suppressed after a hard landing
	GraviGluDuration = 0.5

	// GraviGluSpeed is the downward speed that counts as a hard landing
	GraviGluSpeed = 8.0

	// SuspensionSlots is the length of the per-axle force accumulator
	SuspensionSlots = 5

	// SuspensionSlotTime is the duration (seconds) covered by one accumulator slot
	SuspensionSlotTime = 0.05

	// SuspensionDecay is the per-second decay of suspension energy
	SuspensionDecay = 4.0

	// ChocSpinSpeed is the impact speed above which a RACE vehicle starts spinning
	ChocSpinSpeed = 15.0

	// ChocSpinDecay is the per-second decay of the crash spin angle
	ChocSpinDecay = 2.0

	// ChocSpinMax caps crash spin (radians per second)
	ChocSpinMax = 3.0
)
