package core

// SoundType represents different sound effects
type SoundType int

const (
	SoundNone        SoundType = iota
	SoundMotorIdle             // Engine idle loop
	SoundMotorFull             // Engine full throttle loop
	SoundMotorJet              // Jet reactor loop
	SoundMotorTrack            // Track rumble loop
	SoundImpact                // Generic hard collision
	SoundImpactMetal           // Vehicle on vehicle
	SoundImpactSoft            // Organic or soft obstacle
	SoundLand                  // Flyer touchdown
	SoundJostle                // Brushing through vegetation
	SoundSplash                // Entering water
	SoundSkid                  // Wheel burnout
	SoundWaypoint              // Checkpoint passed
	SoundLap                   // Circuit lap completed
	SoundError                 // Wrong checkpoint order
	SoundExplosion             // Destroyed
	SoundTypeCount
)

var soundNames = [SoundTypeCount]string{
	"none", "motor_idle", "motor_full", "motor_jet", "motor_track",
	"impact", "impact_metal", "impact_soft", "land", "jostle",
	"splash", "skid", "waypoint", "lap", "error", "explosion",
}

// String returns the config key of the sound
func (s SoundType) String() string {
	if s < 0 || s >= SoundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// IsLoop reports whether the sound is a continuous motor loop
func (s SoundType) IsLoop() bool {
	return s >= SoundMotorIdle && s <= SoundMotorTrack
}
