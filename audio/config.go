package audio

import (
	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/vmath"
)

// Config controls output gain and spatial falloff
type Config struct {
	Enabled         bool
	MasterVolume    float64
	HearingDistance float64
	// EffectVolumes scales individual sounds; missing entries play at unity
	EffectVolumes map[core.SoundType]float64
}

// DefaultConfig starts disabled with quieter motor loops
func DefaultConfig() *Config {
	return &Config{
		Enabled:         false,
		MasterVolume:    0.5,
		HearingDistance: parameter.AudioHearingDistance,
		EffectVolumes: map[core.SoundType]float64{
			core.SoundMotorIdle:  0.3,
			core.SoundMotorFull:  0.4,
			core.SoundMotorJet:   0.4,
			core.SoundMotorTrack: 0.4,
			core.SoundJostle:     0.6,
		},
	}
}

// EffectVolumesByName maps config keys such as "impact_metal" to sound
// volumes, ignoring unknown names
func EffectVolumesByName(named map[string]float64) map[core.SoundType]float64 {
	out := make(map[core.SoundType]float64, len(named))
	for st := core.SoundType(1); st < core.SoundTypeCount; st++ {
		if v, ok := named[st.String()]; ok {
			out[st] = vmath.Norm01(v)
		}
	}
	return out
}

// gain returns master times effect volume for st
func (c *Config) gain(st core.SoundType) float64 {
	vol := vmath.Norm01(c.MasterVolume)
	if ev, ok := c.EffectVolumes[st]; ok {
		vol *= ev
	}
	return vol
}

// falloff is linear attenuation to silence at HearingDistance
func (c *Config) falloff(distance float64) float64 {
	if c.HearingDistance <= 0 {
		return 1
	}
	return vmath.Norm01(1 - distance/c.HearingDistance)
}
