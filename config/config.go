// Package config loads rover.toml through viper with ROVER_ environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/rover/audio"
	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/profile"
)

// Config file and environment naming
const (
	FileName  = "rover"
	FileType  = "toml"
	EnvPrefix = "ROVER"
)

// Snapshot encodings accepted by the replication server
const (
	EncodingJSON    = "json"
	EncodingMsgpack = "msgpack"
)

// SimConfig holds simulation rates in Hz
type SimConfig struct {
	TickRate        int `mapstructure:"tickRate"`
	ReplicationRate int `mapstructure:"replicationRate"`
}

// TickInterval converts the tick rate to a step duration
func (s SimConfig) TickInterval() time.Duration {
	if s.TickRate <= 0 {
		return parameter.TickInterval
	}
	return time.Second / time.Duration(s.TickRate)
}

// ReplicationInterval converts the replication rate to a broadcast period
func (s SimConfig) ReplicationInterval() time.Duration {
	if s.ReplicationRate <= 0 {
		return parameter.ReplicationInterval
	}
	return time.Second / time.Duration(s.ReplicationRate)
}

// ServerConfig holds the websocket listener settings
type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	Encoding string `mapstructure:"encoding"`
}

// Load sets defaults and reads rover.toml from configDir. A missing file is
// not an error; every key can also come from ROVER_<SECTION>_<KEY>.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./roverlogs")
	viper.SetDefault("logToFile", false)

	viper.SetDefault("sim.tickRate", 60)
	viper.SetDefault("sim.replicationRate", 20)
	viper.SetDefault("sim.seed", 1)
	viper.SetDefault("sim.scene", "")

	viper.SetDefault("audio.enabled", false)
	viper.SetDefault("audio.masterVolume", 0.5)
	viper.SetDefault("audio.hearingDistance", parameter.AudioHearingDistance)

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.encoding", EncodingJSON)

	viper.SetConfigName(FileName)
	viper.SetConfigType(FileType)
	viper.AddConfigPath(configDir)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetSimConfig returns the simulation section
func GetSimConfig() SimConfig {
	return SimConfig{
		TickRate:        viper.GetInt("sim.tickRate"),
		ReplicationRate: viper.GetInt("sim.replicationRate"),
	}
}

// GetServerConfig returns the server section, rejecting unknown encodings
func GetServerConfig() (ServerConfig, error) {
	cfg := ServerConfig{
		Addr:     viper.GetString("server.addr"),
		Encoding: strings.ToLower(viper.GetString("server.encoding")),
	}
	switch cfg.Encoding {
	case EncodingJSON, EncodingMsgpack:
	default:
		return cfg, fmt.Errorf("server.encoding %q: want %s or %s", cfg.Encoding, EncodingJSON, EncodingMsgpack)
	}
	return cfg, nil
}

// GetAudioConfig builds the sound engine config; audio.volumes holds
// per-sound gains keyed by sound name
func GetAudioConfig() *audio.Config {
	cfg := audio.DefaultConfig()
	cfg.Enabled = viper.GetBool("audio.enabled")
	cfg.MasterVolume = viper.GetFloat64("audio.masterVolume")
	if d := viper.GetFloat64("audio.hearingDistance"); d > 0 {
		cfg.HearingDistance = d
	}

	named := make(map[string]float64)
	for key := range viper.GetStringMap("audio.volumes") {
		named[key] = viper.GetFloat64("audio.volumes." + key)
	}
	for st, v := range audio.EffectVolumesByName(named) {
		cfg.EffectVolumes[st] = v
	}
	return cfg
}

// GetProfileOverrides decodes the profiles section keyed by object type name
func GetProfileOverrides() (map[string]profile.Override, error) {
	out := make(map[string]profile.Override)
	if !viper.IsSet("profiles") {
		return out, nil
	}
	if err := viper.UnmarshalKey("profiles", &out); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return out, nil
}

// Profiles returns the built-in profile table with configured overrides applied
func Profiles() (*profile.Table, error) {
	overrides, err := GetProfileOverrides()
	if err != nil {
		return nil, err
	}
	return profile.Default().Apply(overrides)
}
