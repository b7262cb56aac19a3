// Package logging builds the zerolog logger shared by the simulation,
// the audio engine and the replication server.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/parameter"
)

const (
	logFileName = "rover.log"
	stampFormat = "20060102-150405"
)

// Config selects the log level and sinks
type Config struct {
	Level  string
	Dir    string
	ToFile bool
	// Console receives colored output; nil disables the console sink
	Console io.Writer
}

// ParseLevel maps a config string to a zerolog level, defaulting to info
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "OFF", "DISABLED":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Setup returns a logger writing to the configured sinks. The returned closer
// releases the log file; it is a no-op when no file was opened.
// With no sink at all the logger is zerolog.Nop().
func Setup(cfg Config) (zerolog.Logger, io.Closer, error) {
	var writers []io.Writer
	closer := io.Closer(nopCloser{})

	if cfg.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        cfg.Console,
			TimeFormat: time.RFC3339,
		})
	}

	if cfg.ToFile {
		file, err := openLogFile(cfg.Dir)
		if err != nil {
			return zerolog.Nop(), closer, err
		}
		closer = file
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	level := ParseLevel(cfg.Level)
	if len(writers) == 0 || level == zerolog.Disabled {
		return zerolog.Nop(), closer, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	logger.Info().Str("loglevel", level.String()).Msg("logging set up")
	return logger, closer, nil
}

// Sampled wraps l with the burst sampler used for per-tick messages
func Sampled(l zerolog.Logger) zerolog.Logger {
	return l.Sample(&zerolog.BurstSampler{
		Burst:       parameter.LogBurst,
		Period:      parameter.LogBurstPeriod,
		NextSampler: &zerolog.BasicSampler{N: 100},
	})
}

// openLogFile opens dir/rover.log for appending, first moving an oversized
// previous log aside to rover.<stamp>.log
func openLogFile(dir string) (*os.File, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > parameter.LogMaxSize {
		rotated := filepath.Join(dir, "rover."+time.Now().Format(stampFormat)+".log")
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
