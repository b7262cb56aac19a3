package audio

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/lixenwraith/rover/parameter"
)

// BackendType names the playback tool samples are piped to
type BackendType int

const (
	BackendNone BackendType = iota
	BackendPulse
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
	BackendOSS
)

var backendNames = [...]string{"none", "pacat", "pw-cat", "aplay", "sox", "ffplay", "oss"}

func (b BackendType) String() string {
	if b < 0 || int(b) >= len(backendNames) {
		return "unknown"
	}
	return backendNames[b]
}

// BackendConfig is a detected backend: the binary to exec and its arguments.
// OSS has no binary; Path is the device written directly.
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
	ErrRunning        = errors.New("audio engine already running")
)

// Hooks replaced in tests
var (
	lookPath = exec.LookPath
	statFile = os.Stat
)

type candidate struct {
	typ    BackendType
	binary string
	args   func(rate, channels, latencyMs string) []string
}

// candidates in priority order: pacat > pw-cat > aplay > play (sox) > ffplay
var candidates = []candidate{
	{BackendPulse, "pacat", func(rate, ch, lat string) []string {
		return []string{"--raw", "--format=s16le", "--rate=" + rate, "--channels=" + ch, "--latency-msec=" + lat, "--playback"}
	}},
	{BackendPipeWire, "pw-cat", func(rate, ch, lat string) []string {
		return []string{"--playback", "--format=s16", "--rate=" + rate, "--channels=" + ch, "--latency=" + lat + "ms", "-"}
	}},
	{BackendALSA, "aplay", func(rate, ch, _ string) []string {
		return []string{"-t", "raw", "-f", "S16_LE", "-r", rate, "-c", ch, "-q"}
	}},
	{BackendSoX, "play", func(rate, ch, _ string) []string {
		return []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", ch, "-r", rate, "-", "-d", "-q"}
	}},
	{BackendFFplay, "ffplay", func(rate, ch, _ string) []string {
		return []string{"-nodisp", "-autoexit", "-f", "s16le", "-ac", ch, "-ar", rate,
			"-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet"}
	}},
}

// DetectBackend returns the first playback tool found on PATH, falling back
// to a direct /dev/dsp write on FreeBSD
func DetectBackend() (*BackendConfig, error) {
	rate := strconv.Itoa(parameter.AudioSampleRate)
	ch := strconv.Itoa(parameter.AudioChannels)
	lat := strconv.Itoa(int(parameter.AudioBufferDuration.Milliseconds()))

	for _, c := range candidates {
		path, err := lookPath(c.binary)
		if err != nil {
			continue
		}
		name := c.binary
		if c.typ == BackendSoX {
			name = "sox"
		}
		return &BackendConfig{Type: c.typ, Name: name, Path: path, Args: c.args(rate, ch, lat)}, nil
	}

	if runtime.GOOS == "freebsd" {
		if _, err := statFile("/dev/dsp"); err == nil {
			return &BackendConfig{Type: BackendOSS, Name: "oss", Path: "/dev/dsp"}, nil
		}
	}

	return nil, ErrNoAudioBackend
}
