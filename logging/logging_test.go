package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/parameter"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup_NoSinks(t *testing.T) {
	logger, closer, err := Setup(Config{Level: "debug"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer closer.Close()

	if logger.GetLevel() != zerolog.Disabled {
		t.Errorf("level = %v, want disabled", logger.GetLevel())
	}
}

func TestSetup_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := Setup(Config{Level: "warn", Console: &buf})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message passed the warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestSetup_File(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, closer, err := Setup(Config{Level: "info", Dir: dir, ToFile: true})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	logger.Info().Str("object", "car").Msg("landed")
	closer.Close()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "landed") {
		t.Errorf("log file missing message: %q", data)
	}
	if strings.Contains(string(data), "\x1b[") {
		t.Error("file output carries color escapes")
	}
}

func TestSetup_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, logFileName)
	if err := os.WriteFile(path, make([]byte, parameter.LogMaxSize+1), 0644); err != nil {
		t.Fatalf("write large log: %v", err)
	}

	_, closer, err := Setup(Config{Dir: dir, ToFile: true})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer closer.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && strings.HasPrefix(e.Name(), "rover.") && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("expected rotated log file")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > parameter.LogMaxSize {
		t.Errorf("new log size %d, want under %d", info.Size(), parameter.LogMaxSize)
	}
}

func TestSetup_SmallLogKept(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, logFileName)
	if err := os.WriteFile(path, []byte("previous run\n"), 0644); err != nil {
		t.Fatal(err)
	}

	logger, closer, err := Setup(Config{Dir: dir, ToFile: true})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	logger.Info().Msg("next run")
	closer.Close()

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1", len(entries))
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "previous run") || !strings.Contains(string(data), "next run") {
		t.Errorf("log not appended: %q", data)
	}
}

func TestSampled(t *testing.T) {
	var buf bytes.Buffer
	l := Sampled(zerolog.New(&buf))
	for i := 0; i < parameter.LogBurst*10; i++ {
		l.Info().Msg("tick")
	}
	lines := strings.Count(buf.String(), "\n")
	if lines < parameter.LogBurst || lines >= parameter.LogBurst*10 {
		t.Errorf("sampled lines = %d", lines)
	}
}
