package savefile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestParseLine(t *testing.T) {
	l, err := Parse(`CreateObject type=Wheeled pos=1;0;2.5 name="big rover" land=1`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if l.Command != "CreateObject" {
		t.Errorf("Expected command CreateObject, got %q", l.Command)
	}

	pos, err := l.Vec3("pos", mgl64.Vec3{})
	if err != nil {
		t.Fatalf("Vec3 failed: %v", err)
	}
	if pos != (mgl64.Vec3{1, 0, 2.5}) {
		t.Errorf("Unexpected pos %v", pos)
	}

	if name, _ := l.Get("name"); name != "big rover" {
		t.Errorf("Expected quoted value unwrapped, got %q", name)
	}

	land, err := l.Bool("land", false)
	if err != nil || !land {
		t.Errorf("Expected land=true, got %v (%v)", land, err)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []string{
		"",
		"type=Wheeled",
		"CreateObject novalue",
		`CreateObject name="open`,
		"CreateObject =5",
	}
	for _, s := range tests {
		if _, err := Parse(s); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q): expected ErrMalformed, got %v", s, err)
		}
	}
}

func TestDefaultsOnMissing(t *testing.T) {
	l := NewLine("CreateObject")

	v, err := l.Vec3("motor", mgl64.Vec3{0, 0, 0})
	if err != nil || v != (mgl64.Vec3{}) {
		t.Errorf("Expected zero default, got %v (%v)", v, err)
	}
	f, err := l.Float("reactorRange", 1)
	if err != nil || f != 1 {
		t.Errorf("Expected 1 default, got %f (%v)", f, err)
	}
	b, err := l.Bool("land", true)
	if err != nil || !b {
		t.Errorf("Expected true default, got %v (%v)", b, err)
	}
}

func TestMalformedValue(t *testing.T) {
	l, err := Parse("CreateObject motor=1;x;0 range=abc land=maybe")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := l.Vec3("motor", mgl64.Vec3{}); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed for vector, got %v", err)
	}
	if _, err := l.Float("range", 0); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed for float, got %v", err)
	}
	if _, err := l.Bool("land", true); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed for bool, got %v", err)
	}
}

func TestSetterRoundTrip(t *testing.T) {
	l := NewLine("CreateObject")
	l.Set("type", "Winged")
	l.SetVec3("motor", mgl64.Vec3{0.1, -1, 1.0 / 3.0})
	l.SetFloat("reactorRange", 0.05)
	l.SetBool("land", false)
	l.Set("name", "twin engine")

	back, err := Parse(l.String())
	if err != nil {
		t.Fatalf("Parse of %q failed: %v", l.String(), err)
	}

	motor, _ := back.Vec3("motor", mgl64.Vec3{})
	if motor != (mgl64.Vec3{0.1, -1, 1.0 / 3.0}) {
		t.Errorf("Motor not exact after round trip: %v", motor)
	}
	r, _ := back.Float("reactorRange", 1)
	if r != 0.05 {
		t.Errorf("reactorRange not exact: %v", r)
	}
	land, _ := back.Bool("land", true)
	if land {
		t.Error("land should be false")
	}
	if name, _ := back.Get("name"); name != "twin engine" {
		t.Errorf("Unexpected name %q", name)
	}
}

func TestSetReplacesInPlace(t *testing.T) {
	l := NewLine("CreateObject")
	l.Set("a", "1")
	l.Set("b", "2")
	l.Set("a", "3")
	if got := strings.Join(l.Keys(), ","); got != "a,b" {
		t.Errorf("Expected key order a,b, got %s", got)
	}
	l.Delete("a")
	if _, ok := l.Get("a"); ok {
		t.Error("Expected a deleted")
	}
}

func TestReadWrite(t *testing.T) {
	src := "// scene\n\nCreateObject type=Wheeled pos=0;0;0\nCreateObject type=Plant pos=5;0;5\n"
	lines, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}

	var buf bytes.Buffer
	if err := Write(&buf, lines); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := "CreateObject type=Wheeled pos=0;0;0\nCreateObject type=Plant pos=5;0;5\n"
	if buf.String() != want {
		t.Errorf("Unexpected output:\n%s", buf.String())
	}

	if _, err := Read(strings.NewReader("CreateObject\nbad=1\n")); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed from Read, got %v", err)
	}
}
