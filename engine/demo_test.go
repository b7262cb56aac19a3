package engine

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/core"
)

// TestDemoScene verifies the demo builds deterministically and loads
func TestDemoScene(t *testing.T) {
	opt := DefaultDemo()
	a, b := DemoScene(opt), DemoScene(opt)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].String() != b[i].String() {
			t.Fatalf("line %d differs:\n%s\n%s", i, a[i], b[i])
		}
	}

	w := NewWorld(Config{Log: zerolog.Nop()})
	if err := LoadDemo(w, opt); err != nil {
		t.Fatalf("LoadDemo: %v", err)
	}

	want := 1 + opt.Doors + 2 + 4 + opt.Plants + 3 + 2 + opt.Cars + opt.Flyers
	if w.Len() != want {
		t.Errorf("Len = %d, want %d", w.Len(), want)
	}
	if w.Circuit().Doors() != opt.Doors {
		t.Errorf("doors = %d, want %d", w.Circuit().Doors(), opt.Doors)
	}

	var first *Object
	flyers := 0
	w.Each(func(o *Object) bool {
		if first == nil {
			first = o
		}
		if o.Type() == core.ObjectWinged {
			flyers++
			p, _ := o.Physics()
			if p.IsLand() || o.Position()[1] <= w.Terrain().Height(o.Position()[0], o.Position()[2]) {
				t.Errorf("flyer %d not airborne at %v", o.ID(), o.Position())
			}
		}
		return true
	})
	if first == nil || first.Type() != core.ObjectRaceCar {
		t.Errorf("first object = %v, want race car", first)
	}
	if flyers != opt.Flyers {
		t.Errorf("flyers = %d, want %d", flyers, opt.Flyers)
	}

	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60)
	}
	if w.Tick() != 30 {
		t.Errorf("Tick = %d, want 30", w.Tick())
	}
}

// TestDemoSceneNoCircuit verifies a scene without doors omits the circuit
func TestDemoSceneNoCircuit(t *testing.T) {
	opt := DemoOptions{Seed: 3, Size: 100}
	for _, l := range DemoScene(opt) {
		if l.Command == CmdCircuit {
			t.Fatal("circuit written with zero doors")
		}
	}

	w := NewWorld(Config{Log: zerolog.Nop()})
	if err := LoadDemo(w, opt); err != nil {
		t.Fatalf("LoadDemo: %v", err)
	}
	if w.Circuit().Doors() != 0 {
		t.Errorf("doors = %d", w.Circuit().Doors())
	}
}
