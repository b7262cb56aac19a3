// Command rover-sandbox drives one vehicle around a generated scene in the
// terminal, top-down, with the procedural motor sounds when audio is on.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/audio"
	"github.com/lixenwraith/rover/config"
	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/effect"
	"github.com/lixenwraith/rover/engine"
	"github.com/lixenwraith/rover/logging"
	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/physics"
)

var (
	configDir = flag.String("config", ".", "Directory holding rover.toml")
	sceneFile = flag.String("scene", "", "Scene file to load instead of the demo")
	seedFlag  = flag.Uint64("seed", 0, "Demo scene seed, 0 uses sim.seed")
	audioFlag = flag.Bool("audio", false, "Enable sound regardless of config")
	saveFile  = flag.String("save", "rover-save.txt", "File written by the save key")
)

const (
	throttleStep = 0.25
	turnHold     = 250 * time.Millisecond
)

type sandbox struct {
	screen tcell.Screen
	world  *engine.World
	fx     *effect.System
	sound  *audio.AudioEngine
	log    zerolog.Logger

	cam      camera
	follow   bool
	vehicles []core.ObjectID
	current  int

	throttle  float64
	rise      float64
	turn      float64
	turnUntil time.Time
	handbrake bool

	ground      groundRange
	notice      string
	noticeUntil time.Time
}

type groundRange struct{ lo, hi float64 }

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Console output would corrupt the screen, so the sandbox only logs to file
	log, logCloser, err := logging.Setup(logging.Config{
		Level:  config.GetString("logLevel"),
		Dir:    config.GetString("logsDir"),
		ToFile: config.GetBool("logToFile"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	profiles, err := config.Profiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "profiles: %v\n", err)
		os.Exit(1)
	}

	audioCfg := config.GetAudioConfig()
	if *audioFlag {
		audioCfg.Enabled = true
	}
	sound := audio.NewAudioEngine(audioCfg, log)
	if audioCfg.Enabled {
		if err := sound.Start(); err != nil {
			log.Warn().Err(err).Msg("audio start failed, continuing without audio")
		}
		defer sound.Stop()
	}

	fx := effect.NewSystem(parameter.ParticleCapacity)
	seed := *seedFlag
	if seed == 0 {
		seed = uint64(max(1, config.GetInt("sim.seed")))
	}
	world := engine.NewWorld(engine.Config{
		Profiles:  profiles,
		Particles: fx,
		Sounds:    sound,
		Log:       log,
		Seed:      seed,
	})
	sound.SetLocator(world.LocateUnlocked)

	if err := loadScene(world, *sceneFile, seed); err != nil {
		fmt.Fprintf(os.Stderr, "scene: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashHook(screen.Fini)
	defer screen.Fini()

	sb := newSandbox(screen, world, fx, sound, log)
	sb.run()
}

func loadScene(w *engine.World, path string, seed uint64) error {
	if path == "" {
		opt := engine.DefaultDemo()
		opt.Seed = seed
		return engine.LoadDemo(w, opt)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return engine.LoadScene(w, f)
}

func newSandbox(screen tcell.Screen, w *engine.World, fx *effect.System, sound *audio.AudioEngine, log zerolog.Logger) *sandbox {
	sb := &sandbox{
		screen: screen,
		world:  w,
		fx:     fx,
		sound:  sound,
		log:    log.With().Str("component", "sandbox").Logger(),
		cam:    camera{scale: 1.5},
		follow: true,
	}
	sb.cam.width, sb.cam.height = screen.Size()

	w.Each(func(o *engine.Object) bool {
		if _, ok := o.Physics(); ok {
			sb.vehicles = append(sb.vehicles, o.ID())
		}
		return true
	})
	sb.measureGround()
	return sb
}

// measureGround samples the terrain once for height shading
func (sb *sandbox) measureGround() {
	t := sb.world.Terrain()
	sb.ground = groundRange{math.Inf(1), math.Inf(-1)}
	for x := -200.0; x <= 200; x += 8 {
		for z := -200.0; z <= 200; z += 8 {
			h := t.Height(x, z)
			sb.ground.lo = min(sb.ground.lo, h)
			sb.ground.hi = max(sb.ground.hi, h)
		}
	}
}

func (sb *sandbox) player() (*engine.Object, *physics.Physics, bool) {
	for len(sb.vehicles) > 0 {
		sb.current %= len(sb.vehicles)
		if o, ok := sb.world.Object(sb.vehicles[sb.current]); ok {
			p, _ := o.Physics()
			return o, p, true
		}
		// Destroyed, drop it from the rotation
		sb.vehicles = append(sb.vehicles[:sb.current], sb.vehicles[sb.current+1:]...)
	}
	return nil, nil, false
}

func (sb *sandbox) run() {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := sb.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !sb.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			sb.update(now, dt)
			sb.draw()
		}
	}
}

func (sb *sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			sb.throttle = min(1, sb.throttle+throttleStep)
		case tcell.KeyDown:
			sb.throttle = max(-1, sb.throttle-throttleStep)
		case tcell.KeyLeft:
			sb.steer(1)
		case tcell.KeyRight:
			sb.steer(-1)
		case tcell.KeyPgUp:
			sb.rise = min(1, sb.rise+throttleStep)
		case tcell.KeyPgDn:
			sb.rise = max(-1, sb.rise-throttleStep)
		case tcell.KeyTab:
			sb.nextVehicle()
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
			sb.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		sb.cam.width, sb.cam.height = sb.screen.Size()
		sb.screen.Sync()
	}
	return true
}

func (sb *sandbox) handleRune(r rune) {
	switch r {
	case ' ':
		sb.handbrake = !sb.handbrake
	case 'x':
		sb.throttle, sb.rise, sb.turn = 0, 0, 0
	case 'p':
		if sb.world.Clock().Toggle() {
			sb.say("paused")
		} else {
			sb.say("resumed")
		}
	case 'm':
		if sb.sound.ToggleMute() {
			sb.say("sound on")
		} else {
			sb.say("sound off")
		}
	case 'f':
		sb.follow = !sb.follow
	case '+', '=':
		sb.cam.zoom(0.8)
	case '-':
		sb.cam.zoom(1.25)
	case 'w':
		sb.cam.center[1] -= sb.cam.scale * 4
		sb.follow = false
	case 's':
		sb.cam.center[1] += sb.cam.scale * 4
		sb.follow = false
	case 'a':
		sb.cam.center[0] -= sb.cam.scale * 8
		sb.follow = false
	case 'd':
		sb.cam.center[0] += sb.cam.scale * 8
		sb.follow = false
	case 'S':
		sb.save()
	}
}

func (sb *sandbox) steer(dir float64) {
	sb.turn = dir
	sb.turnUntil = time.Now().Add(turnHold)
}

func (sb *sandbox) nextVehicle() {
	if len(sb.vehicles) == 0 {
		return
	}
	if o, _, ok := sb.player(); ok {
		_ = sb.world.Apply(engine.Command{ID: o.ID()})
	}
	sb.current = (sb.current + 1) % len(sb.vehicles)
	sb.throttle, sb.rise, sb.turn = 0, 0, 0
	sb.follow = true
	if o, _, ok := sb.player(); ok {
		sb.say("driving " + o.Type().String())
	}
}

func (sb *sandbox) save() {
	f, err := os.Create(*saveFile)
	if err != nil {
		sb.say("save failed: " + err.Error())
		return
	}
	defer f.Close()
	if err := engine.SaveScene(sb.world, f); err != nil {
		sb.say("save failed: " + err.Error())
		return
	}
	sb.log.Info().Str("file", *saveFile).Msg("scene saved")
	sb.say("saved " + *saveFile)
}

func (sb *sandbox) say(msg string) {
	sb.notice = msg
	sb.noticeUntil = time.Now().Add(2 * time.Second)
}

func (sb *sandbox) update(now time.Time, dt float64) {
	if now.After(sb.turnUntil) {
		sb.turn = 0
	}

	if o, _, ok := sb.player(); ok {
		handbrake := 0.0
		if sb.handbrake {
			handbrake = 1
		}
		if err := sb.world.Apply(engine.Command{
			ID:        o.ID(),
			Motor:     mgl64.Vec3{sb.throttle, sb.rise, sb.turn},
			Handbrake: handbrake,
		}); err != nil {
			sb.log.Debug().Err(err).Msg("drive rejected")
		}
	}

	for _, id := range sb.world.Step(dt) {
		sb.log.Debug().Uint32("object", uint32(id)).Msg("removed")
	}
	if !sb.world.Clock().IsPaused() {
		sb.fx.Update(dt)
	}

	if o, _, ok := sb.player(); ok {
		pos := o.Position()
		sb.sound.SetListener(pos)
		if sb.follow {
			sb.cam.center = mgl64.Vec2{pos[0], pos[2]}
		}
	}
}

func (sb *sandbox) draw() {
	s := sb.screen
	s.Clear()
	w, h := sb.cam.width, sb.cam.height
	t := sb.world.Terrain()

	for row := 1; row < h-1; row++ {
		for col := 0; col < w; col++ {
			x, z := sb.cam.unproject(col, row)
			style := groundStyle(t.Height(x, z), sb.ground.lo, sb.ground.hi, t.WaterLevel(), t.IsLava(x, z))
			s.SetContent(col, row, ' ', nil, style)
		}
	}

	sb.fx.Each(func(p *effect.Particle) bool {
		if col, row, ok := sb.cam.project(p.Pos); ok && row > 0 && row < h-1 {
			s.SetContent(col, row, p.Kind.Glyph(), nil, styleWarn.Background(tcell.ColorDefault))
		}
		return true
	})

	player, phys, hasPlayer := sb.player()
	sb.world.Each(func(o *engine.Object) bool {
		if o.IsDying() {
			return true
		}
		col, row, ok := sb.cam.project(o.Position())
		if !ok || row == 0 || row == h-1 {
			return true
		}
		r, style := objectGlyph(o.Type())
		if _, moving := o.Physics(); moving {
			r = headingGlyph(o.Rotation()[1])
			style = styleVehicle
			if o.Trait().IsFlying() {
				style = styleFlyer
			}
			if hasPlayer && o.ID() == player.ID() {
				style = stylePlayer
			}
		}
		s.SetContent(col, row, r, nil, style)
		return true
	})

	sb.drawHUD(player, phys, hasPlayer)
	s.Show()
}

func (sb *sandbox) drawHUD(o *engine.Object, p *physics.Physics, ok bool) {
	s := sb.screen
	w, h := sb.cam.width, sb.cam.height
	for col := 0; col < w; col++ {
		s.SetContent(col, 0, ' ', nil, styleHUD)
		s.SetContent(col, h-1, ' ', nil, styleHUD)
	}

	top := "no vehicle"
	if ok {
		st := p.Snapshot()
		speed := st.Velocity.Len()
		energy := "-"
		if cell := o.Cell(); cell != nil {
			energy = fmt.Sprintf("%3.0f%%", cell.Energy()*100)
		}
		top = fmt.Sprintf(" %s #%d | speed %5.1f | motor %+.2f %+.2f %+.2f | energy %s | alt %5.1f",
			o.Type(), o.ID(), speed, st.Motor[0], st.Motor[1], st.Motor[2], energy, st.Position[1]-st.FloorHeight)
		if st.Status != physics.StatusOK {
			top += " | " + st.Status.String()
		}
		if doors := sb.world.Circuit().Doors(); doors > 0 {
			top += fmt.Sprintf(" | lap %d door %d/%d", sb.world.Circuit().Laps(o.ID()), sb.world.Circuit().Next(o.ID()), doors)
		}
		if st.Swim {
			top += " | swim"
		} else if !st.Land {
			top += " | air"
		}
	}
	drawString(s, 0, 0, top, styleHUD)

	flags := ""
	if sb.world.Clock().IsPaused() {
		flags += " PAUSED"
	}
	if sb.handbrake {
		flags += " BRAKE"
	}
	if !sb.sound.IsEnabled() {
		flags += " MUTE"
	}
	help := " ↑↓ throttle ←→ steer PgUp/PgDn rise Space brake x stop Tab vehicle p pause m mute f follow wasd pan +/- zoom S save q quit"
	drawString(s, 0, h-1, help, styleHUD)
	if flags != "" {
		drawString(s, max(0, w-len(flags)-1), h-1, flags, styleWarn)
	}
	if time.Now().Before(sb.noticeUntil) {
		drawString(s, max(0, w-len(sb.notice)-2), 0, sb.notice, styleWarn)
	}
}
