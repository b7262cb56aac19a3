// Command rover-server runs the simulation headless and replicates world
// snapshots to websocket clients, which drive objects with motor inputs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/rover/config"
	"github.com/lixenwraith/rover/core"
	"github.com/lixenwraith/rover/effect"
	"github.com/lixenwraith/rover/engine"
	"github.com/lixenwraith/rover/logging"
	"github.com/lixenwraith/rover/parameter"
	"github.com/lixenwraith/rover/status"
	"github.com/lixenwraith/rover/stream"
)

var (
	configDir = flag.String("config", ".", "Directory holding rover.toml")
	addrFlag  = flag.String("addr", "", "Listen address, overrides server.addr")
)

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

	log, logCloser, err := logging.Setup(logging.Config{
		Level:   config.GetString("logLevel"),
		Dir:     config.GetString("logsDir"),
		ToFile:  config.GetBool("logToFile"),
		Console: os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	if err := run(log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		logCloser.Close()
		os.Exit(1)
	}
}

func run(log zerolog.Logger) error {
	srvCfg, err := config.GetServerConfig()
	if err != nil {
		return err
	}
	if *addrFlag != "" {
		srvCfg.Addr = *addrFlag
	}
	simCfg := config.GetSimConfig()

	profiles, err := config.Profiles()
	if err != nil {
		return err
	}

	// Particles age on the simulation goroutine so the ring does not fill
	fx := effect.NewSystem(parameter.ParticleCapacity)
	world := engine.NewWorld(engine.Config{
		Profiles:  profiles,
		Particles: fx,
		Log:       log,
		Seed:      uint64(max(1, config.GetInt("sim.seed"))),
	})
	if err := loadScene(world, config.GetString("sim.scene")); err != nil {
		return fmt.Errorf("scene: %w", err)
	}

	codec, err := stream.NewCodec(srvCfg.Encoding)
	if err != nil {
		return err
	}

	gauges := status.NewRegistry()
	var (
		tickG      = gauges.Int(status.SimTick)
		timeG      = gauges.Float(status.SimTime)
		objectsG   = gauges.Int(status.SimObjects)
		particlesG = gauges.Int(status.ParticlesLive)
	)

	tick := simCfg.TickInterval()
	var hub *stream.Hub
	scheduler := engine.NewClockScheduler(world, tick, func(f engine.Frame) {
		fx.Update(tick.Seconds())
		tickG.Store(int64(f.Tick))
		timeG.Store(f.Time)
		objectsG.Store(int64(len(f.Objects)))
		particlesG.Store(int64(fx.Count()))
		hub.Publish(f)
	}, log)
	hub = stream.NewHub(codec, scheduler, log)
	hub.SetStatus(gauges)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start()
	defer scheduler.Stop()
	core.Go(func() { hub.Run(ctx, simCfg.ReplicationInterval()) })

	httpServer := &http.Server{
		Addr:              srvCfg.Addr,
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errChan := make(chan error, 1)
	core.Go(func() {
		log.Info().
			Str("addr", srvCfg.Addr).
			Str("encoding", codec.Name()).
			Dur("tick", tick).
			Int("objects", world.Len()).
			Msg("rover server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	})

	select {
	case err := <-errChan:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), parameter.WriteWait)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func loadScene(w *engine.World, path string) error {
	if path == "" {
		opt := engine.DefaultDemo()
		opt.Seed = uint64(max(1, config.GetInt("sim.seed")))
		return engine.LoadDemo(w, opt)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return engine.LoadScene(w, f)
}
