package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/milk9111/tiledworld/assets"
	"github.com/milk9111/tiledworld/config"
	"github.com/milk9111/tiledworld/ecs"
	"github.com/milk9111/tiledworld/ecs/system"
	"github.com/milk9111/tiledworld/logger"
	"github.com/milk9111/tiledworld/stream"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "engine config file (defaults to the embedded engine.yaml)")
	mapName := flag.String("map", "", "map to load, relative to the maps dir (overrides maps.start)")
	ticks := flag.Uint64("ticks", 0, "stop after this many ticks (0 runs until interrupted)")
	flag.Parse()

	spec, err := config.LoadEngineSpec(*configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("load engine config")
	}
	logger.Init(spec.Log.Level, spec.Log.Format, os.Stdout)
	if *mapName != "" {
		spec.Maps.Start = *mapName
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, spec, *ticks); err != nil {
		logger.Log.WithError(err).Fatal("tiledsim stopped")
	}
}

func newFetcher(spec *config.EngineSpec) assets.Fetcher {
	var overlay assets.Overlay
	if spec.Maps.Dir != "" {
		overlay = append(overlay, assets.FSFetcher{FS: os.DirFS(spec.Maps.Dir)})
	}
	if spec.Maps.BaseURL != "" {
		overlay = append(overlay, assets.HTTPFetcher{BaseURL: spec.Maps.BaseURL, Client: &http.Client{Timeout: 30 * time.Second}})
	}
	return append(overlay, assets.Embedded())
}

// simulation is one world with the systems driving it. Reloading a map
// replaces the whole simulation.
type simulation struct {
	world *ecs.World
	sched *ecs.Scheduler
}

func newSimulation(spec *config.EngineSpec, fetcher assets.Fetcher, hub *stream.Hub) *simulation {
	ps := system.NewPhysicsSystem()
	sched := ecs.NewScheduler(
		system.NewFrameClockSystem(spec.Physics.TickSeconds),
		system.NewTiledMapSystem(assets.NewMapLoads(fetcher)),
		system.NewPlayerSystem(spec.Physics.DefaultMaxSpeed),
		ps,
		system.NewInventorySystem(ps.Index()),
		system.NewAnimationSystem(),
	)
	if hub != nil {
		sched.Add(stream.NewBroadcastSystem(hub))
	}

	w := ecs.NewWorld()
	system.RequestMap(w, spec.Maps.Start)
	return &simulation{world: w, sched: sched}
}

func run(ctx context.Context, spec *config.EngineSpec, maxTicks uint64) error {
	log := logger.For("tiledsim")
	fetcher := newFetcher(spec)

	var hub *stream.Hub
	if spec.Stream.Addr != "" {
		hub = stream.NewHub()
		defer hub.Close()

		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		srv := &http.Server{Addr: spec.Stream.Addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("snapshot stream stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.WithField("addr", spec.Stream.Addr).Info("streaming snapshots on /ws")
	}

	var changes <-chan string
	if spec.Maps.Watch && spec.Maps.Dir != "" {
		watcher, err := assets.NewWatcher(spec.Maps.Dir)
		if err != nil {
			return err
		}
		defer watcher.Close()
		changes = watcher.Events
		go func() {
			for err := range watcher.Errors {
				log.WithError(err).Warn("map watcher error")
			}
		}()
	}

	sim := newSimulation(spec, fetcher, hub)
	log.WithFields(logrus.Fields{
		"map":  spec.Maps.Start,
		"tick": spec.Physics.TickSeconds,
	}).Info("simulation started")

	ticker := time.NewTicker(time.Duration(spec.Physics.TickSeconds * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.WithField("ticks", sim.sched.Ticks()).Info("interrupted")
			return nil
		case changed, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			rel, err := filepath.Rel(spec.Maps.Dir, changed)
			if err != nil {
				rel = changed
			}
			log.WithField("file", filepath.ToSlash(rel)).Info("map files changed, reloading")
			sim = newSimulation(spec, fetcher, hub)
		case <-ticker.C:
			sim.sched.Update(sim.world)
			if maxTicks > 0 && sim.sched.Ticks() >= maxTicks {
				log.WithField("entities", len(ecs.Entities(sim.world))).Info("tick limit reached")
				return nil
			}
		}
	}
}
