package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/doubleslit/components"
	"github.com/pthm-cable/doubleslit/config"
	"github.com/pthm-cable/doubleslit/engine"
	"github.com/pthm-cable/doubleslit/game"
	"github.com/pthm-cable/doubleslit/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics (fires continuously)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	slits := flag.String("slits", "", "Override slit count: one | two")
	kind := flag.String("kind", "", "Override particle kind: classical | wave | quantum")
	observed := flag.Bool("observed", false, "Watch which slit each quantum particle takes")
	resume := flag.String("resume", "", "Snapshot file to resume from")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if err := applyRegimeFlags(cfg, *slits, *kind, *observed); err != nil {
		slog.Error("invalid regime flags", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	opts := engine.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		e := newEngine(cfg, opts, *resume)
		defer closeEngine(e)

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"regime", e.Regime().String(),
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		e.SetFiring(true)
		for {
			e.Update()

			if *maxTicks > 0 && int(e.TickCount()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", e.TickCount(), "hits", e.TotalHits())
				return
			}
		}
	}

	// Graphical mode
	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(width, height, "Double Slit")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGame(newEngine(cfg, opts, *resume), width, height)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// applyRegimeFlags overrides the configured regime with any flags given.
func applyRegimeFlags(cfg *config.Config, slits, kind string, observed bool) error {
	r := cfg.Derived.Regime
	if slits != "" {
		s, err := components.ParseSlitCount(slits)
		if err != nil {
			return err
		}
		r.Slits = s
	}
	if kind != "" {
		k, err := components.ParseParticleKind(kind)
		if err != nil {
			return err
		}
		r.Kind = k
	}
	if observed {
		r.Observed = true
	}
	cfg.SetRegime(r)
	return cfg.Validate()
}

func newEngine(cfg *config.Config, opts engine.Options, resume string) *engine.Engine {
	e, err := engine.New(cfg, opts)
	if err != nil {
		slog.Error("failed to create engine", "error", err)
		os.Exit(1)
	}
	if resume == "" {
		return e
	}

	snap, err := telemetry.LoadSnapshot(resume)
	if err == nil {
		err = e.Restore(snap)
	}
	if err != nil {
		slog.Error("failed to resume", "path", resume, "error", err)
		os.Exit(1)
	}
	slog.Info("resumed from snapshot", "path", resume, "tick", snap.Tick, "hits", snap.TotalHits)
	return e
}

func closeEngine(e *engine.Engine) {
	if err := e.Close(); err != nil {
		slog.Error("failed to close engine", "error", err)
	}
}
