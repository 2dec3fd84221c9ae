// Package game is the raylib front-end. It drives an engine.Engine from
// keyboard and panel input and draws the apparatus, the particles and the
// detector pattern.
package game

import (
	"log/slog"

	"github.com/pthm-cable/doubleslit/engine"
	"github.com/pthm-cable/doubleslit/renderer"
	"github.com/pthm-cable/doubleslit/ui"
)

// Layout constants
const (
	margin       = 40
	patternWidth = 180
	sidePanelW   = 240
	maxSpeed     = 10
)

// Game holds the viewer state around an engine.
type Game struct {
	engine *engine.Engine

	// Rendering
	viewport  renderer.Viewport
	apparatus *renderer.ApparatusRenderer
	particles *renderer.ParticleRenderer
	pattern   *renderer.PatternRenderer

	// UI
	hud          *ui.HUD
	experiment   *ui.ExperimentPanel
	statsPanel   *ui.StatsPanel
	perfPanel    *ui.PerfPanel
	overlayPanel *ui.OverlayPanel
	overlays     *ui.OverlayRegistry

	// Panel requests from the last Draw, applied on the next Update
	pending ui.ExperimentInput

	width, height int32
	paused        bool
}

// NewGame wraps e. The raylib window must already be open.
func NewGame(e *engine.Engine, width, height int32) *Game {
	g := &Game{
		engine:       e,
		apparatus:    renderer.NewApparatusRenderer(),
		particles:    renderer.NewParticleRenderer(),
		pattern:      renderer.NewPatternRenderer(),
		hud:          ui.NewHUD(),
		overlays:     ui.NewOverlayRegistry(),
		overlayPanel: ui.NewOverlayPanel(10, 100, 200),
	}
	g.resize(width, height)
	return g
}

// resize recomputes every position that depends on the window size.
func (g *Game) resize(width, height int32) {
	g.width, g.height = width, height
	g.viewport = renderer.NewViewport(g.engine.Geometry(), width, height, margin, patternWidth)

	right := width - sidePanelW - 10
	g.experiment = ui.NewExperimentPanel(right, 10, sidePanelW)
	g.statsPanel = ui.NewStatsPanel(right, 262, sidePanelW)
	g.perfPanel = ui.NewPerfPanel(right, 240)
}

// Update handles input and runs the engine unless paused.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}
	g.engine.Update()
}

// Tick returns the engine tick.
func (g *Game) Tick() int32 {
	return g.engine.TickCount()
}

// applyExperiment forwards panel and keyboard requests to the engine.
func (g *Game) applyExperiment(in ui.ExperimentInput) {
	if in.ToggleFire {
		g.engine.SetFiring(!g.engine.Firing())
	}
	if in.Reset {
		g.engine.Reset()
	}
	if in.Stage > 0 {
		if err := g.engine.ApplyStage(in.Stage); err != nil {
			slog.Warn("stage rejected", "stage", in.Stage, "error", err)
		}
		return
	}
	if in.RegimeChanged {
		if err := g.engine.Configure(g.engine.Geometry(), in.Regime); err != nil {
			slog.Warn("regime rejected", "regime", in.Regime.String(), "error", err)
		}
	}
}

// Unload releases engine resources.
func (g *Game) Unload() {
	if err := g.engine.Close(); err != nil {
		slog.Error("failed to close engine", "error", err)
	}
}
