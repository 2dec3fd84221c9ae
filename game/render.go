package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/doubleslit/renderer"
	"github.com/pthm-cable/doubleslit/telemetry"
	"github.com/pthm-cable/doubleslit/ui"
)

var background = rl.Color{R: 12, G: 14, B: 20, A: 255}

// Draw renders one frame.
func (g *Game) Draw() {
	e := g.engine
	e.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(background)

	geom := e.Geometry()
	regime := e.Regime()

	g.apparatus.Draw(g.viewport, geom, regime.Slits)

	if g.overlays.IsEnabled(ui.OverlayHeatStrip) || g.overlays.IsEnabled(ui.OverlayHistogram) {
		centers, values := e.BinCenters(), e.NormalizedBins()
		if g.overlays.IsEnabled(ui.OverlayHeatStrip) {
			g.pattern.DrawHeatStrip(g.viewport, geom.ScreenX(), centers, values, e.BinWidth())
		}
		if g.overlays.IsEnabled(ui.OverlayHistogram) {
			g.pattern.DrawHistogram(g.viewport, centers, values, e.BinWidth())
		}
	}
	if g.overlays.IsEnabled(ui.OverlayModelCurve) {
		g.pattern.DrawModelCurve(g.viewport, e.Model())
	}
	if g.overlays.IsEnabled(ui.OverlayParticles) {
		g.particles.Draw(g.viewport, e.Particles())
	}

	g.drawUI()

	rl.EndDrawing()
}

// drawUI draws the HUD and panels. Panel clicks are kept for the next Update.
func (g *Game) drawUI() {
	e := g.engine

	title := "Double Slit"
	stage, staged := e.Stage()
	if staged {
		title = fmt.Sprintf("Double Slit | Stage %d: %s", stage.Number, stage.Name)
	}
	g.hud.Draw(ui.HUDData{
		Title:     title,
		Seed:      e.Seed(),
		Regime:    e.Regime(),
		Branch:    e.Model().Branch(),
		Tick:      e.TickCount(),
		Live:      e.Live(),
		TotalHits: e.TotalHits(),
		Exhausted: e.Exhausted(),
		Speed:     e.StepsPerUpdate(),
		FPS:       rl.GetFPS(),
		Firing:    e.Firing() && !g.paused,
	})
	g.hud.DrawLegend(10, g.height-50, renderer.CategoryColor)

	state := ui.ExperimentState{
		Firing: e.Firing(),
		Regime: e.Regime(),
	}
	if staged {
		state.Stage = stage.Number
	}
	g.pending = g.experiment.Draw(state)

	switch {
	case g.overlays.IsEnabled(ui.OverlayStats):
		g.statsPanel.Draw(e.LastStats())
	case g.overlays.IsEnabled(ui.OverlayPerf):
		g.drawPerf(e.PerfStats())
	}

	g.overlayPanel.Draw(g.overlays)

	g.hud.DrawControls(g.height,
		"SPACE: Fire | R: Reset | 1-5: Stage | S: Slits | C/W/Q: Kind | O: Observer | < >: Speed | F: Freeze | TAB: Overlays")
}

func (g *Game) drawPerf(stats telemetry.PerfStats) {
	g.perfPanel.Draw(ui.PerfPanelData{
		PhaseTimes: stats.PhaseAvg,
		Total:      stats.AvgTickDuration,
		Registry:   g.engine.Registry(),
	}, telemetry.Phases())
}
