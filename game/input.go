package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/doubleslit/ui"
)

// handleInput processes keyboard input and the panel requests from the
// previous frame.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyF) {
		g.paused = !g.paused
	}

	g.overlays.HandleKeys(rl.IsKeyPressed)

	if rl.IsKeyPressed(rl.KeyTab) {
		g.overlayPanel.Toggle()
	}

	// Speed control with < > keys (comma and period)
	speed := g.engine.StepsPerUpdate()
	if rl.IsKeyPressed(rl.KeyComma) && speed > 1 {
		g.engine.SetStepsPerUpdate(speed - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && speed < maxSpeed {
		g.engine.SetStepsPerUpdate(speed + 1)
	}

	in := g.pending
	if !in.RegimeChanged {
		in.Regime = g.engine.Regime()
	}
	g.pending = ui.ExperimentInput{}
	g.applyExperiment(in.ApplyKeys(rl.IsKeyPressed))
}

// handleResize rebuilds the layout when the window size changes.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == g.width && h == g.height {
		return
	}
	g.resize(w, h)
}
