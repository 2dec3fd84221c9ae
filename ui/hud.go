package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/doubleslit/components"
	"github.com/pthm-cable/doubleslit/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Seed      uint64
	Regime    components.Regime
	Branch    systems.Branch
	Tick      int32
	Live      int
	TotalHits int
	Exhausted int
	Speed     int
	FPS       int32
	Firing    bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Regime: %s | Branch: %s | Seed: %d", data.Regime, data.Branch, data.Seed),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d | Live: %d | Hits: %d", data.Tick, data.Speed, data.FPS, data.Live, data.TotalHits),
		10, 55, 16, rl.LightGray,
	)

	statusText, statusColor := "Idle", rl.Gray
	if data.Firing {
		statusText, statusColor = "Firing", rl.Yellow
	}
	rl.DrawText(statusText, 10, 75, 16, statusColor)

	if data.Exhausted > 0 {
		rl.DrawText(fmt.Sprintf("Sampler fallbacks: %d", data.Exhausted), 90, 75, 16, rl.Red)
	}
}

// DrawLegend draws one swatch per particle category in a row.
func (h *HUD) DrawLegend(x, y int32, color func(components.Category) rl.Color) {
	for i, name := range components.CategoryNames() {
		rl.DrawRectangle(x, y+3, 10, 10, color(components.Category(i)))
		rl.DrawText(name, x+14, y, 14, rl.LightGray)
		x += 14 + rl.MeasureText(name, 14) + 16
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseTimes map[string]time.Duration
	Total      time.Duration
	Registry   *systems.SystemRegistry
}

// PerfPanel renders the per-phase performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel with phases in the given order.
func (p *PerfPanel) Draw(data PerfPanelData, phases []string) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range phases {
		avg := data.PhaseTimes[name]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		displayName := name
		if data.Registry != nil {
			displayName = data.Registry.GetName(name)
		}

		rl.DrawText(
			fmt.Sprintf("%-16s %6s %5.1f%%", displayName, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
