// Pattern preview tool - interactive plot of the landing intensity with
// sliders for the apparatus geometry.
//
// Usage: go run ./cmd/patternpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/doubleslit/components"
	"github.com/pthm-cable/doubleslit/config"
	"github.com/pthm-cable/doubleslit/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	plotWidth    = 600
	plotHeight   = 500
	panelWidth   = windowWidth - plotWidth - 40
	curveSamples = 600
)

// slider describes one geometry slider.
type slider struct {
	label    string
	min, max float32
	format   string
	value    func(*components.Geometry) *float64
}

var sliders = []slider{
	{"Wavelength (lambda)", 1, 80, "%.1f", func(g *components.Geometry) *float64 { return &g.Wavelength }},
	{"Slit width (a)", 1, 100, "%.1f", func(g *components.Geometry) *float64 { return &g.SlitWidth }},
	{"Slit separation (d)", 2, 400, "%.1f", func(g *components.Geometry) *float64 { return &g.SlitSeparation }},
	{"Screen distance (L)", 50, 3000, "%.0f", func(g *components.Geometry) *float64 { return &g.ScreenDistance }},
	{"Classical spread (sigma)", 1, 400, "%.1f", nil},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	defaults := *cfg

	rl.InitWindow(windowWidth, windowHeight, "Interference Pattern Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	geom := cfg.Geometry
	regime := cfg.Derived.Regime
	spread := cfg.Sampler.ClassicalSpread

	for !rl.WindowShouldClose() {
		model := systems.NewModel(geom, regime, spread)
		invalid := geom.Validate(regime.Slits)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawPlot(model, 10, 10)

		statsY := int32(plotHeight + 25)
		if invalid != nil {
			rl.DrawText(invalid.Error(), 15, statsY, 16, rl.Red)
		} else {
			rl.DrawText(fmt.Sprintf("Branch: %s | Regime: %s", model.Branch(), regime), 15, statsY, 16, rl.DarkGray)
			rl.DrawText(fmt.Sprintf("First minimum: %s | Fringe spacing: %s",
				formatLength(systems.FirstMinimum(geom)), formatLength(systems.FringeSpacing(geom))),
				15, statsY+20, 16, rl.DarkGray)
		}

		// Control panel
		panelX := float32(plotWidth + 30)
		panelY := float32(10)

		rl.DrawText("Apparatus", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18

			current := &spread
			if s.value != nil {
				current = s.value(&geom)
			}
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				fmt.Sprintf(s.format, s.min), fmt.Sprintf(s.format, s.max),
				float32(*current), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *current), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != float32(*current) {
				*current = float64(next)
			}
			panelY += 35
		}

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		// Regime buttons
		rl.DrawText("Regime", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(regime.Slits == components.TwoSlits, "Two slits", "One slit")) {
			regime.Slits = 1 - regime.Slits
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, regime.Kind.String()) {
			regime.Kind = (regime.Kind + 1) % 3
		}
		if gui.Button(rl.Rectangle{X: panelX + 260, Y: panelY, Width: 120, Height: 30}, toggleText(regime.Observed, "Observed", "Unobserved")) {
			regime.Observed = !regime.Observed
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			geom = defaults.Geometry
			regime = defaults.Derived.Regime
			spread = defaults.Sampler.ClassicalSpread
		}
		panelY += 45

		// Output YAML
		out := *cfg
		out.SetGeometry(geom)
		out.SetRegime(regime)
		out.Sampler.ClassicalSpread = spread
		snippet := yamlSnippet(&out)

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range snippet {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(strings.Join(snippet, "\n"))
		}

		rl.EndDrawing()
	}
}

// drawPlot draws the intensity over the screen, screen coordinate on the
// horizontal axis, normalized to the curve's own peak.
func drawPlot(m systems.Model, x, y int32) {
	rl.DrawRectangle(x, y, plotWidth, plotHeight, rl.Color{R: 245, G: 245, B: 248, A: 255})
	rl.DrawRectangleLines(x, y, plotWidth, plotHeight, rl.DarkGray)

	g := m.Geometry()
	ys := make([]float64, curveSamples)
	step := (g.ScreenMax() - g.ScreenMin()) / float64(curveSamples-1)
	for i := range ys {
		ys[i] = g.ScreenMin() + float64(i)*step
	}
	curve := systems.ModelProfile(m, ys)

	peak := 0.0
	for _, c := range curve {
		peak = max(peak, c)
	}
	if peak <= 0 {
		rl.DrawText("zero intensity", x+10, y+10, 16, rl.Red)
		return
	}

	// Slit positions
	slits := []components.Slit{components.SlitA}
	if m.Regime().Slits == components.TwoSlits {
		slits = append(slits, components.SlitB)
	}
	for _, s := range slits {
		px := x + int32(float64(plotWidth)*(g.SlitCenter(m.Regime().Slits, s)-g.ScreenMin())/(g.ScreenMax()-g.ScreenMin()))
		rl.DrawLine(px, y, px, y+plotHeight, rl.LightGray)
	}

	prev := rl.Vector2{}
	for i, c := range curve {
		pt := rl.Vector2{
			X: float32(x) + float32(i)/float32(curveSamples-1)*plotWidth,
			Y: float32(y+plotHeight) - float32(c/peak)*(plotHeight-10),
		}
		if i > 0 {
			rl.DrawLineEx(prev, pt, 2, rl.DarkBlue)
		}
		prev = pt
	}
}

// yamlSnippet renders the geometry, regime and spread sections.
func yamlSnippet(cfg *config.Config) []string {
	doc := struct {
		Geometry components.Geometry `yaml:"geometry"`
		Regime   config.RegimeConfig `yaml:"regime"`
		Sampler  struct {
			ClassicalSpread float64 `yaml:"classical_spread"`
		} `yaml:"sampler"`
	}{Geometry: cfg.Geometry, Regime: cfg.Regime}
	doc.Sampler.ClassicalSpread = math.Round(cfg.Sampler.ClassicalSpread*10) / 10

	data, err := yaml.Marshal(doc)
	if err != nil {
		return []string{err.Error()}
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func formatLength(v float64) string {
	if math.IsInf(v, 0) {
		return "none"
	}
	return fmt.Sprintf("%.1f", v)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
