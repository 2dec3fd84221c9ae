package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/doubleslit/components"
)

// ExperimentState is what the experiment panel displays.
type ExperimentState struct {
	Firing bool
	Regime components.Regime
	Stage  int // active stage number, 0 if the regime is not a stage
}

// ExperimentInput is what the user asked for this frame.
type ExperimentInput struct {
	ToggleFire bool
	Reset      bool

	// Regime holds the requested regime; RegimeChanged reports whether it
	// differs from the displayed one.
	Regime        components.Regime
	RegimeChanged bool

	// Stage is a requested experiment stage (1-5), 0 for none. It wins over
	// a regime change made in the same frame.
	Stage int
}

var stageKeys = [...]int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive}

// ApplyKeys merges keyboard shortcuts into the input: Space fires, R
// resets, 1-5 pick a stage, S toggles the slit count, C/W/Q pick the kind
// and O toggles the observer.
func (in ExperimentInput) ApplyKeys(pressed func(key int32) bool) ExperimentInput {
	if pressed(rl.KeySpace) {
		in.ToggleFire = true
	}
	if pressed(rl.KeyR) {
		in.Reset = true
	}
	for i, k := range stageKeys {
		if pressed(k) {
			in.Stage = i + 1
			break
		}
	}
	next := in.Regime
	if pressed(rl.KeyS) {
		next.Slits = 1 - next.Slits
	}
	switch {
	case pressed(rl.KeyC):
		next.Kind = components.KindClassical
	case pressed(rl.KeyW):
		next.Kind = components.KindWave
	case pressed(rl.KeyQ):
		next.Kind = components.KindQuantum
	}
	if pressed(rl.KeyO) {
		next.Observed = !next.Observed
	}
	if next != in.Regime {
		in.Regime = next
		in.RegimeChanged = true
	}
	return in
}

// ExperimentPanel renders the fire, reset and regime buttons.
type ExperimentPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewExperimentPanel creates an experiment panel.
func NewExperimentPanel(x, y, width int32) *ExperimentPanel {
	return &ExperimentPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the panel and returns the user's requests.
func (p *ExperimentPanel) Draw(state ExperimentState) ExperimentInput {
	r := p.renderer
	padding := r.Theme.Padding
	rowH := float32(26)
	gap := float32(6)

	height := int32(6*(rowH+gap)) + padding*2 + r.Theme.LineHeight
	r.DrawPanel(p.x, p.y, p.width, height)

	in := ExperimentInput{Regime: state.Regime}
	x := float32(p.x + padding)
	y := float32(p.y + padding)
	inner := float32(p.width - padding*2)

	rl.DrawText("Experiment", int32(x), int32(y), 16, rl.White)
	y += float32(r.Theme.LineHeight) + 4

	half := (inner - gap) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: rowH}, toggleText(state.Firing, "Stop", "Fire")) {
		in.ToggleFire = true
	}
	if gui.Button(rl.Rectangle{X: x + half + gap, Y: y, Width: half, Height: rowH}, "Reset") {
		in.Reset = true
	}
	y += rowH + gap

	if i, ok := p.choice(x, y, inner, rowH, gap, len(components.Stages), state.Stage-1, func(i int) string {
		return fmt.Sprint(components.Stages[i].Number)
	}); ok {
		in.Stage = components.Stages[i].Number
	}
	y += rowH + gap

	next := state.Regime
	slits := []components.SlitCount{components.OneSlit, components.TwoSlits}
	if i, ok := p.choice(x, y, inner, rowH, gap, len(slits), indexOf(slits, next.Slits), func(i int) string {
		return slits[i].String() + " slit"
	}); ok {
		next.Slits = slits[i]
	}
	y += rowH + gap

	kinds := []components.ParticleKind{components.KindClassical, components.KindWave, components.KindQuantum}
	if i, ok := p.choice(x, y, inner, rowH, gap, len(kinds), indexOf(kinds, next.Kind), func(i int) string {
		return kinds[i].String()
	}); ok {
		next.Kind = kinds[i]
	}
	y += rowH + gap

	if next.Kind == components.KindQuantum {
		label := toggleText(next.Observed, "Observer: on", "Observer: off")
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: rowH}, label) {
			next.Observed = !next.Observed
		}
	}
	y += rowH + gap

	label := fmt.Sprintf("Regime: %s", state.Regime)
	if state.Stage > 0 {
		label = fmt.Sprintf("Stage %d: %s", state.Stage, components.Stages[state.Stage-1].Name)
	}
	rl.DrawText(label, int32(x), int32(y)+4, r.Theme.FontSize, r.Theme.LabelColor)

	if next != state.Regime {
		in.Regime = next
		in.RegimeChanged = true
	}
	return in
}

// choice draws a row of n buttons and highlights the active one. It
// returns the index clicked, if any.
func (p *ExperimentPanel) choice(x, y, width, height, gap float32, n, active int, label func(int) string) (int, bool) {
	w := (width - gap*float32(n-1)) / float32(n)
	clicked, ok := 0, false
	for i := range n {
		bounds := rl.Rectangle{X: x + float32(i)*(w+gap), Y: y, Width: w, Height: height}
		if gui.Button(bounds, label(i)) {
			clicked, ok = i, true
		}
		if i == active {
			rl.DrawRectangleLinesEx(bounds, 2, p.renderer.Theme.SectionHeader)
		}
	}
	return clicked, ok
}

func indexOf[T comparable](values []T, v T) int {
	for i := range values {
		if values[i] == v {
			return i
		}
	}
	return -1
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// OverlayPanel lists the overlay toggles and their keys.
type OverlayPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewOverlayPanel creates a new overlay panel, hidden.
func NewOverlayPanel(x, y, width int32) *OverlayPanel {
	return &OverlayPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (c *OverlayPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the y below it.
func (c *OverlayPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	return c.y + panelHeight
}

// drawToggle draws a single overlay toggle line.
func (c *OverlayPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = r.Theme.BarFillHigh
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "scene":
		return "Scene"
	case "panels":
		return "Panels"
	default:
		return cat
	}
}
