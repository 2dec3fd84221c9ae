package ui

import (
	"fmt"

	"github.com/pthm-cable/doubleslit/telemetry"
)

func windowStats(data any) telemetry.WindowStats {
	if s, ok := data.(telemetry.WindowStats); ok {
		return s
	}
	if s, ok := data.(*telemetry.WindowStats); ok && s != nil {
		return *s
	}
	return telemetry.WindowStats{}
}

func statInt(f func(telemetry.WindowStats) int) func(any) float32 {
	return func(data any) float32 { return float32(f(windowStats(data))) }
}

func statFloat(f func(telemetry.WindowStats) float64) func(any) float32 {
	return func(data any) float32 { return float32(f(windowStats(data))) }
}

func hitsDriven(data any) bool {
	return windowStats(data).Driven == telemetry.DrivenByHits
}

// StatsSections describes the last telemetry window.
func StatsSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "window",
			Title: "Window",
			Fields: []FieldDescriptor{
				{ID: "end", Label: "End tick", Widget: WidgetText, Format: "%.0f",
					Getter: statInt(func(s telemetry.WindowStats) int { return int(s.WindowEndTick) })},
				{ID: "regime", Label: "Regime", Widget: WidgetText,
					TextGetter: func(data any) string { return windowStats(data).Regime }},
				{ID: "branch", Label: "Branch", Widget: WidgetText,
					TextGetter: func(data any) string {
						s := windowStats(data)
						return fmt.Sprintf("%s (%s)", s.Branch, s.Driven)
					}},
			},
		},
		{
			ID:      "flight",
			Title:   "Flight",
			Visible: hitsDriven,
			Fields: []FieldDescriptor{
				{ID: "spawned", Label: "Spawned", Widget: WidgetText, Format: "%.0f",
					Getter: statInt(func(s telemetry.WindowStats) int { return s.Spawned })},
				{ID: "passed", Label: "Passed A/B", Widget: WidgetText,
					TextGetter: func(data any) string {
						s := windowStats(data)
						return fmt.Sprintf("%d / %d", s.PassedA, s.PassedB)
					}},
				{ID: "absorbed", Label: "Absorbed", Widget: WidgetText, Format: "%.0f",
					Getter: statInt(func(s telemetry.WindowStats) int { return s.Absorbed })},
				{ID: "pass_rate", Label: "Pass rate", Widget: WidgetRatioBar, Range: UnitRange(),
					Getter: statFloat(func(s telemetry.WindowStats) float64 { return s.PassRate })},
				{ID: "exhausted", Label: "Exhausted", Widget: WidgetText, Format: "%.0f",
					Visible: func(data any) bool { return windowStats(data).Exhausted > 0 },
					Getter:  statInt(func(s telemetry.WindowStats) int { return s.Exhausted })},
			},
		},
		{
			ID:      "landing",
			Title:   "Landing",
			Visible: func(data any) bool { return hitsDriven(data) && windowStats(data).Detected > 0 },
			Fields: []FieldDescriptor{
				{ID: "detected", Label: "Detected", Widget: WidgetText, Format: "%.0f",
					Getter: statInt(func(s telemetry.WindowStats) int { return s.Detected })},
				{ID: "mean", Label: "Mean", Widget: WidgetText, Format: "%+.1f",
					Getter: statFloat(func(s telemetry.WindowStats) float64 { return s.HitMean })},
				{ID: "std", Label: "Std", Widget: WidgetText, Format: "%.1f",
					Getter: statFloat(func(s telemetry.WindowStats) float64 { return s.HitStd })},
				{ID: "spread", Label: "P10/50/90", Widget: WidgetText,
					TextGetter: func(data any) string {
						s := windowStats(data)
						return fmt.Sprintf("%.0f / %.0f / %.0f", s.HitP10, s.HitP50, s.HitP90)
					}},
			},
		},
		{
			ID:    "pattern",
			Title: "Pattern",
			Fields: []FieldDescriptor{
				{ID: "total_hits", Label: "Total hits", Widget: WidgetText, Format: "%.0f",
					Visible: hitsDriven,
					Getter:  statInt(func(s telemetry.WindowStats) int { return s.TotalHits })},
				{ID: "fringes", Label: "Fringes", Widget: WidgetText, Format: "%.0f",
					Getter: statInt(func(s telemetry.WindowStats) int { return s.Fringes })},
				{ID: "visibility", Label: "Visibility", Widget: WidgetRatioBar, Range: UnitRange(),
					Getter: statFloat(func(s telemetry.WindowStats) float64 { return s.Visibility })},
				{ID: "distance", Label: "Model dist", Widget: WidgetBar, Range: UnitRange(), Format: "%.3f",
					Getter: statFloat(func(s telemetry.WindowStats) float64 { return s.ModelDistance })},
			},
		},
	}
}

// StatsPanel renders the last telemetry window from StatsSections.
type StatsPanel struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewStatsPanel creates a stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		sections: StatsSections(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *StatsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel. Nothing is drawn before the first window closes.
func (p *StatsPanel) Draw(stats telemetry.WindowStats) int32 {
	if stats.WindowEndTick == 0 {
		return p.y
	}
	r := p.renderer
	padding := r.Theme.Padding

	height := padding * 2
	for _, sd := range p.sections {
		height += r.SectionHeight(sd, stats)
	}
	r.DrawPanel(p.x, p.y, p.width, height)

	y := p.y + padding
	for _, sd := range p.sections {
		y = r.DrawSection(p.x+padding, y, sd, stats, p.width-padding*2)
	}
	return p.y + height
}
