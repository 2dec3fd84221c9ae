package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/doubleslit/config"
	"github.com/pthm-cable/doubleslit/systems"
)

// EventType identifies a pattern event.
type EventType string

const (
	// EventFringesResolved fires once the detector shows a clear interference pattern.
	EventFringesResolved EventType = "fringes_resolved"
	// EventPatternCollapsed fires once a collapsed-branch run has enough hits
	// to confirm there are no fringes.
	EventPatternCollapsed EventType = "pattern_collapsed"
	// EventSamplerDegraded fires the first time the sampler falls back to a uniform draw.
	EventSamplerDegraded EventType = "sampler_degraded"
)

// PatternEvent is an automatically detected moment in a run.
type PatternEvent struct {
	Type        EventType `csv:"type" json:"type"`
	Tick        int32     `csv:"tick" json:"tick"`
	Regime      string    `csv:"regime" json:"regime"`
	Description string    `csv:"description" json:"description"`
}

// LogEvent logs the event using slog.
func (e PatternEvent) LogEvent() {
	slog.Info("event",
		"type", string(e.Type),
		"tick", e.Tick,
		"regime", e.Regime,
		"description", e.Description,
	)
}

// EventDetector watches window stats for pattern events. Each event type fires
// at most once until Reset.
type EventDetector struct {
	thresholds config.EventsConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historyIdx  int
	historyFull bool

	fired map[EventType]bool
}

// NewEventDetector creates a detector with the given thresholds and history size.
func NewEventDetector(thresholds config.EventsConfig, historySize int) *EventDetector {
	if historySize < 2 {
		historySize = 2
	}
	return &EventDetector{
		thresholds: thresholds,
		history:    make([]WindowStats, historySize),
		fired:      make(map[EventType]bool),
	}
}

// Check analyzes the latest stats and returns any triggered events.
func (d *EventDetector) Check(stats WindowStats) []PatternEvent {
	var events []PatternEvent

	for _, check := range []func(WindowStats) *PatternEvent{
		d.checkFringesResolved,
		d.checkPatternCollapsed,
		d.checkSamplerDegraded,
	} {
		if e := check(stats); e != nil && !d.fired[e.Type] {
			d.fired[e.Type] = true
			events = append(events, *e)
		}
	}

	d.addToHistory(stats)
	return events
}

// Reset clears history and re-arms every event type.
func (d *EventDetector) Reset() {
	d.historyIdx = 0
	d.historyFull = false
	clear(d.fired)
}

// History returns the retained windows, oldest first.
func (d *EventDetector) History() []WindowStats {
	if !d.historyFull {
		return append([]WindowStats(nil), d.history[:d.historyIdx]...)
	}
	out := make([]WindowStats, 0, len(d.history))
	out = append(out, d.history[d.historyIdx:]...)
	return append(out, d.history[:d.historyIdx]...)
}

func (d *EventDetector) addToHistory(stats WindowStats) {
	d.history[d.historyIdx] = stats
	d.historyIdx = (d.historyIdx + 1) % len(d.history)
	if d.historyIdx == 0 {
		d.historyFull = true
	}
}

// previous returns the most recent window before the current one.
func (d *EventDetector) previous() (WindowStats, bool) {
	if !d.historyFull && d.historyIdx == 0 {
		return WindowStats{}, false
	}
	i := (d.historyIdx - 1 + len(d.history)) % len(d.history)
	return d.history[i], true
}

func (d *EventDetector) enoughData(s WindowStats) bool {
	return s.Driven == DrivenByRelax || s.TotalHits >= d.thresholds.MinHits
}

func (d *EventDetector) resolved(s WindowStats) bool {
	return d.enoughData(s) &&
		s.Fringes >= d.thresholds.MinFringes &&
		s.Visibility >= d.thresholds.VisibilityResolved
}

// Fringes must hold for two consecutive windows so a noisy histogram does not
// trigger early.
func (d *EventDetector) checkFringesResolved(s WindowStats) *PatternEvent {
	prev, ok := d.previous()
	if !ok || !d.resolved(s) || !d.resolved(prev) {
		return nil
	}
	return &PatternEvent{
		Type:        EventFringesResolved,
		Tick:        s.WindowEndTick,
		Regime:      s.Regime,
		Description: fmt.Sprintf("%d fringes with visibility %.2f after %d hits", s.Fringes, s.Visibility, s.TotalHits),
	}
}

func (d *EventDetector) checkPatternCollapsed(s WindowStats) *PatternEvent {
	if s.Branch != systems.BranchClassical.String() || s.TotalHits < d.thresholds.MinHits {
		return nil
	}
	if s.Visibility >= d.thresholds.VisibilityCollapsed {
		return nil
	}
	return &PatternEvent{
		Type:        EventPatternCollapsed,
		Tick:        s.WindowEndTick,
		Regime:      s.Regime,
		Description: fmt.Sprintf("no interference after %d hits (visibility %.2f)", s.TotalHits, s.Visibility),
	}
}

func (d *EventDetector) checkSamplerDegraded(s WindowStats) *PatternEvent {
	if s.Exhausted == 0 {
		return nil
	}
	return &PatternEvent{
		Type:        EventSamplerDegraded,
		Tick:        s.WindowEndTick,
		Regime:      s.Regime,
		Description: fmt.Sprintf("%d landing draws fell back to uniform", s.Exhausted),
	}
}
