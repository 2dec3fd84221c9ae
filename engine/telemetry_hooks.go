package engine

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/doubleslit/components"
	"github.com/pthm-cable/doubleslit/systems"
	"github.com/pthm-cable/doubleslit/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles pattern events.
func (e *Engine) flushTelemetry() {
	if !e.collector.ShouldFlush(e.tick) {
		return
	}

	stats := e.collector.Flush(e.tick, e.live, e.cfg.Derived.Regime, e.patternStats())
	perfStats := e.perf.Stats()
	e.lastStats = stats
	e.exhaustWarned = false

	if e.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if e.output != nil {
		if err := e.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := e.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, ev := range e.events.Check(stats) {
		if e.logStats {
			ev.LogEvent()
		}
		if e.output != nil {
			if err := e.output.WriteEvent(ev); err != nil {
				slog.Error("failed to write event", "error", err)
			}
		}
		if e.snapshotDir != "" {
			e.saveSnapshot(&ev)
		}
	}
}

// patternStats measures the pattern currently on the detector.
func (e *Engine) patternStats() telemetry.PatternStats {
	values := e.buffer.Values()
	peaks := systems.LocalMaxima(values, e.cfg.Events.ProminenceFraction)

	driven := telemetry.DrivenByHits
	if e.cfg.Derived.Regime.Kind == components.KindWave {
		driven = telemetry.DrivenByRelax
	}

	return telemetry.PatternStats{
		Branch:        e.model.Branch().String(),
		Driven:        driven,
		TotalHits:     e.totalHits,
		BufferTotal:   floats.Sum(values),
		Fringes:       len(peaks),
		Visibility:    systems.Visibility(values, peaks),
		ModelDistance: systems.ProfileDistance(values, systems.ModelProfile(e.model, e.buffer.Centers())),
	}
}

// Profile returns the detector profile next to the model curve, both
// normalized to a peak of 1.
func (e *Engine) Profile() []telemetry.ProfileRow {
	values := e.buffer.Values()
	normalized := e.buffer.Normalized()
	model := systems.ModelProfile(e.model, e.buffer.Centers())
	if peak := floats.Max(model); peak > 0 {
		floats.Scale(1/peak, model)
	}

	rows := make([]telemetry.ProfileRow, len(values))
	for i := range rows {
		rows[i] = telemetry.ProfileRow{
			Bin:        i,
			Y:          e.buffer.BinCenter(i),
			Value:      values[i],
			Normalized: normalized[i],
			Model:      model[i],
		}
	}
	return rows
}

// WriteProfile writes profile.csv when output is enabled.
func (e *Engine) WriteProfile() error {
	if e.output == nil {
		return nil
	}
	return e.output.WriteProfile(e.Profile())
}

// saveSnapshot creates and saves a snapshot to disk.
func (e *Engine) saveSnapshot(ev *telemetry.PatternEvent) {
	path, err := telemetry.SaveSnapshot(e.Snapshot(ev), e.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", e.tick)
}
