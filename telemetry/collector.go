// Package telemetry provides windowed run statistics, performance timing,
// pattern events, CSV output and snapshots.
package telemetry

import (
	"github.com/pthm-cable/doubleslit/components"
	"github.com/pthm-cable/doubleslit/systems"
)

// Collector accumulates flight events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawned   int
	absorbed  int
	passed    [2]int
	detected  int
	exhausted int
	hits      []float64 // offsets from the axis
	centerY   float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64, centerY float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		centerY:             centerY,
	}
}

// RecordSpawn records n launched particles.
func (c *Collector) RecordSpawn(n int) {
	c.spawned += n
}

// RecordStep records the outcome of one flight update.
func (c *Collector) RecordStep(step systems.Step) {
	c.absorbed += step.Absorbed
	c.passed[components.SlitA] += step.Passed[components.SlitA]
	c.passed[components.SlitB] += step.Passed[components.SlitB]
	c.detected += step.Detected
	c.exhausted += step.Exhausted
	for _, h := range step.Hits {
		c.hits = append(c.hits, h.Y-c.centerY)
	}
}

// SetCenterY moves the axis that hit offsets are measured from.
func (c *Collector) SetCenterY(y float64) {
	c.centerY = y
}

// Exhausted returns the sampler fallbacks recorded in the current window.
func (c *Collector) Exhausted() int {
	return c.exhausted
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, live int, regime components.Regime, pattern PatternStats) WindowStats {
	var passRate float64
	passed := c.passed[0] + c.passed[1]
	if arrived := passed + c.absorbed; arrived > 0 {
		passRate = float64(passed) / float64(arrived)
	}

	mean, std, p10, p50, p90 := ComputeHitStats(c.hits)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Regime: regime.String(),
		Branch: pattern.Branch,
		Driven: pattern.Driven,

		Live: live,

		Spawned:   c.spawned,
		Absorbed:  c.absorbed,
		PassedA:   c.passed[components.SlitA],
		PassedB:   c.passed[components.SlitB],
		Detected:  c.detected,
		Exhausted: c.exhausted,
		PassRate:  passRate,

		HitMean: mean,
		HitStd:  std,
		HitP10:  p10,
		HitP50:  p50,
		HitP90:  p90,

		TotalHits:     pattern.TotalHits,
		BufferTotal:   pattern.BufferTotal,
		Fringes:       pattern.Fringes,
		Visibility:    pattern.Visibility,
		ModelDistance: pattern.ModelDistance,
	}

	c.Reset(currentTick)
	return stats
}

// Reset discards the current window's counters and starts a new window at tick.
func (c *Collector) Reset(tick int32) {
	c.windowStartTick = tick
	c.spawned = 0
	c.absorbed = 0
	c.passed = [2]int{}
	c.detected = 0
	c.exhausted = 0
	c.hits = c.hits[:0]
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
