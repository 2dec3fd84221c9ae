package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Buffer drive modes reported in WindowStats.
const (
	DrivenByHits  = "hits"
	DrivenByRelax = "relax"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	Regime string `csv:"regime"`
	Branch string `csv:"branch"` // wave | classical
	Driven string `csv:"driven"` // hits | relax

	// Particle counts at window end
	Live int `csv:"live"`

	// Flight events during window
	Spawned   int     `csv:"spawned"`
	Absorbed  int     `csv:"absorbed"`
	PassedA   int     `csv:"passed_a"`
	PassedB   int     `csv:"passed_b"`
	Detected  int     `csv:"detected"`
	Exhausted int     `csv:"sampler_exhausted"`
	PassRate  float64 `csv:"pass_rate"`

	// Landing distribution of this window's hits, offset from the axis
	HitMean float64 `csv:"hit_mean"`
	HitStd  float64 `csv:"hit_std"`
	HitP10  float64 `csv:"hit_p10"`
	HitP50  float64 `csv:"hit_p50"`
	HitP90  float64 `csv:"hit_p90"`

	// Pattern on the detector at window end
	TotalHits     int     `csv:"total_hits"` // since the last reset
	BufferTotal   float64 `csv:"buffer_total"`
	Fringes       int     `csv:"fringes"`
	Visibility    float64 `csv:"visibility"`
	ModelDistance float64 `csv:"model_distance"` // Hellinger distance to the model profile
}

// PatternStats describes the accumulation buffer when a window is flushed.
type PatternStats struct {
	Branch        string
	Driven        string
	TotalHits     int
	BufferTotal   float64
	Fringes       int
	Visibility    float64
	ModelDistance float64
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	if lo+1 >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

// ComputeHitStats calculates mean, standard deviation and percentiles of
// landing offsets.
func ComputeHitStats(values []float64) (mean, std, p10, p50, p90 float64) {
	switch len(values) {
	case 0:
		return 0, 0, 0, 0, 0
	case 1:
		v := values[0]
		return v, 0, v, v, v
	}

	mean, std = stat.MeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, std, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("regime", s.Regime),
		slog.Int("live", s.Live),
		slog.Int("spawned", s.Spawned),
		slog.Int("absorbed", s.Absorbed),
		slog.Int("detected", s.Detected),
		slog.Int("sampler_exhausted", s.Exhausted),
		slog.Float64("pass_rate", s.PassRate),
		slog.Float64("hit_std", s.HitStd),
		slog.Int("total_hits", s.TotalHits),
		slog.Int("fringes", s.Fringes),
		slog.Float64("visibility", s.Visibility),
		slog.Float64("model_distance", s.ModelDistance),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"regime", s.Regime,
		"driven", s.Driven,
		"live", s.Live,
		"spawned", s.Spawned,
		"absorbed", s.Absorbed,
		"passed_a", s.PassedA,
		"passed_b", s.PassedB,
		"detected", s.Detected,
		"sampler_exhausted", s.Exhausted,
		"pass_rate", s.PassRate,
		"hit_mean", s.HitMean,
		"hit_std", s.HitStd,
		"total_hits", s.TotalHits,
		"buffer_total", s.BufferTotal,
		"fringes", s.Fringes,
		"visibility", s.Visibility,
		"model_distance", s.ModelDistance,
	)
}
