package systems

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/doubleslit/components"
)

// FirstMinimum returns the offset of the first two-slit interference minimum,
// where α = π/2.
func FirstMinimum(g components.Geometry) float64 {
	s := g.Wavelength / (2 * g.SlitSeparation)
	if s >= 1 {
		return math.Inf(1)
	}
	return g.ScreenDistance * math.Tan(math.Asin(s))
}

// FringeSpacing returns the small-angle distance between adjacent bright
// fringes, Lλ/d.
func FringeSpacing(g components.Geometry) float64 {
	return g.ScreenDistance * g.Wavelength / g.SlitSeparation
}

// ModelProfile evaluates the model at each absolute coordinate in centers.
func ModelProfile(m Model, centers []float64) []float64 {
	out := make([]float64, len(centers))
	cy := m.Geometry().CenterY
	for i, c := range centers {
		out[i] = m.Intensity(c - cy)
	}
	return out
}

// LocalMaxima returns the indices of interior peaks whose prominence is at
// least minProminence times the largest value. Plateaus report their first bin.
func LocalMaxima(values []float64, minProminence float64) []int {
	if len(values) < 3 {
		return nil
	}
	threshold := minProminence * floats.Max(values)

	var peaks []int
	for i := 1; i < len(values)-1; i++ {
		v := values[i]
		if !(values[i-1] < v && v >= values[i+1]) {
			continue
		}
		if v <= 0 {
			continue
		}
		if v-max(valley(values, i, -1), valley(values, i, 1)) >= threshold {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

// valley returns the lowest value between peak i and the first higher value in
// direction dir, or the edge of the slice.
func valley(values []float64, i, dir int) float64 {
	lowest := values[i]
	for j := i + dir; j >= 0 && j < len(values); j += dir {
		if values[j] > values[i] {
			break
		}
		lowest = min(lowest, values[j])
	}
	return lowest
}

// Visibility returns the fringe contrast (Imax-Imin)/(Imax+Imin) between the
// tallest peak and its nearest neighboring peak. It is 0 with fewer than two
// peaks.
func Visibility(values []float64, peaks []int) float64 {
	if len(peaks) < 2 {
		return 0
	}
	top := 0
	for k, p := range peaks {
		if values[p] > values[peaks[top]] {
			top = k
		}
	}

	neighbor := -1
	for k, p := range peaks {
		if k == top {
			continue
		}
		if neighbor < 0 || abs(p-peaks[top]) < abs(peaks[neighbor]-peaks[top]) {
			neighbor = k
		}
	}

	lo, hi := peaks[top], peaks[neighbor]
	if lo > hi {
		lo, hi = hi, lo
	}
	imax := values[peaks[top]]
	imin := floats.Min(values[lo : hi+1])
	if imax+imin <= 0 {
		return 0
	}
	return (imax - imin) / (imax + imin)
}

// ProfileDistance returns the Hellinger distance between two non-negative
// profiles after normalizing each to unit mass. It returns 1 when either
// profile is empty.
func ProfileDistance(a, b []float64) float64 {
	sa, sb := floats.Sum(a), floats.Sum(b)
	if len(a) != len(b) || !(sa > 0) || !(sb > 0) {
		return 1
	}
	p := make([]float64, len(a))
	q := make([]float64, len(b))
	floats.ScaleTo(p, 1/sa, a)
	floats.ScaleTo(q, 1/sb, b)
	d := stat.Hellinger(p, q)
	if math.IsNaN(d) {
		// Rounding pushed the overlap past 1: identical profiles.
		return 0
	}
	return d
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
