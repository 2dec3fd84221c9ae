package systems

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Buffer is the detector's accumulation buffer: N bins spanning the screen's
// transverse extent. Values never go negative.
type Buffer struct {
	values  []float64
	centers []float64 // absolute transverse coordinate of each bin center
	scratch []float64

	lo, hi           float64
	increment        float64
	neighborFraction float64
}

// NewBuffer creates a buffer of n bins over [lo, hi]. A hit adds increment to
// its bin and increment*neighborFraction to each adjacent bin.
func NewBuffer(n int, lo, hi, increment, neighborFraction float64) *Buffer {
	if n < 2 {
		n = 2
	}
	b := &Buffer{
		values:           make([]float64, n),
		centers:          make([]float64, n),
		scratch:          make([]float64, n),
		lo:               lo,
		hi:               hi,
		increment:        increment,
		neighborFraction: neighborFraction,
	}
	w := (hi - lo) / float64(n)
	floats.Span(b.centers, lo+w/2, hi-w/2)
	return b
}

// Len returns the number of bins.
func (b *Buffer) Len() int { return len(b.values) }

// BinWidth returns the transverse width of one bin.
func (b *Buffer) BinWidth() float64 { return (b.hi - b.lo) / float64(len(b.values)) }

// Increment returns the amount one hit adds to its bin.
func (b *Buffer) Increment() float64 { return b.increment }

// SetIncrement changes the per-hit amount. Bins already filled keep their
// values.
func (b *Buffer) SetIncrement(v float64) { b.increment = v }

// BinCenter returns the transverse coordinate of bin i.
func (b *Buffer) BinCenter(i int) float64 { return b.centers[i] }

// Centers returns the bin centers. The slice must not be modified.
func (b *Buffer) Centers() []float64 { return b.centers }

// Index maps y to the nearest bin, clamped to the buffer bounds.
func (b *Buffer) Index(y float64) int {
	i := int(math.Floor((y - b.lo) / b.BinWidth()))
	if i < 0 {
		return 0
	}
	if i >= len(b.values) {
		return len(b.values) - 1
	}
	return i
}

// RecordHit registers a discrete hit at y and returns the bin it landed in.
func (b *Buffer) RecordHit(y float64) int {
	i := b.Index(y)
	b.values[i] += b.increment
	if side := b.increment * b.neighborFraction; side > 0 {
		if i > 0 {
			b.values[i-1] += side
		}
		if i < len(b.values)-1 {
			b.values[i+1] += side
		}
	}
	return i
}

// Relax moves every bin toward scale*intensity(offset) by damping, where
// offset is the bin center relative to centerY.
func (b *Buffer) Relax(intensity func(float64) float64, centerY, scale, damping float64) {
	for i, c := range b.centers {
		b.scratch[i] = scale * intensity(c-centerY)
	}
	// scratch = target - value; value += damping * scratch
	floats.SubTo(b.scratch, b.scratch, b.values)
	floats.AddScaled(b.values, damping, b.scratch)
	for i, v := range b.values {
		if v < 0 {
			b.values[i] = 0
		}
	}
}

// Clear zeroes every bin.
func (b *Buffer) Clear() {
	for i := range b.values {
		b.values[i] = 0
	}
}

// Values returns a copy of the bin values.
func (b *Buffer) Values() []float64 {
	out := make([]float64, len(b.values))
	copy(out, b.values)
	return out
}

// Total returns the sum of all bins.
func (b *Buffer) Total() float64 { return floats.Sum(b.values) }

// Normalized returns the values scaled so the largest bin is 1.
// An empty buffer normalizes to all zeros.
func (b *Buffer) Normalized() []float64 {
	out := b.Values()
	if peak := floats.Max(out); peak > 0 {
		floats.Scale(1/peak, out)
	}
	return out
}

// Load replaces the bin values. Negative values are clamped to 0 and extra
// values are ignored.
func (b *Buffer) Load(values []float64) {
	b.Clear()
	for i, v := range values {
		if i >= len(b.values) {
			break
		}
		b.values[i] = max(v, 0)
	}
}
