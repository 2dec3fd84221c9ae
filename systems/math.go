package systems

import "math"

// clamp clamps v between minVal and maxVal.
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps v to the [0, 1] range.
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// gaussian returns the unnormalized bell exp(-(x-mu)²/2σ²), which peaks at 1.
func gaussian(x, mu, sigma float64) float64 {
	d := (x - mu) / sigma
	return math.Exp(-0.5 * d * d)
}

// sinc returns sin(x)/x with sinc(0) = 1 exactly.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}

// crossing returns the fraction of a step from a to b at which plane is
// reached, and whether the step reaches it at all.
func crossing(a, b, plane float64) (float64, bool) {
	if a >= plane || b < plane {
		return 0, false
	}
	return (plane - a) / (b - a), true
}
