// Package indicators computes technical indicator series from OHLCV
// history. Every calculator returns a slice aligned with its input:
// output[i] belongs to bar i, and leading positions without enough
// history hold NaN. Callers must treat NaN as "not yet usable" rather
// than a numeric zero.
package indicators

import "math"

// NaN marks an indicator value that cannot be computed yet.
var NaN = math.NaN()

// Valid reports whether every value is a usable (non-NaN) number.
func Valid(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// nanSeries allocates a slice of the given length filled with NaN.
func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = NaN
	}
	return out
}

// Last returns the final value of a series, or NaN for an empty one.
func Last(series []float64) float64 {
	if len(series) == 0 {
		return NaN
	}
	return series[len(series)-1]
}

// At returns series[i], or NaN when i is out of range. Negative indexes
// count back from the end, so At(s, -2) is the value before the last.
func At(series []float64, i int) float64 {
	if i < 0 {
		i += len(series)
	}
	if i < 0 || i >= len(series) {
		return NaN
	}
	return series[i]
}
