package indicators

import "math"

// TrueRange computes the true range series. The first bar has no
// previous close, so its true range is simply high minus low.
func TrueRange(highs, lows, closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		hl := highs[i] - lows[i]
		if i == 0 {
			out[i] = hl
			continue
		}
		prev := closes[i-1]
		hc := math.Abs(highs[i] - prev)
		lc := math.Abs(lows[i] - prev)
		out[i] = math.Max(hl, math.Max(hc, lc))
	}
	return out
}

// ATR computes the average true range with Wilder smoothing: the
// recursion is seeded with the simple mean of the first period true
// ranges and then updated as ATR = (prev*(period-1) + TR) / period.
// The first period-1 positions are NaN.
func ATR(highs, lows, closes []float64, period int) []float64 {
	out := nanSeries(len(closes))
	if period <= 0 || len(closes) < period {
		return out
	}

	tr := TrueRange(highs, lows, closes)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += tr[i]
	}
	prev := sum / float64(period)
	out[period-1] = prev

	n := float64(period)
	for i := period; i < len(tr); i++ {
		prev = (prev*(n-1) + tr[i]) / n
		out[i] = prev
	}
	return out
}
