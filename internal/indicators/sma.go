package indicators

// SMA computes the simple moving average over the given period.
// The first period-1 positions are NaN.
func SMA(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// RollingMax computes the maximum over a trailing window. With
// minPeriods < period, values are defined as soon as minPeriods bars
// exist, using whatever history is available.
func RollingMax(values []float64, period, minPeriods int) []float64 {
	out := nanSeries(len(values))
	for i := range values {
		start := i - period + 1
		if start < 0 {
			start = 0
		}
		if i-start+1 < minPeriods {
			continue
		}
		max := values[start]
		for j := start + 1; j <= i; j++ {
			if values[j] > max {
				max = values[j]
			}
		}
		out[i] = max
	}
	return out
}

// RollingMin computes the minimum over a trailing window, with the same
// minPeriods semantics as RollingMax.
func RollingMin(values []float64, period, minPeriods int) []float64 {
	out := nanSeries(len(values))
	for i := range values {
		start := i - period + 1
		if start < 0 {
			start = 0
		}
		if i-start+1 < minPeriods {
			continue
		}
		min := values[start]
		for j := start + 1; j <= i; j++ {
			if values[j] < min {
				min = values[j]
			}
		}
		out[i] = min
	}
	return out
}
