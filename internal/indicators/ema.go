package indicators

// EMA computes the exponential moving average with the standard weight
// alpha = 2/(period+1). The recursion is seeded with the SMA of the
// first period values, so the first period-1 positions are NaN.
func EMA(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	alpha := 2.0 / float64(period+1)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	prev := sum / float64(period)
	out[period-1] = prev

	for i := period; i < len(values); i++ {
		prev = values[i]*alpha + prev*(1-alpha)
		out[i] = prev
	}
	return out
}

// emaFrom runs the EMA recursion over a series that may begin with NaN
// values (such as a MACD line). The recursion starts once period
// defined values exist, seeded with their mean.
func emaFrom(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 {
		return out
	}

	start := -1
	for i, v := range values {
		if Valid(v) {
			start = i
			break
		}
	}
	if start < 0 || len(values)-start < period {
		return out
	}

	alpha := 2.0 / float64(period+1)

	sum := 0.0
	for i := start; i < start+period; i++ {
		sum += values[i]
	}
	prev := sum / float64(period)
	out[start+period-1] = prev

	for i := start + period; i < len(values); i++ {
		prev = values[i]*alpha + prev*(1-alpha)
		out[i] = prev
	}
	return out
}
