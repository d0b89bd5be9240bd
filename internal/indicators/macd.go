package indicators

// MACDResult holds the three aligned MACD series.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes the MACD line (fast EMA minus slow EMA), its signal
// line (EMA of the MACD line) and the histogram (line minus signal).
// Standard parameters are 12/26/9.
func MACD(closes []float64, fast, slow, signal int) MACDResult {
	n := len(closes)
	res := MACDResult{
		Line:      nanSeries(n),
		Signal:    nanSeries(n),
		Histogram: nanSeries(n),
	}

	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)
	for i := 0; i < n; i++ {
		if Valid(fastEMA[i], slowEMA[i]) {
			res.Line[i] = fastEMA[i] - slowEMA[i]
		}
	}

	res.Signal = emaFrom(res.Line, signal)
	for i := 0; i < n; i++ {
		if Valid(res.Line[i], res.Signal[i]) {
			res.Histogram[i] = res.Line[i] - res.Signal[i]
		}
	}
	return res
}
