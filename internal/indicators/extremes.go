package indicators

// TradingDaysPerYear is the window used for 52-week extremes on daily
// bars.
const TradingDaysPerYear = 252

// High52Week computes the rolling 252-bar maximum of the highs. It is
// defined from the very first bar, using whatever history exists.
func High52Week(highs []float64) []float64 {
	return RollingMax(highs, TradingDaysPerYear, 1)
}

// Low52Week computes the rolling 252-bar minimum of the lows, defined
// from the first bar.
func Low52Week(lows []float64) []float64 {
	return RollingMin(lows, TradingDaysPerYear, 1)
}

// ROC computes the n-bar rate of change in percent:
// (close[t]/close[t-n] - 1) * 100. The first n positions are NaN, as is
// any position whose reference close is zero.
func ROC(closes []float64, n int) []float64 {
	out := nanSeries(len(closes))
	if n <= 0 {
		return out
	}
	for i := n; i < len(closes); i++ {
		ref := closes[i-n]
		if ref == 0 {
			continue
		}
		out[i] = (closes[i]/ref - 1) * 100
	}
	return out
}

// VolumeRatio computes volume divided by its rolling mean over the
// given period. Positions with an undefined or zero mean are NaN.
func VolumeRatio(volumes []float64, period int) []float64 {
	out := nanSeries(len(volumes))
	avg := SMA(volumes, period)
	for i := range volumes {
		if !Valid(avg[i]) || avg[i] == 0 {
			continue
		}
		out[i] = volumes[i] / avg[i]
	}
	return out
}
