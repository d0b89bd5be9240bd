package indicators

import "math"

// BollingerResult holds the aligned Bollinger Band series plus the two
// derived series the strategy layer consumes.
type BollingerResult struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
	// PercentB is the position of the close between the bands:
	// 0 at the lower band, 1 at the upper, 0.5 when the bands collapse.
	PercentB []float64
	// BandWidth is (upper-lower)/middle, 0 when middle is 0.
	BandWidth []float64
}

// Bollinger computes Bollinger Bands with an SMA middle band and a
// population standard deviation over the same window.
func Bollinger(closes []float64, period int, stdDev float64) BollingerResult {
	n := len(closes)
	res := BollingerResult{
		Upper:     nanSeries(n),
		Middle:    SMA(closes, period),
		Lower:     nanSeries(n),
		PercentB:  nanSeries(n),
		BandWidth: nanSeries(n),
	}
	if period <= 0 || n < period {
		return res
	}

	var sum, sumSq float64
	for i, v := range closes {
		sum += v
		sumSq += v * v
		if i >= period {
			old := closes[i-period]
			sum -= old
			sumSq -= old * old
		}
		if i < period-1 {
			continue
		}

		mean := sum / float64(period)
		variance := sumSq/float64(period) - mean*mean
		if variance < 0 {
			variance = 0 // numeric noise on flat windows
		}
		sd := math.Sqrt(variance)

		res.Upper[i] = mean + stdDev*sd
		res.Lower[i] = mean - stdDev*sd
		res.PercentB[i] = PercentB(closes[i], res.Upper[i], res.Lower[i])

		if mean == 0 {
			res.BandWidth[i] = 0
		} else {
			res.BandWidth[i] = (res.Upper[i] - res.Lower[i]) / mean
		}
	}
	return res
}

// PercentB computes the %B position of a price between two bands,
// returning the neutral 0.5 when the bands have collapsed.
func PercentB(price, upper, lower float64) float64 {
	width := upper - lower
	if width == 0 {
		return 0.5
	}
	return (price - lower) / width
}
