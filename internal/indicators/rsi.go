package indicators

// Two RSI variants are kept on purpose. The batch variant smooths gains
// and losses with a rolling simple mean and leaves the value NaN when
// the average loss is zero, so callers decide what a one-sided window
// means. The realtime variant uses Wilder's exponential smoothing and
// substitutes a neutral 50 in the same situation. They are not
// interchangeable: downstream rules depend on the specific fallback.

// RSIBatch computes RSI with a rolling simple mean of gains and losses.
// out[i] is NaN for i < period and whenever the window's average loss
// is exactly zero.
func RSIBatch(closes []float64, period int) []float64 {
	out := nanSeries(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			continue
		}
		avgLoss := lossSum / float64(period)
		if avgLoss == 0 {
			continue // undefined, caller decides
		}
		avgGain := gainSum / float64(period)
		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// RSIRealtime computes RSI with Wilder's exponential smoothing of gains
// and losses, seeded with the simple mean of the first period deltas.
// A zero average loss yields the neutral value 50.
func RSIRealtime(closes []float64, period int) []float64 {
	out := nanSeries(len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	var gainSum, lossSum float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum -= delta
		}
	}
	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	n := float64(period)
	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*(n-1) + gain) / n
		avgLoss = (avgLoss*(n-1) + loss) / n
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 50 // neutral fill for the realtime variant
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
