// Package signal implements the rule-based A/B/C/D evaluator that turns
// an indicator snapshot plus per-symbol rails into a single
// recommendation.
package signal

import (
	"time"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/indicators"
	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/types"
)

// Snapshot is the immutable per-bar indicator view the rule evaluator
// consumes. Values without enough history are NaN; rules that need them
// simply do not fire.
type Snapshot struct {
	Symbol    string
	Timestamp time.Time

	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64

	RSI14      float64
	RSI14Prev  float64
	EMA5       float64
	EMA20      float64
	EMA50      float64
	MACD       float64
	MACDPrev   float64
	MACDSignal float64
	ATR14      float64

	// High20 and Low20 are the 20-bar extremes ending at the previous
	// bar, so a breakout of the current close against them is
	// detectable.
	High20 float64
	Low20  float64

	Vol20Avg float64

	// Previous bar body, for engulfing detection.
	PrevOpen  float64
	PrevClose float64
}

// Price returns the evaluation price, which is the bar close.
func (s Snapshot) Price() float64 {
	return s.Close
}

// VolumeRatio returns volume relative to its 20-bar average, or NaN
// when the average is undefined or zero.
func (s Snapshot) VolumeRatio() float64 {
	if !indicators.Valid(s.Vol20Avg) || s.Vol20Avg == 0 {
		return indicators.NaN
	}
	return s.Volume / s.Vol20Avg
}

// BuildSnapshot computes every indicator the rule set needs for the
// latest bar of the series. The series is read once and never mutated,
// so concurrent builds over different symbols are safe.
func BuildSnapshot(series *types.PriceSeries) (Snapshot, bool) {
	last, ok := series.Last()
	if !ok {
		return Snapshot{}, false
	}

	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()

	rsi := indicators.RSIRealtime(closes, 14)
	macd := indicators.MACD(closes, 12, 26, 9)
	high20 := indicators.RollingMax(highs, 20, 20)
	low20 := indicators.RollingMin(lows, 20, 20)

	snap := Snapshot{
		Symbol:    series.Symbol,
		Timestamp: last.Timestamp,
		Open:      last.Open,
		High:      last.High,
		Low:       last.Low,
		Close:     last.Close,
		Volume:    last.Volume,

		RSI14:      indicators.Last(rsi),
		RSI14Prev:  indicators.At(rsi, -2),
		EMA5:       indicators.Last(indicators.EMA(closes, 5)),
		EMA20:      indicators.Last(indicators.EMA(closes, 20)),
		EMA50:      indicators.Last(indicators.EMA(closes, 50)),
		MACD:       indicators.Last(macd.Line),
		MACDPrev:   indicators.At(macd.Line, -2),
		MACDSignal: indicators.Last(macd.Signal),
		ATR14:      indicators.Last(indicators.ATR(highs, lows, closes, 14)),
		High20:     indicators.At(high20, -2),
		Low20:      indicators.At(low20, -2),
		Vol20Avg:   indicators.Last(indicators.SMA(volumes, 20)),

		PrevOpen:  indicators.NaN,
		PrevClose: indicators.NaN,
	}

	if series.Len() >= 2 {
		prev := series.Bars[series.Len()-2]
		snap.PrevOpen = prev.Open
		snap.PrevClose = prev.Close
	}
	return snap, true
}
