package signal

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/indicators"
	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/types"
)

func syntheticSeries(t *testing.T, symbol string, n int) *types.PriceSeries {
	t.Helper()
	bars := make([]types.OHLCV, n)
	base := time.Date(2026, 1, 5, 16, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		price := 100 + math.Sin(float64(i)/9)*8 + float64(i)*0.1
		bars[i] = types.OHLCV{
			Open:      price - 0.5,
			High:      price + 1.5,
			Low:       price - 1.5,
			Close:     price,
			Volume:    1000 + float64(i%7)*100,
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
		}
	}
	series, err := types.NewPriceSeries(symbol, bars)
	require.NoError(t, err)
	return series
}

func TestBuildSnapshot_FullHistory(t *testing.T) {
	series := syntheticSeries(t, "0700.HK", 120)

	snap, ok := BuildSnapshot(series)
	require.True(t, ok)

	assert.Equal(t, "0700.HK", snap.Symbol)
	last := series.Bars[119]
	assert.Equal(t, last.Close, snap.Close)
	assert.Equal(t, last.Timestamp, snap.Timestamp)

	assert.True(t, indicators.Valid(
		snap.RSI14, snap.RSI14Prev, snap.EMA5, snap.EMA20, snap.EMA50,
		snap.MACD, snap.MACDPrev, snap.MACDSignal, snap.ATR14,
		snap.High20, snap.Low20, snap.Vol20Avg))
	assert.True(t, indicators.Valid(snap.VolumeRatio()))

	prev := series.Bars[118]
	assert.Equal(t, prev.Open, snap.PrevOpen)
	assert.Equal(t, prev.Close, snap.PrevClose)
}

func TestBuildSnapshot_High20ExcludesCurrentBar(t *testing.T) {
	series := syntheticSeries(t, "0700.HK", 60)
	// Spike the final bar: the 20-bar high must not include it, so a
	// breakout of the current close remains detectable.
	bars := series.Bars
	bars[59].Close = 200
	bars[59].High = 205
	bars[59].Open = 199

	snap, ok := BuildSnapshot(series)
	require.True(t, ok)
	assert.Less(t, snap.High20, 200.0)
	assert.Greater(t, snap.Close, snap.High20)
}

func TestBuildSnapshot_ShortHistoryYieldsNaN(t *testing.T) {
	series := syntheticSeries(t, "0700.HK", 10)

	snap, ok := BuildSnapshot(series)
	require.True(t, ok)
	assert.False(t, indicators.Valid(snap.RSI14))
	assert.False(t, indicators.Valid(snap.EMA50))
	assert.False(t, indicators.Valid(snap.High20))

	// Rules must refuse to fire on the NaN snapshot.
	res := NewEvaluator().Evaluate(Input{Snapshot: snap})
	assert.Equal(t, RecommendHold, res.Recommendation)
	assert.False(t, res.A || res.B || res.C || res.D)
}

func TestBuildSnapshot_EmptySeries(t *testing.T) {
	series, err := types.NewPriceSeries("0700.HK", nil)
	require.NoError(t, err)

	_, ok := BuildSnapshot(series)
	assert.False(t, ok)
}

func TestBuildSnapshot_Deterministic(t *testing.T) {
	series := syntheticSeries(t, "0700.HK", 120)

	a, _ := BuildSnapshot(series)
	b, _ := BuildSnapshot(series)
	assert.Equal(t, a, b)
}
