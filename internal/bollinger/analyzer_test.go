package bollinger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatCloses(n int, price float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}
	return out
}

func TestAnalyze_InsufficientData(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	// period + 2 bars is below the period + 5 minimum.
	sig := a.Analyze(flatCloses(22, 100), nil, nil, nil)
	require.NotNil(t, sig)
	assert.Equal(t, Hold, sig.Type)
	assert.Equal(t, 0.0, sig.Confidence)
	assert.Equal(t, []string{"Insufficient data"}, sig.Reasons)
}

func TestAnalyze_HoldOnQuietMarket(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	sig := a.Analyze(flatCloses(40, 100), nil, nil, nil)
	assert.Equal(t, Hold, sig.Type)
	assert.Equal(t, 5, sig.Strength)
	assert.Equal(t, 0.5, sig.Confidence)
	assert.Equal(t, PositionMidRange, sig.PricePosition)
	assert.Equal(t, VolatilityNormal, sig.VolatilityState)
}

func TestAnalyze_BounceBuyAtLowerBand(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	// Calm market, then a sharp two-bar drop through the lower band.
	closes := flatCloses(32, 100)
	closes[30] = 98
	closes[31] = 95

	sig := a.Analyze(closes, nil, nil, nil)
	assert.Equal(t, BounceBuy, sig.Type)
	assert.GreaterOrEqual(t, sig.Strength, 5)
	assert.LessOrEqual(t, sig.Strength, 9)
	require.NotNil(t, sig.StopLoss)
	require.NotNil(t, sig.TakeProfit)
	// Target is the middle band, above the entry after a deep flush.
	assert.Greater(t, *sig.TakeProfit, sig.EntryPrice)
	assert.Equal(t, PositionBelowLower, sig.PricePosition)
}

func TestAnalyze_SqueezeBreakUp(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	// Volatile opening stretch, long contraction, then a +2% push over
	// the last three bars while band width is still at its minimum.
	closes := make([]float64, 40)
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			closes[i] = 95
		} else {
			closes[i] = 105
		}
	}
	for i := 20; i < 37; i++ {
		closes[i] = 100
	}
	closes[37] = 100.7
	closes[38] = 101.4
	closes[39] = 102.0

	volRatio := flatCloses(40, 1.0)
	volRatio[39] = 1.6

	sig := a.Analyze(closes, nil, nil, volRatio)
	assert.Equal(t, SqueezeBreakUp, sig.Type)
	assert.Equal(t, 8, sig.Strength) // 6 base + 2 volume boost, capped at 9
	assert.LessOrEqual(t, sig.Strength, 9)
	assert.InDelta(t, 0.85, sig.Confidence, 1e-9)
	require.NotNil(t, sig.TakeProfit)
	assert.InDelta(t, 102.0*1.05, *sig.TakeProfit, 1e-9)
	require.NotNil(t, sig.StopLoss)
	assert.Less(t, *sig.StopLoss, sig.EntryPrice)
}

func TestAnalyze_WalkUpInStrongTrend(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	closes := make([]float64, 45)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		closes[i] = closes[i-1] * 1.01
	}

	sig := a.Analyze(closes, nil, nil, nil)
	assert.Equal(t, WalkUp, sig.Type)
	assert.Equal(t, 7, sig.Strength)
	assert.Nil(t, sig.TakeProfit, "band walking is trend-following, no fixed target")
	require.NotNil(t, sig.StopLoss)
	assert.Less(t, *sig.StopLoss, sig.EntryPrice)
	assert.Equal(t, PositionNearUpper, sig.PricePosition)
}

func TestAnalyze_WalkDownInStrongDowntrend(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	closes := make([]float64, 45)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		closes[i] = closes[i-1] * 0.99
	}

	sig := a.Analyze(closes, nil, nil, nil)
	assert.Equal(t, WalkDown, sig.Type)
	require.NotNil(t, sig.StopLoss)
	assert.Greater(t, *sig.StopLoss, sig.EntryPrice)
}

func TestPickBest_TieKeepsEvaluationOrder(t *testing.T) {
	bounce := &Signal{Type: BounceBuy, Strength: 6, Confidence: 0.8}
	squeeze := &Signal{Type: SqueezeBreakUp, Strength: 8, Confidence: 0.6}
	// Scores tie exactly at 4.8; the earlier candidate must win.
	best := pickBest([]*Signal{bounce, squeeze})
	assert.Equal(t, BounceBuy, best.Type)

	// A strictly higher score still wins regardless of order.
	walk := &Signal{Type: WalkUp, Strength: 7, Confidence: 0.9}
	best = pickBest([]*Signal{bounce, squeeze, walk})
	assert.Equal(t, WalkUp, best.Type)
}

func TestPickBest_ClampsRanges(t *testing.T) {
	over := &Signal{Type: SqueezeBreakUp, Strength: 12, Confidence: 1.4}

	best := pickBest([]*Signal{over})
	assert.Equal(t, 9, best.Strength)
	assert.Equal(t, 1.0, best.Confidence)
}

func TestSignalType_Strings(t *testing.T) {
	assert.Equal(t, "BOUNCE_BUY", BounceBuy.String())
	assert.Equal(t, "SQUEEZE_BREAK_DOWN", SqueezeBreakDown.String())
	assert.Equal(t, "WALK_UP", WalkUp.String())
	assert.Equal(t, "HOLD", Hold.String())

	assert.True(t, BounceBuy.IsBuy())
	assert.True(t, WalkDown.IsSell())
	assert.False(t, Hold.IsBuy())
	assert.False(t, Hold.IsSell())
}

func TestAnalyze_ConfigDefaults(t *testing.T) {
	a := NewAnalyzer(Config{})
	assert.Equal(t, 20, a.cfg.Period)
	assert.Equal(t, 2.0, a.cfg.StdDev)
	assert.Equal(t, 20, a.cfg.SqueezeWindow)
}
