package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// reclaimSnapshot fires rule B for the given symbol before overlays.
func reclaimSnapshot(symbol string) Snapshot {
	return Snapshot{
		Symbol: symbol,
		Open:   96, High: 100, Low: 95, Close: 99.5, Volume: 1400,
		RSI14: 37, RSI14Prev: 30,
		EMA5: 99, EMA20: 98, EMA50: 97,
		MACD: -0.2, MACDPrev: -0.3, MACDSignal: -0.25,
		ATR14: 2, High20: 105, Low20: 94, Vol20Avg: 1000,
	}
}

func TestOverlay_9988_AddZoneVeto(t *testing.T) {
	ev := NewEvaluator()
	s := reclaimSnapshot("9988.HK")

	// Price outside the configured add zone: B forced false even
	// though the unrestricted conditions hold.
	rails := RailsConfig{AddZone: &AddZone{Low: 80, High: 90}}
	res := ev.Evaluate(Input{Snapshot: s, Rails: rails})
	assert.False(t, res.B)
	assert.Equal(t, RecommendHold, res.Recommendation)

	// Inside the zone the flag survives.
	rails = RailsConfig{AddZone: &AddZone{Low: 95, High: 105}}
	res = ev.Evaluate(Input{Snapshot: s, Rails: rails})
	assert.True(t, res.B)
}

func TestOverlay_9988_NoZoneConfiguredPassesThrough(t *testing.T) {
	ev := NewEvaluator()

	// No add_zone in the rails: the zone check is disabled and B
	// survives, matching the trim-floor behaviour.
	res := ev.Evaluate(Input{Snapshot: reclaimSnapshot("9988.HK")})
	assert.True(t, res.B)
	assert.Equal(t, RecommendBuyReclaim, res.Recommendation)
}

func TestOverlay_9988_TrimFloor(t *testing.T) {
	ev := NewEvaluator()
	s := Snapshot{
		Symbol: "9988.HK",
		Open:   132, High: 136, Low: 128, Close: 130, Volume: 1500,
		RSI14: 72, RSI14Prev: 70,
		EMA5: 128, EMA20: 126, EMA50: 120,
		MACD: 1.5, MACDPrev: 1.6, MACDSignal: 1.4,
		ATR14: 4, High20: 133, Low20: 118, Vol20Avg: 1000,
	}
	rails := RailsConfig{TargetSell: fptr(129.0), TrimFloor: fptr(132.0)}

	res := ev.Evaluate(Input{Snapshot: s, Rails: rails})
	assert.False(t, res.D, "trim below the floor must be vetoed")

	s.Close = 133
	s.High = 136 // keep the ATR pulldown reversal sign
	res = ev.Evaluate(Input{Snapshot: s, Rails: rails})
	assert.True(t, res.D)
}

func TestOverlay_0388_BuysVetoedBelowEMA20(t *testing.T) {
	ev := NewEvaluator()

	// Rule A fires on its own terms, but price sits below EMA20, which
	// the 0388 overlay does not tolerate for buys.
	a := breakoutSnapshot()
	a.Symbol = "0388.HK"
	a.EMA20 = 115
	a.EMA5 = 116

	res := ev.Evaluate(Input{Snapshot: a})
	assert.True(t, a.EMA5 > a.EMA20)
	assert.False(t, res.A, "A vetoed when price is below EMA20")
}

func TestOverlay_0005_EMACluster(t *testing.T) {
	ev := NewEvaluator()
	s := reclaimSnapshot("0005.HK")
	s.EMA20 = 98
	s.EMA50 = 97

	// Cluster band is [97*0.99, 98*1.01] = [96.03, 98.98]; price 99.5
	// sits above it, so B is vetoed.
	res := ev.Evaluate(Input{Snapshot: s})
	assert.False(t, res.B)

	// Bring price into the cluster band.
	s.Close = 98.5
	s.EMA5 = 98.2 // keep price >= EMA5
	res = ev.Evaluate(Input{Snapshot: s})
	assert.True(t, res.B)
}

func TestOverlay_0700_GapCheckIsNoOp(t *testing.T) {
	ev := NewEvaluator()

	res := ev.Evaluate(Input{Snapshot: reclaimSnapshot("0700.HK")})
	assert.True(t, res.B, "gap restriction passes through until the external signal exists")
}

func TestOverlay_UnknownSymbolUntouched(t *testing.T) {
	ev := NewEvaluator()

	res := ev.Evaluate(Input{Snapshot: reclaimSnapshot("2318.HK")})
	assert.True(t, res.B)
}

func TestOverlay_NeverSetsFlags(t *testing.T) {
	// A snapshot that fires nothing must still fire nothing after every
	// registered overlay runs.
	for _, symbol := range []string{"0700.HK", "9988.HK", "0388.HK", "0005.HK"} {
		ev := NewEvaluator()
		s := Snapshot{Symbol: symbol, Open: 100, High: 101, Low: 99, Close: 100, Volume: 100,
			RSI14: 50, RSI14Prev: 50, EMA5: 100, EMA20: 100, EMA50: 100,
			MACD: 0, MACDPrev: 0, MACDSignal: 0, ATR14: 1,
			High20: 105, Low20: 95, Vol20Avg: 100}

		res := ev.Evaluate(Input{Snapshot: s, Rails: RailsConfig{AddZone: &AddZone{Low: 0, High: 1000}}})
		assert.False(t, res.A, symbol)
		assert.False(t, res.B, symbol)
		assert.False(t, res.C, symbol)
		assert.False(t, res.D, symbol)
	}
}

func TestOverlayRegistry_CustomRegistration(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.Register("1299.HK", func(s Snapshot, rails RailsConfig, res *Result) {
		res.A = false
	})
	ev := NewEvaluatorWithOverlays(reg)

	res := ev.Evaluate(Input{Snapshot: breakoutSnapshot()})
	assert.False(t, res.A)
}
