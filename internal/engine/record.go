package engine

import (
	"time"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/bollinger"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/signal"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/txyzn"
)

// Strategy bases persisted in the strategy catalog. Each names the
// concrete rule or sub-strategy that fired.
const (
	BaseBreakout        = "BRK" // rule A
	BaseOversoldReclaim = "OSR" // rule B
	BaseBreakdown       = "BDN" // rule C
	BaseOverboughtTrim  = "OBT" // rule D
	BaseBounce          = "BNC" // Bollinger mean reversion
	BaseSqueeze         = "SQZ" // Bollinger squeeze breakout
	BaseWalk            = "WLK" // Bollinger band walking
	BaseHold            = "HLD"
)

// SignalRecord is the outbound record handed to the storage
// collaborator, one per symbol and evaluation run.
type SignalRecord struct {
	Symbol       string
	TxyznCode    string
	Side         string
	StrategyBase string
	Magnitude    int
	Confidence   float64
	Price        float64
	RSI14        float64
	EMA5         float64
	EMA20        float64
	EMA50        float64
	Volume       float64
	Timestamp    time.Time
	Reasons      []string
}

// ruleCoding maps a rule recommendation to its TXYZN side, base and
// default magnitude. Magnitudes bump by one on exceptional volume.
func ruleCoding(rec signal.Recommendation) (txyzn.Side, string, int) {
	switch rec {
	case signal.RecommendBuyBreakout:
		return txyzn.SideBuy, BaseBreakout, 7
	case signal.RecommendBuyReclaim:
		return txyzn.SideBuy, BaseOversoldReclaim, 6
	case signal.RecommendReduce:
		return txyzn.SideSell, BaseBreakdown, 7
	case signal.RecommendTrim:
		return txyzn.SideSell, BaseOverboughtTrim, 6
	default:
		return txyzn.SideHold, BaseHold, 5
	}
}

// bollingerCoding maps a Bollinger signal type to its TXYZN side and
// base; the magnitude is the signal's own strength.
func bollingerCoding(t bollinger.SignalType) (txyzn.Side, string) {
	base := BaseHold
	switch t {
	case bollinger.BounceBuy, bollinger.BounceSell:
		base = BaseBounce
	case bollinger.SqueezeBreakUp, bollinger.SqueezeBreakDown:
		base = BaseSqueeze
	case bollinger.WalkUp, bollinger.WalkDown:
		base = BaseWalk
	}
	switch {
	case t.IsBuy():
		return txyzn.SideBuy, base
	case t.IsSell():
		return txyzn.SideSell, base
	default:
		return txyzn.SideHold, base
	}
}
