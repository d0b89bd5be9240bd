// Package bollinger is an independent Bollinger Band strategy analyzer.
// It computes its own bands and scores three sub-strategies — bounce
// (mean reversion), squeeze breakout, and band walking (trend) —
// returning the strongest candidate or a HOLD.
package bollinger

// SignalType is the closed set of outcomes the analyzer can produce.
type SignalType int

const (
	Hold SignalType = iota
	BounceBuy
	BounceSell
	SqueezeBreakUp
	SqueezeBreakDown
	WalkUp
	WalkDown
)

// String returns the canonical name of the signal type.
func (t SignalType) String() string {
	switch t {
	case BounceBuy:
		return "BOUNCE_BUY"
	case BounceSell:
		return "BOUNCE_SELL"
	case SqueezeBreakUp:
		return "SQUEEZE_BREAK_UP"
	case SqueezeBreakDown:
		return "SQUEEZE_BREAK_DOWN"
	case WalkUp:
		return "WALK_UP"
	case WalkDown:
		return "WALK_DOWN"
	default:
		return "HOLD"
	}
}

// IsBuy reports whether the signal recommends entering long.
func (t SignalType) IsBuy() bool {
	return t == BounceBuy || t == SqueezeBreakUp || t == WalkUp
}

// IsSell reports whether the signal recommends exiting or shorting.
func (t SignalType) IsSell() bool {
	return t == BounceSell || t == SqueezeBreakDown || t == WalkDown
}

// PricePosition labels where the close sits relative to the bands.
type PricePosition string

const (
	PositionAboveUpper PricePosition = "ABOVE_UPPER"
	PositionNearUpper  PricePosition = "NEAR_UPPER"
	PositionMidRange   PricePosition = "MID_RANGE"
	PositionNearLower  PricePosition = "NEAR_LOWER"
	PositionBelowLower PricePosition = "BELOW_LOWER"
)

// VolatilityState labels the current band width against its recent
// average.
type VolatilityState string

const (
	VolatilitySqueeze   VolatilityState = "SQUEEZE"
	VolatilityNormal    VolatilityState = "NORMAL"
	VolatilityExpansion VolatilityState = "EXPANSION"
)

// Signal is the analyzer's result. Strength is 1..9 and Confidence is
// 0..1; StopLoss and TakeProfit are nil when the sub-strategy does not
// define them (band walking deliberately has no fixed take-profit).
type Signal struct {
	Type            SignalType
	Strength        int
	Confidence      float64
	PricePosition   PricePosition
	VolatilityState VolatilityState
	Reasons         []string
	EntryPrice      float64
	StopLoss        *float64
	TakeProfit      *float64
}

// Score is the selection key: confidence times strength.
func (s *Signal) Score() float64 {
	return s.Confidence * float64(s.Strength)
}
