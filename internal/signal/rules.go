package signal

import (
	"fmt"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/indicators"
)

// Evaluation thresholds for the four base rules. These are strategy
// constants, not tunables.
const (
	breakoutATRMargin  = 0.35
	breakoutRSIFloor   = 58.0
	breakoutVolRatio   = 1.5
	reclaimRSICross    = 32.0
	reclaimRSIFloor    = 36.0
	reclaimClosePos    = 0.70
	reclaimVolRatio    = 1.3
	breakdownRSICeil   = 42.0
	breakdownVolRatio  = 1.5
	trimRSIFloor       = 68.0
	trimPulldownMargin = 0.35
	trimVolRatio       = 1.3
)

// Recommendation is the single action derived from the rule flags.
type Recommendation int

const (
	RecommendHold Recommendation = iota
	RecommendBuyBreakout
	RecommendBuyReclaim
	RecommendTrim
	RecommendReduce
)

// String renders the recommendation the way it is persisted and shown.
func (r Recommendation) String() string {
	switch r {
	case RecommendBuyBreakout:
		return "BUY (A)"
	case RecommendBuyReclaim:
		return "BUY (B)"
	case RecommendTrim:
		return "TRIM (D)"
	case RecommendReduce:
		return "REDUCE (C)"
	default:
		return "HOLD"
	}
}

// Result carries the four independent rule flags, the human-readable
// reasons for every rule that fired, and the single recommendation
// derived by fixed priority.
type Result struct {
	A bool // breakout buy
	B bool // oversold reclaim buy
	C bool // breakdown sell/reduce
	D bool // overbought trim

	Reasons        []string
	Recommendation Recommendation
}

// Input bundles everything one evaluation needs. The veto-window flag
// is supplied by the caller; the calendar source behind it is not the
// evaluator's concern.
type Input struct {
	Snapshot      Snapshot
	Rails         RailsConfig
	WithinVetoWin bool
}

// Evaluator applies the A/B/C/D rule set and the per-symbol overlays.
// It holds no per-call state and is safe for concurrent use across
// symbols.
type Evaluator struct {
	overlays *OverlayRegistry
}

// NewEvaluator creates an evaluator with the default overlay registry.
func NewEvaluator() *Evaluator {
	return &Evaluator{overlays: DefaultOverlays()}
}

// NewEvaluatorWithOverlays creates an evaluator with a custom registry,
// used by overlay unit tests.
func NewEvaluatorWithOverlays(reg *OverlayRegistry) *Evaluator {
	return &Evaluator{overlays: reg}
}

// Evaluate runs the four base rules independently, applies the symbol
// overlay, and derives the recommendation with fixed priority
// C > D > A > B > HOLD. Rules with NaN inputs evaluate to false, never
// to an error.
func (e *Evaluator) Evaluate(in Input) Result {
	var res Result
	s := in.Snapshot

	res.A = e.ruleBreakout(s, in.WithinVetoWin, &res)
	res.B = e.ruleOversoldReclaim(s, in.WithinVetoWin, &res)
	res.C = e.ruleBreakdown(s, &res)
	res.D = e.ruleOverboughtTrim(s, in.Rails, &res)

	if e.overlays != nil {
		e.overlays.Apply(s, in.Rails, &res)
	}

	res.Recommendation = Recommend(res.A, res.B, res.C, res.D)
	return res
}

// Recommend derives the single recommendation from the rule flags with
// fixed priority C > D > A > B > HOLD.
func Recommend(a, b, c, d bool) Recommendation {
	switch {
	case c:
		return RecommendReduce
	case d:
		return RecommendTrim
	case a:
		return RecommendBuyBreakout
	case b:
		return RecommendBuyReclaim
	default:
		return RecommendHold
	}
}

// ruleBreakout — A: close clears the prior 20-bar high by an ATR margin
// with short-term trend, momentum and volume confirmation.
func (e *Evaluator) ruleBreakout(s Snapshot, veto bool, res *Result) bool {
	vr := s.VolumeRatio()
	if !indicators.Valid(s.EMA5, s.EMA20, s.High20, s.ATR14, s.RSI14, vr) {
		return false
	}
	if veto {
		return false
	}
	momentum := s.RSI14 >= breakoutRSIFloor ||
		(indicators.Valid(s.MACD, s.MACDPrev) && s.MACD > 0 && s.MACD > s.MACDPrev)
	fired := s.EMA5 > s.EMA20 &&
		s.Price() > s.High20+breakoutATRMargin*s.ATR14 &&
		momentum &&
		vr >= breakoutVolRatio
	if fired {
		res.addReason("A: close %.2f broke 20-bar high %.2f by %.2f ATR with %.1fx volume",
			s.Price(), s.High20, breakoutATRMargin, vr)
	}
	return fired
}

// ruleOversoldReclaim — B: RSI crosses back up through 32, price holds
// both short EMAs and the bar closes near its high on volume.
func (e *Evaluator) ruleOversoldReclaim(s Snapshot, veto bool, res *Result) bool {
	vr := s.VolumeRatio()
	if !indicators.Valid(s.RSI14, s.RSI14Prev, s.EMA5, s.EMA20, vr) {
		return false
	}
	if veto {
		return false
	}
	fired := s.RSI14Prev <= reclaimRSICross &&
		s.RSI14 >= reclaimRSICross &&
		s.RSI14 >= reclaimRSIFloor &&
		s.Price() >= s.EMA20 &&
		s.Price() >= s.EMA5 &&
		closePosition(s) >= reclaimClosePos &&
		vr >= reclaimVolRatio
	if fired {
		res.addReason("B: RSI reclaimed %.0f (%.1f -> %.1f), strong close with %.1fx volume",
			reclaimRSICross, s.RSI14Prev, s.RSI14, vr)
	}
	return fired
}

// ruleBreakdown — C: close loses EMA50 by an ATR margin while momentum
// deteriorates on volume.
func (e *Evaluator) ruleBreakdown(s Snapshot, res *Result) bool {
	vr := s.VolumeRatio()
	if !indicators.Valid(s.EMA50, s.ATR14, s.MACD, s.MACDPrev, s.RSI14, vr) {
		return false
	}
	fired := s.Price() < s.EMA50-breakoutATRMargin*s.ATR14 &&
		s.MACD < 0 &&
		s.MACD < s.MACDPrev &&
		s.RSI14 <= breakdownRSICeil &&
		vr >= breakdownVolRatio
	if fired {
		res.addReason("C: close %.2f lost EMA50 %.2f with falling MACD and %.1fx volume",
			s.Price(), s.EMA50, vr)
	}
	return fired
}

// ruleOverboughtTrim — D: price is at or past the configured trim
// target with an overbought RSI and a reversal sign (ATR pulldown from
// the high, or a bearish engulfing bar).
func (e *Evaluator) ruleOverboughtTrim(s Snapshot, rails RailsConfig, res *Result) bool {
	target, ok := rails.TrimTarget()
	if !ok {
		return false // no target configured, rule disabled for this symbol
	}
	vr := s.VolumeRatio()
	if !indicators.Valid(s.RSI14, s.ATR14, vr) {
		return false
	}
	reversal := s.High-s.Price() >= trimPulldownMargin*s.ATR14 || bearishEngulfing(s)
	fired := s.Price() >= target &&
		s.RSI14 >= trimRSIFloor &&
		reversal &&
		vr >= trimVolRatio
	if fired {
		res.addReason("D: close %.2f at trim target %.2f, RSI %.1f with reversal sign",
			s.Price(), target, s.RSI14)
	}
	return fired
}

// closePosition is where the close sits inside the bar's range:
// 1 at the high, 0 at the low, 0.5 on a zero-range bar.
func closePosition(s Snapshot) float64 {
	if s.High == s.Low {
		return 0.5
	}
	return (s.Close - s.Low) / (s.High - s.Low)
}

// bearishEngulfing reports whether the current red bar's body fully
// contains the previous green bar's body.
func bearishEngulfing(s Snapshot) bool {
	if !indicators.Valid(s.PrevOpen, s.PrevClose) {
		return false
	}
	prevGreen := s.PrevClose > s.PrevOpen
	curRed := s.Close < s.Open
	prevBodyHigh := s.PrevClose
	prevBodyLow := s.PrevOpen
	if prevBodyLow > prevBodyHigh {
		prevBodyHigh, prevBodyLow = prevBodyLow, prevBodyHigh
	}
	return prevGreen && curRed && s.Open >= prevBodyHigh && s.Close <= prevBodyLow
}

func (r *Result) addReason(format string, args ...interface{}) {
	r.Reasons = append(r.Reasons, fmt.Sprintf(format, args...))
}
