package bollinger

import (
	"fmt"
	"math"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/indicators"
)

// Config holds the analyzer tunables.
type Config struct {
	Period int
	StdDev float64
	// SqueezeWindow is the trailing window over which the current band
	// width must be the minimum to count as a squeeze.
	SqueezeWindow int
}

// DefaultConfig returns the standard 20-period, 2-sigma setup.
func DefaultConfig() Config {
	return Config{Period: 20, StdDev: 2.0, SqueezeWindow: 20}
}

// Analyzer evaluates the three Bollinger sub-strategies. It is
// stateless and safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer; zero config fields fall back to the
// defaults.
func NewAnalyzer(cfg Config) *Analyzer {
	def := DefaultConfig()
	if cfg.Period <= 0 {
		cfg.Period = def.Period
	}
	if cfg.StdDev <= 0 {
		cfg.StdDev = def.StdDev
	}
	if cfg.SqueezeWindow <= 0 {
		cfg.SqueezeWindow = def.SqueezeWindow
	}
	return &Analyzer{cfg: cfg}
}

// Analyze scores the sub-strategies over the close/volume history and
// returns exactly one signal. rsi and volRatio may be nil, in which
// case they are computed from the inputs (RSI 14, 20-bar volume mean).
func (a *Analyzer) Analyze(closes, volumes, rsi, volRatio []float64) *Signal {
	n := len(closes)
	if n < a.cfg.Period+5 {
		return &Signal{
			Type:            Hold,
			Strength:        1,
			Confidence:      0.0,
			PricePosition:   PositionMidRange,
			VolatilityState: VolatilityNormal,
			Reasons:         []string{"Insufficient data"},
			EntryPrice:      indicators.Last(closes),
		}
	}

	if rsi == nil {
		rsi = indicators.RSIRealtime(closes, 14)
	}
	if volRatio == nil && volumes != nil {
		volRatio = indicators.VolumeRatio(volumes, 20)
	}

	bands := indicators.Bollinger(closes, a.cfg.Period, a.cfg.StdDev)
	price := closes[n-1]
	prevClose := closes[n-2]
	upper := bands.Upper[n-1]
	middle := bands.Middle[n-1]
	lower := bands.Lower[n-1]
	pctB := bands.PercentB[n-1]
	rsiNow := indicators.Last(rsi)
	vrNow := indicators.Last(volRatio)

	squeeze := a.inSqueeze(bands.BandWidth)
	momentum := momentum3(closes)

	position := positionOf(pctB)
	volState := a.volatilityState(bands.BandWidth)

	var candidates []*Signal
	if c := a.bounce(price, prevClose, upper, middle, lower, pctB, rsiNow, vrNow); c != nil {
		candidates = append(candidates, c)
	}
	if squeeze {
		if c := a.squeezeBreak(price, upper, middle, lower, momentum, vrNow); c != nil {
			candidates = append(candidates, c)
		}
	}
	if c := a.bandWalk(bands.PercentB, price, upper, lower, rsiNow); c != nil {
		candidates = append(candidates, c)
	}

	best := pickBest(candidates)
	if best == nil {
		best = &Signal{
			Type:       Hold,
			Strength:   5,
			Confidence: 0.5,
			Reasons:    []string{"No Bollinger strategy conditions met"},
			EntryPrice: price,
		}
	}
	best.PricePosition = position
	best.VolatilityState = volState
	return best
}

// bounce is the mean-reversion sub-strategy: fade a tag of either band
// back toward the middle.
func (a *Analyzer) bounce(price, prevClose, upper, middle, lower, pctB, rsiNow, vrNow float64) *Signal {
	if !indicators.Valid(pctB) {
		return nil
	}

	switch {
	case pctB <= 0.2:
		sig := &Signal{
			Type:       BounceBuy,
			Strength:   5,
			Confidence: 0.6,
			EntryPrice: price,
			StopLoss:   fptr(lower * 0.995),
			TakeProfit: fptr(middle),
		}
		sig.addReason("Bounce: %%B %.2f at lower band", pctB)
		if indicators.Valid(rsiNow) {
			if rsiNow < 30 {
				sig.Strength += 2
				sig.Confidence += 0.15
				sig.addReason("RSI %.1f deeply oversold", rsiNow)
			} else if rsiNow < 40 {
				sig.Strength++
				sig.Confidence += 0.10
				sig.addReason("RSI %.1f oversold", rsiNow)
			}
		}
		if indicators.Valid(vrNow) && vrNow > 1.3 {
			sig.Strength++
			sig.Confidence += 0.10
			sig.addReason("Volume %.1fx average", vrNow)
		}
		if price > prevClose {
			sig.Confidence += 0.10
			sig.addReason("Close turning up")
		}
		return sig

	case pctB >= 0.8:
		sig := &Signal{
			Type:       BounceSell,
			Strength:   5,
			Confidence: 0.6,
			EntryPrice: price,
			StopLoss:   fptr(upper * 1.005),
			TakeProfit: fptr(middle),
		}
		sig.addReason("Bounce: %%B %.2f at upper band", pctB)
		if indicators.Valid(rsiNow) {
			if rsiNow > 70 {
				sig.Strength += 2
				sig.Confidence += 0.15
				sig.addReason("RSI %.1f deeply overbought", rsiNow)
			} else if rsiNow > 60 {
				sig.Strength++
				sig.Confidence += 0.10
				sig.addReason("RSI %.1f overbought", rsiNow)
			}
		}
		if indicators.Valid(vrNow) && vrNow > 1.3 {
			sig.Strength++
			sig.Confidence += 0.10
			sig.addReason("Volume %.1fx average", vrNow)
		}
		if price < prevClose {
			sig.Confidence += 0.10
			sig.addReason("Close turning down")
		}
		return sig
	}
	return nil
}

// squeezeBreak fires only while the bands are at their tightest: a
// directional break out of the squeeze with 3-bar momentum beyond 1%.
func (a *Analyzer) squeezeBreak(price, upper, middle, lower, momentum, vrNow float64) *Signal {
	if !indicators.Valid(middle, momentum) {
		return nil
	}

	base := &Signal{
		Strength:   6,
		Confidence: 0.7,
		EntryPrice: price,
	}
	if indicators.Valid(vrNow) && vrNow > 1.5 {
		base.Strength += 2
		base.Confidence += 0.15
		base.addReason("Breakout volume %.1fx average", vrNow)
	}

	switch {
	case price > middle && momentum > 0.01:
		base.Type = SqueezeBreakUp
		base.StopLoss = fptr(lower)
		base.TakeProfit = fptr(price * 1.05)
		base.addReason("Squeeze break up: momentum %+.1f%%", momentum*100)
		return base
	case price < middle && momentum < -0.01:
		base.Type = SqueezeBreakDown
		base.StopLoss = fptr(upper)
		base.TakeProfit = fptr(price * 0.95)
		base.addReason("Squeeze break down: momentum %+.1f%%", momentum*100)
		return base
	}
	return nil
}

// bandWalk is the trend sub-strategy: sustained closes hugging one band
// signal continuation, with the opposite band as the trailing stop and
// deliberately no fixed take-profit.
func (a *Analyzer) bandWalk(pctBSeries []float64, price, upper, lower, rsiNow float64) *Signal {
	if len(pctBSeries) < 10 {
		return nil
	}
	cur := indicators.Last(pctBSeries)
	if !indicators.Valid(cur) {
		return nil
	}

	high, low := 0, 0
	for i := len(pctBSeries) - 5; i < len(pctBSeries); i++ {
		v := pctBSeries[i]
		if !indicators.Valid(v) {
			continue
		}
		if v > 0.8 {
			high++
		}
		if v < 0.2 {
			low++
		}
	}

	switch {
	case high >= 3 && cur > 0.8:
		sig := &Signal{
			Type:       WalkUp,
			Strength:   7,
			Confidence: 0.8,
			EntryPrice: price,
			StopLoss:   fptr(lower),
		}
		sig.addReason("Band walk up: %d of last 5 bars above upper band zone", high)
		if indicators.Valid(rsiNow) && rsiNow < 80 {
			sig.Confidence += 0.10
			sig.addReason("RSI %.1f not yet exhausted", rsiNow)
		}
		return sig
	case low >= 3 && cur < 0.2:
		sig := &Signal{
			Type:       WalkDown,
			Strength:   7,
			Confidence: 0.8,
			EntryPrice: price,
			StopLoss:   fptr(upper),
		}
		sig.addReason("Band walk down: %d of last 5 bars below lower band zone", low)
		if indicators.Valid(rsiNow) && rsiNow > 20 {
			sig.Confidence += 0.10
			sig.addReason("RSI %.1f not yet exhausted", rsiNow)
		}
		return sig
	}
	return nil
}

// pickBest clamps every candidate and returns the one maximizing
// confidence x strength. Exact ties keep the earlier candidate, which
// preserves the bounce, squeeze, walk priority order.
func pickBest(candidates []*Signal) *Signal {
	var best *Signal
	for _, c := range candidates {
		clamp(c)
		if best == nil || c.Score() > best.Score() {
			best = c
		}
	}
	return best
}

// inSqueeze reports whether the current band width is the minimum of
// the trailing squeeze window.
func (a *Analyzer) inSqueeze(bandWidth []float64) bool {
	n := len(bandWidth)
	cur := indicators.At(bandWidth, -1)
	if !indicators.Valid(cur) {
		return false
	}
	start := n - a.cfg.SqueezeWindow
	if start < 0 {
		start = 0
	}
	for i := start; i < n; i++ {
		if indicators.Valid(bandWidth[i]) && bandWidth[i] < cur {
			return false
		}
	}
	return true
}

// volatilityState compares the current band width against its 20-bar
// average at a +-30% threshold.
func (a *Analyzer) volatilityState(bandWidth []float64) VolatilityState {
	n := len(bandWidth)
	cur := indicators.At(bandWidth, -1)
	if !indicators.Valid(cur) {
		return VolatilityNormal
	}
	start := n - 20
	if start < 0 {
		start = 0
	}
	sum, count := 0.0, 0
	for i := start; i < n; i++ {
		if indicators.Valid(bandWidth[i]) {
			sum += bandWidth[i]
			count++
		}
	}
	if count == 0 {
		return VolatilityNormal
	}
	avg := sum / float64(count)
	switch {
	case cur < avg*0.7:
		return VolatilitySqueeze
	case cur > avg*1.3:
		return VolatilityExpansion
	default:
		return VolatilityNormal
	}
}

func positionOf(pctB float64) PricePosition {
	switch {
	case !indicators.Valid(pctB):
		return PositionMidRange
	case pctB > 1.0:
		return PositionAboveUpper
	case pctB >= 0.8:
		return PositionNearUpper
	case pctB < 0.0:
		return PositionBelowLower
	case pctB <= 0.2:
		return PositionNearLower
	default:
		return PositionMidRange
	}
}

// momentum3 is the 3-bar close-to-close return.
func momentum3(closes []float64) float64 {
	n := len(closes)
	if n < 4 || closes[n-4] == 0 {
		return indicators.NaN
	}
	return closes[n-1]/closes[n-4] - 1
}

func clamp(s *Signal) {
	if s.Strength < 1 {
		s.Strength = 1
	}
	if s.Strength > 9 {
		s.Strength = 9
	}
	s.Confidence = math.Max(0.0, math.Min(1.0, s.Confidence))
}

func (s *Signal) addReason(format string, args ...interface{}) {
	s.Reasons = append(s.Reasons, fmt.Sprintf(format, args...))
}

func fptr(v float64) *float64 { return &v }
