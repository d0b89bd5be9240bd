// Package engine orchestrates one evaluation run: indicator snapshot,
// rule evaluation, Bollinger strategy analysis, and the merge into a
// single outbound signal record per symbol.
package engine

import (
	"math"
	"time"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/bollinger"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/errors"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/indicators"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/signal"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/txyzn"
	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/types"
)

// exceptional volume bumps a rule signal's magnitude by one
const volumeBumpRatio = 2.0

// Config wires the engine's collaborator inputs.
type Config struct {
	Rails     signal.Rails
	Bollinger bollinger.Config
	// VetoDates lists per-symbol manual veto dates; a symbol within
	// T-minus-2 of one has its buy rules suppressed.
	VetoDates map[string][]time.Time
	// VetoWindowDays defaults to 2.
	VetoWindowDays int
}

// Engine evaluates symbols. It is stateless between calls and safe for
// concurrent use across symbols.
type Engine struct {
	cfg       Config
	evaluator *signal.Evaluator
	analyzer  *bollinger.Analyzer
}

// New creates an engine with the default overlay registry.
func New(cfg Config) *Engine {
	if cfg.VetoWindowDays <= 0 {
		cfg.VetoWindowDays = 2
	}
	return &Engine{
		cfg:       cfg,
		evaluator: signal.NewEvaluator(),
		analyzer:  bollinger.NewAnalyzer(cfg.Bollinger),
	}
}

// EvaluateSymbol runs both evaluators over one symbol's history and
// merges the outcome into a single record. The rule engine leads; when
// it holds, a directional Bollinger signal fills the record instead.
func (e *Engine) EvaluateSymbol(series *types.PriceSeries, now time.Time) (*SignalRecord, error) {
	snap, ok := signal.BuildSnapshot(series)
	if !ok {
		return nil, errors.New(errors.ErrorCategoryData, "engine", "%s: empty price series", series.Symbol)
	}

	veto := signal.WithinVetoWindow(now, e.cfg.VetoDates[series.Symbol], e.cfg.VetoWindowDays)
	ruleRes := e.evaluator.Evaluate(signal.Input{
		Snapshot:      snap,
		Rails:         e.cfg.Rails.Get(series.Symbol),
		WithinVetoWin: veto,
	})

	bbSig := e.analyzer.Analyze(series.Closes(), series.Volumes(), nil, nil)

	rec := &SignalRecord{
		Symbol:    series.Symbol,
		Price:     snap.Price(),
		RSI14:     snap.RSI14,
		EMA5:      snap.EMA5,
		EMA20:     snap.EMA20,
		EMA50:     snap.EMA50,
		Volume:    snap.Volume,
		Timestamp: snap.Timestamp,
	}

	var side txyzn.Side
	var base string
	var magnitude int
	switch {
	case ruleRes.Recommendation != signal.RecommendHold:
		side, base, magnitude = ruleCoding(ruleRes.Recommendation)
		if vr := snap.VolumeRatio(); indicators.Valid(vr) && vr >= volumeBumpRatio && magnitude < 9 {
			magnitude++
		}
		rec.Confidence = float64(magnitude) / 9.0
		rec.Reasons = ruleRes.Reasons
	case bbSig.Type != bollinger.Hold:
		side, base = bollingerCoding(bbSig.Type)
		magnitude = bbSig.Strength
		rec.Confidence = bbSig.Confidence
		rec.Reasons = bbSig.Reasons
	default:
		side, base, magnitude = ruleCoding(signal.RecommendHold)
		rec.Confidence = bbSig.Confidence
		rec.Reasons = append(ruleRes.Reasons, bbSig.Reasons...)
	}

	code, err := txyzn.Encode(side, base, magnitude)
	if err != nil {
		return nil, err
	}
	rec.TxyznCode = string(code)
	rec.Side = side.String()
	rec.StrategyBase = base
	rec.Magnitude = magnitude

	sanitizeNaN(rec)
	return rec, nil
}

// sanitizeNaN zeroes indicator fields that never became defined, so the
// record can be persisted by drivers that reject NaN.
func sanitizeNaN(rec *SignalRecord) {
	for _, f := range []*float64{&rec.RSI14, &rec.EMA5, &rec.EMA20, &rec.EMA50} {
		if math.IsNaN(*f) {
			*f = 0
		}
	}
}
