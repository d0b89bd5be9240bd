package signal

import (
	"math"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/indicators"
)

// Overlay narrows the base rule result for one symbol. Overlays may
// only clear flags or append reasons; they never set a flag the base
// rules did not fire.
type Overlay func(s Snapshot, rails RailsConfig, res *Result)

// OverlayRegistry maps symbols to their overlay. Modelling the symbol
// special cases as a registry keeps each one independently testable and
// lets new symbols be added without touching the evaluator.
type OverlayRegistry struct {
	overlays map[string]Overlay
}

// NewOverlayRegistry creates an empty registry.
func NewOverlayRegistry() *OverlayRegistry {
	return &OverlayRegistry{overlays: make(map[string]Overlay)}
}

// Register installs an overlay for a symbol, replacing any existing
// one.
func (r *OverlayRegistry) Register(symbol string, ov Overlay) {
	r.overlays[symbol] = ov
}

// Apply runs the overlay registered for the snapshot's symbol, if any.
func (r *OverlayRegistry) Apply(s Snapshot, rails RailsConfig, res *Result) {
	if ov, ok := r.overlays[s.Symbol]; ok {
		ov(s, rails, res)
	}
}

// DefaultOverlays returns the registry with the built-in per-symbol
// restrictions.
func DefaultOverlays() *OverlayRegistry {
	r := NewOverlayRegistry()
	r.Register("0700.HK", overlayGapConfirm)
	r.Register("9988.HK", overlayAddZoneAndFloor)
	r.Register("0388.HK", overlayTrendGate)
	r.Register("0005.HK", overlayEMACluster)
	return r
}

// overlayGapConfirm — 0700.HK: reclaim buys need an out-of-band gap
// check confirmed by an external signal. Until that signal is wired in
// the restriction is a no-op; the flag passes through unchanged.
func overlayGapConfirm(s Snapshot, rails RailsConfig, res *Result) {
	// TODO: wire the external gap-confirmation feed and veto B when it
	// is absent.
}

// overlayAddZoneAndFloor — 9988.HK: reclaim buys only inside the
// configured add-zone, trims only at or above the configured floor.
// Like the floor, an absent zone disables its check rather than
// blocking the flag.
func overlayAddZoneAndFloor(s Snapshot, rails RailsConfig, res *Result) {
	if res.B && rails.AddZone != nil && !rails.AddZone.Contains(s.Price()) {
		res.B = false
		res.addReason("overlay %s: B vetoed, price %.2f outside add zone", s.Symbol, s.Price())
	}
	if res.D && rails.TrimFloor != nil && s.Price() < *rails.TrimFloor {
		res.D = false
		res.addReason("overlay %s: D vetoed, price %.2f below trim floor %.2f", s.Symbol, s.Price(), *rails.TrimFloor)
	}
}

// overlayTrendGate — 0388.HK: no buys of either kind below EMA20.
func overlayTrendGate(s Snapshot, rails RailsConfig, res *Result) {
	if !indicators.Valid(s.EMA20) {
		return
	}
	if (res.A || res.B) && s.Price() < s.EMA20 {
		res.A = false
		res.B = false
		res.addReason("overlay %s: buys vetoed below EMA20 %.2f", s.Symbol, s.EMA20)
	}
}

// overlayEMACluster — 0005.HK: reclaim buys only when price sits within
// 1% of the EMA20/EMA50 cluster.
func overlayEMACluster(s Snapshot, rails RailsConfig, res *Result) {
	if !res.B {
		return
	}
	if !indicators.Valid(s.EMA20, s.EMA50) {
		res.B = false
		res.addReason("overlay %s: B vetoed, EMA cluster undefined", s.Symbol)
		return
	}
	low := math.Min(s.EMA20, s.EMA50) * 0.99
	high := math.Max(s.EMA20, s.EMA50) * 1.01
	if s.Price() < low || s.Price() > high {
		res.B = false
		res.addReason("overlay %s: B vetoed, price %.2f outside EMA cluster [%.2f, %.2f]",
			s.Symbol, s.Price(), low, high)
	}
}
