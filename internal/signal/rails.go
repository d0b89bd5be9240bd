package signal

import "time"

// AddZone is a price band inside which adding to a position is allowed.
type AddZone struct {
	Low  float64
	High float64
}

// Contains reports whether a price lies inside the zone, inclusive.
func (z AddZone) Contains(price float64) bool {
	return price >= z.Low && price <= z.High
}

// RailsConfig holds the optional per-symbol thresholds that gate or
// narrow rule firing. A nil field disables the corresponding overlay or
// rule: rule D, for instance, is simply false for a symbol with neither
// TargetSell nor TrimMin configured.
type RailsConfig struct {
	TargetSell   *float64
	Stop         *float64
	TrimMin      *float64
	AddZone      *AddZone
	TacticalStop *float64
	// TrimFloor is the absolute price floor below which overbought
	// trims are vetoed for symbols whose overlay checks it.
	TrimFloor *float64
}

// TrimTarget returns the price that arms rule D: TargetSell when
// configured, TrimMin as the fallback. The second result is false when
// neither threshold exists.
func (r RailsConfig) TrimTarget() (float64, bool) {
	if r.TargetSell != nil {
		return *r.TargetSell, true
	}
	if r.TrimMin != nil {
		return *r.TrimMin, true
	}
	return 0, false
}

// Rails maps symbol to its configured thresholds.
type Rails map[string]RailsConfig

// Get returns the rails for a symbol; missing symbols get an empty
// config, which disables every rails-gated rule.
func (r Rails) Get(symbol string) RailsConfig {
	if r == nil {
		return RailsConfig{}
	}
	return r[symbol]
}

// WithinVetoWindow reports whether now falls inside the T-minus-2
// window of any veto date: from two days before the date through the
// date itself, by calendar day. Each side is reduced to its own
// wall-clock date, so an HK-local now compares correctly against veto
// dates parsed in UTC.
func WithinVetoWindow(now time.Time, vetoDates []time.Time, days int) bool {
	day := calendarDay(now)
	for _, d := range vetoDates {
		vd := calendarDay(d)
		start := vd.AddDate(0, 0, -days)
		if !day.Before(start) && !day.After(vd) {
			return true
		}
	}
	return false
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
