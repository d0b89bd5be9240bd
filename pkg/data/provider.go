// Package data loads per-symbol OHLCV history for the scanner. The
// engine only sees PriceSeries; where the bars come from is a provider
// concern.
package data

import (
	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/types"
)

// HistoryProvider loads the full available history for one symbol.
type HistoryProvider interface {
	// History returns the symbol's bars in chronological order. A
	// malformed bar is a hard error, never silently skipped.
	History(symbol string) (*types.PriceSeries, error)

	// Name identifies the provider in logs.
	Name() string
}

// LoadWatchlist loads every symbol on the watchlist. It fails on the
// first symbol that cannot be loaded; a scan over partially loaded
// data would silently drop symbols.
func LoadWatchlist(p HistoryProvider, symbols []string) ([]*types.PriceSeries, error) {
	out := make([]*types.PriceSeries, 0, len(symbols))
	for _, sym := range symbols {
		series, err := p.History(sym)
		if err != nil {
			return nil, err
		}
		out = append(out, series)
	}
	return out, nil
}
