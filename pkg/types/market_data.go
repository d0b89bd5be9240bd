package types

import (
	"fmt"
	"time"
)

// OHLCV is a single price bar for one symbol.
type OHLCV struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// Validate checks the structural bar invariants: the high must cover the
// body, the low must sit under it, and volume cannot be negative.
func (b OHLCV) Validate() error {
	if b.High < b.Open || b.High < b.Close {
		return fmt.Errorf("bar at %s: high %.4f below body", b.Timestamp.Format(time.RFC3339), b.High)
	}
	if b.Low > b.Open || b.Low > b.Close {
		return fmt.Errorf("bar at %s: low %.4f above body", b.Timestamp.Format(time.RFC3339), b.Low)
	}
	if b.Volume < 0 {
		return fmt.Errorf("bar at %s: negative volume %.2f", b.Timestamp.Format(time.RFC3339), b.Volume)
	}
	return nil
}

// PriceSeries is the chronological bar history for one symbol.
// It is constructed once per evaluation and treated as immutable.
type PriceSeries struct {
	Symbol string
	Bars   []OHLCV
}

// NewPriceSeries validates every bar and the chronological ordering
// before wrapping the slice. The slice is not copied; callers hand over
// ownership.
func NewPriceSeries(symbol string, bars []OHLCV) (*PriceSeries, error) {
	for i, b := range bars {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", symbol, err)
		}
		if i > 0 && !bars[i-1].Timestamp.Before(b.Timestamp) {
			return nil, fmt.Errorf("%s: bars out of order at index %d (%s >= %s)",
				symbol, i, bars[i-1].Timestamp.Format(time.RFC3339), b.Timestamp.Format(time.RFC3339))
		}
	}
	return &PriceSeries{Symbol: symbol, Bars: bars}, nil
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int {
	return len(s.Bars)
}

// Last returns the most recent bar. The second result is false on an
// empty series.
func (s *PriceSeries) Last() (OHLCV, bool) {
	if len(s.Bars) == 0 {
		return OHLCV{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Closes extracts the close column.
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Highs extracts the high column.
func (s *PriceSeries) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low column.
func (s *PriceSeries) Lows() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Low
	}
	return out
}

// Volumes extracts the volume column.
func (s *PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Volume
	}
	return out
}
