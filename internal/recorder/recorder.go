// Package recorder persists scan output. One trading_signals row per
// symbol per run; the strategy_catalog table maps strategy bases to
// their metadata and is seeded at migration.
package recorder

import (
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/engine"
)

// Recorder persists signal records for later analysis.
type Recorder interface {
	// RecordSignal stores one evaluation outcome.
	RecordSignal(rec *engine.SignalRecord) error
	Close() error
}

// NoopRecorder discards everything, used for dry runs and when no
// database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSignal(_ *engine.SignalRecord) error { return nil }
func (n *NoopRecorder) Close() error                              { return nil }
