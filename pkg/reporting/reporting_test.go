package reporting

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/engine"
)

func sampleResults() []engine.ScanResult {
	return []engine.ScanResult{
		{
			Symbol: "0700.HK",
			Record: &engine.SignalRecord{
				Symbol: "0700.HK", TxyznCode: "HHLD5", Side: "H",
				StrategyBase: engine.BaseHold, Magnitude: 5, Confidence: 0.5,
				Price: 324.0, RSI14: 51.2,
				Timestamp: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
				Reasons:   []string{"No Bollinger strategy conditions met"},
			},
		},
		{
			Symbol: "1299.HK",
			Record: &engine.SignalRecord{
				Symbol: "1299.HK", TxyznCode: "BBRK8", Side: "B",
				StrategyBase: engine.BaseBreakout, Magnitude: 8, Confidence: 8.0 / 9.0,
				Price: 111.0, RSI14: 61.0,
				Timestamp: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
				Reasons:   []string{"close broke 20-bar high"},
			},
		},
		{Symbol: "0388.HK", Err: errors.New("0388.HK: open history: no such file")},
	}
}

func TestConsoleReporter_PrintSignals(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleReporter(&buf).PrintSignals(sampleResults())

	out := buf.String()
	assert.Contains(t, out, "BBRK8")
	assert.Contains(t, out, "HHLD5")
	assert.Contains(t, out, "ERROR")

	// Actionable signal sorts above the hold, errors last.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("1299.HK")), bytes.Index(buf.Bytes(), []byte("0700.HK")))
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("0700.HK")), bytes.Index(buf.Bytes(), []byte("0388.HK")))
}

func TestExcelReporter_WriteSignalsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "signals.xlsx")
	require.NoError(t, NewExcelReporter().WriteSignalsXLSX(sampleResults(), path))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	rows, err := fx.GetRows("Signals")
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus three result rows")
	assert.Equal(t, "Symbol", rows[0][0])

	// Row 2 is the breakout, sorted first.
	assert.Equal(t, "1299.HK", rows[1][0])
	assert.Equal(t, "BBRK8", rows[1][1])
}
