// Package reporting renders scan results: a console table for the
// one-shot command and an Excel workbook for distribution.
package reporting

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/engine"
)

// ConsoleReporter renders scan results as a table.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a reporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// PrintSignals renders one row per evaluated symbol, actionable
// signals first, then by symbol.
func (r *ConsoleReporter) PrintSignals(results []engine.ScanResult) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("SIGNAL SCAN")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Symbol", "Signal", "Strategy", "Conf", "Price", "RSI", "Reasons"})

	for _, res := range sortedForDisplay(results) {
		if res.Err != nil {
			t.AppendRow(table.Row{res.Symbol, "ERROR", "", "", "", "", res.Err.Error()})
			continue
		}
		rec := res.Record
		t.AppendRow(table.Row{
			rec.Symbol,
			rec.TxyznCode,
			rec.StrategyBase,
			fmt.Sprintf("%.2f", rec.Confidence),
			fmt.Sprintf("%.2f", rec.Price),
			fmt.Sprintf("%.1f", rec.RSI14),
			strings.Join(rec.Reasons, "; "),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 7, WidthMax: 60},
	})

	t.Render()
}

// sortedForDisplay orders actionable signals before holds and errors,
// then alphabetically.
func sortedForDisplay(results []engine.ScanResult) []engine.ScanResult {
	out := make([]engine.ScanResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

func rank(res engine.ScanResult) int {
	switch {
	case res.Err != nil:
		return 2
	case res.Record.Side == "H":
		return 1
	default:
		return 0
	}
}
