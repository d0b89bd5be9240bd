package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/engine"
)

// ExcelReporter writes the scan results workbook.
type ExcelReporter struct{}

func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// WriteSignalsXLSX writes one Signals sheet with a row per symbol.
func (r *ExcelReporter) WriteSignalsXLSX(results []engine.ScanResult, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const sheet = "Signals"
	fx.SetSheetName(fx.GetSheetName(0), sheet)

	headerStyle, err := fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF", Family: "Calibri"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2F4F4F"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	headers := []string{"Symbol", "Signal", "Side", "Strategy", "Magnitude", "Confidence",
		"Price", "RSI 14", "EMA 5", "EMA 20", "EMA 50", "Volume", "Bar Time", "Reasons"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	fx.SetCellStyle(sheet, "A1", last, headerStyle)

	row := 2
	for _, res := range sortedForDisplay(results) {
		if res.Err != nil {
			fx.SetCellValue(sheet, cellName(1, row), res.Symbol)
			fx.SetCellValue(sheet, cellName(2, row), "ERROR")
			fx.SetCellValue(sheet, cellName(14, row), res.Err.Error())
			row++
			continue
		}
		rec := res.Record
		values := []interface{}{
			rec.Symbol, rec.TxyznCode, rec.Side, rec.StrategyBase, rec.Magnitude,
			rec.Confidence, rec.Price, rec.RSI14, rec.EMA5, rec.EMA20, rec.EMA50,
			rec.Volume, rec.Timestamp.Format("2006-01-02"), strings.Join(rec.Reasons, "; "),
		}
		for i, v := range values {
			fx.SetCellValue(sheet, cellName(i+1, row), v)
		}
		row++
	}

	fx.SetColWidth(sheet, "A", "A", 12)
	fx.SetColWidth(sheet, "N", "N", 60)

	return fx.SaveAs(path)
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
