package data

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/errors"
	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/types"
)

// ColumnMapping defines the column positions and date layout of a CSV
// history file.
type ColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateLayout   string
}

// DefaultCSVFormat matches daily HKEX exports: date,open,high,low,close,volume.
var DefaultCSVFormat = ColumnMapping{
	TimestampCol: 0,
	OpenCol:      1,
	HighCol:      2,
	LowCol:       3,
	CloseCol:     4,
	VolumeCol:    5,
	MinColumns:   6,
	DateLayout:   "2006-01-02",
}

// CSVProvider reads one <SYMBOL>.csv file per symbol from a directory.
type CSVProvider struct {
	dir    string
	format ColumnMapping
}

// NewCSVProvider creates a provider over dir with the default format.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir, format: DefaultCSVFormat}
}

// NewCSVProviderWithFormat creates a provider with a custom column
// mapping.
func NewCSVProviderWithFormat(dir string, format ColumnMapping) *CSVProvider {
	return &CSVProvider{dir: dir, format: format}
}

// Name identifies the provider in logs.
func (p *CSVProvider) Name() string {
	return "csv:" + p.dir
}

// History loads and validates the symbol's full history file.
func (p *CSVProvider) History(symbol string) (*types.PriceSeries, error) {
	path := filepath.Join(p.dir, symbol+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryData, "data", "%s: open history", symbol)
	}
	defer file.Close()

	bars, err := p.parse(symbol, file)
	if err != nil {
		return nil, err
	}
	return types.NewPriceSeries(symbol, bars)
}

func (p *CSVProvider) parse(symbol string, r io.Reader) ([]types.OHLCV, error) {
	reader := csv.NewReader(r)
	// Column counts are checked against the mapping, not the header.
	reader.FieldsPerRecord = -1

	// Header row.
	if _, err := reader.Read(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryData, "data", "%s: read header", symbol)
	}

	var bars []types.OHLCV
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorCategoryData, "data", "%s: line %d", symbol, line+1)
		}
		line++

		if len(record) < p.format.MinColumns {
			return nil, errors.New(errors.ErrorCategoryValidation, "data",
				"%s: line %d has %d columns, need %d", symbol, line, len(record), p.format.MinColumns)
		}

		bar, err := p.parseBar(symbol, line, record)
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func (p *CSVProvider) parseBar(symbol string, line int, record []string) (types.OHLCV, error) {
	ts, err := time.Parse(p.format.DateLayout, record[p.format.TimestampCol])
	if err != nil {
		return types.OHLCV{}, errors.Wrap(err, errors.ErrorCategoryValidation, "data",
			"%s: line %d timestamp %q", symbol, line, record[p.format.TimestampCol])
	}

	bar := types.OHLCV{Timestamp: ts}
	for _, f := range []struct {
		name string
		col  int
		dst  *float64
	}{
		{"open", p.format.OpenCol, &bar.Open},
		{"high", p.format.HighCol, &bar.High},
		{"low", p.format.LowCol, &bar.Low},
		{"close", p.format.CloseCol, &bar.Close},
		{"volume", p.format.VolumeCol, &bar.Volume},
	} {
		v, err := strconv.ParseFloat(record[f.col], 64)
		if err != nil {
			return types.OHLCV{}, errors.Wrap(err, errors.ErrorCategoryValidation, "data",
				"%s: line %d %s %q", symbol, line, f.name, record[f.col])
		}
		*f.dst = v
	}

	if err := bar.Validate(); err != nil {
		return types.OHLCV{}, errors.Wrap(err, errors.ErrorCategoryValidation, "data",
			"%s: line %d", symbol, line)
	}
	return bar, nil
}
