package recorder

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/engine"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/errors"
)

// SQLiteRecorder persists signal records to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database, runs migrations
// and seeds the strategy catalog.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorCategoryStorage, "recorder", "open %s", dbPath)
	}

	// WAL so dashboards can read while the daemon writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.ErrorCategoryStorage, "recorder", "set WAL mode")
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trading_signals (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			recorded_at   INTEGER NOT NULL,
			symbol        TEXT NOT NULL,
			txyzn_code    TEXT NOT NULL,
			side          TEXT NOT NULL,
			strategy_base TEXT NOT NULL,
			magnitude     INTEGER NOT NULL,
			confidence    REAL NOT NULL,
			price         REAL,
			rsi_14        REAL,
			ema_5         REAL,
			ema_20        REAL,
			ema_50        REAL,
			volume        REAL,
			bar_time      INTEGER,
			reasons       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol_ts ON trading_signals(symbol, recorded_at)`,

		`CREATE TABLE IF NOT EXISTS strategy_catalog (
			strategy_base TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			side          TEXT NOT NULL,
			description   TEXT NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return errors.Wrap(err, errors.ErrorCategoryStorage, "recorder", "migrate")
		}
	}
	return r.seedCatalog()
}

// seedCatalog inserts the known strategy bases; existing rows are left
// alone so descriptions can be edited in place.
func (r *SQLiteRecorder) seedCatalog() error {
	catalog := []struct {
		base, name, side, description string
	}{
		{engine.BaseBreakout, "Breakout", "B", "Close clears the prior 20-bar high by an ATR margin on volume"},
		{engine.BaseOversoldReclaim, "Oversold Reclaim", "B", "RSI reclaims 32 with a strong close above the short EMAs"},
		{engine.BaseBreakdown, "Breakdown", "S", "Close loses EMA50 by an ATR margin with falling MACD"},
		{engine.BaseOverboughtTrim, "Overbought Trim", "S", "Price at trim target with overbought RSI and a reversal sign"},
		{engine.BaseBounce, "Bollinger Bounce", "*", "Mean reversion from a band tag toward the middle band"},
		{engine.BaseSqueeze, "Squeeze Breakout", "*", "Directional break out of a volatility squeeze"},
		{engine.BaseWalk, "Band Walk", "*", "Trend continuation while closes hug one band"},
		{engine.BaseHold, "Hold", "H", "No strategy conditions met"},
	}
	for _, c := range catalog {
		_, err := r.db.Exec(
			`INSERT OR IGNORE INTO strategy_catalog (strategy_base, name, side, description) VALUES (?, ?, ?, ?)`,
			c.base, c.name, c.side, c.description)
		if err != nil {
			return errors.Wrap(err, errors.ErrorCategoryStorage, "recorder", "seed catalog %s", c.base)
		}
	}
	return nil
}

// RecordSignal stores one evaluation outcome.
func (r *SQLiteRecorder) RecordSignal(rec *engine.SignalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(
		`INSERT INTO trading_signals
		 (recorded_at, symbol, txyzn_code, side, strategy_base, magnitude, confidence,
		  price, rsi_14, ema_5, ema_20, ema_50, volume, bar_time, reasons)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Unix(), rec.Symbol, rec.TxyznCode, rec.Side, rec.StrategyBase,
		rec.Magnitude, rec.Confidence, rec.Price, rec.RSI14, rec.EMA5, rec.EMA20,
		rec.EMA50, rec.Volume, rec.Timestamp.Unix(), strings.Join(rec.Reasons, "; "))
	if err != nil {
		return errors.Wrap(err, errors.ErrorCategoryStorage, "recorder", "%s: insert signal", rec.Symbol)
	}
	return nil
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
