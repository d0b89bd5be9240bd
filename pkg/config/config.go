// Package config loads the scanner configuration: a YAML file holding
// the watchlist, per-symbol rails and runtime settings, with
// environment variable overrides on top.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/errors"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/signal"
)

// vetoDateLayout is the calendar-day format used for veto dates.
const vetoDateLayout = "2006-01-02"

// AddZone is the YAML shape of a per-symbol accumulation band.
type AddZone struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// SymbolRails is the YAML shape of one symbol's rails. All fields are
// optional; absent thresholds disable the rules that need them.
type SymbolRails struct {
	TargetSell   *float64 `yaml:"target_sell"`
	Stop         *float64 `yaml:"stop"`
	TrimMin      *float64 `yaml:"trim_min"`
	TacticalStop *float64 `yaml:"tactical_stop"`
	TrimFloor    *float64 `yaml:"trim_floor"`
	AddZone      *AddZone `yaml:"add_zone"`
}

// Config holds everything the scan commands need.
type Config struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`

	Data struct {
		// Dir holds one <SYMBOL>.csv history file per watchlist symbol.
		Dir string `yaml:"dir"`
	} `yaml:"data"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Scan struct {
		Cron           string `yaml:"cron"`
		Workers        int    `yaml:"workers"`
		VetoWindowDays int    `yaml:"veto_window_days"`
	} `yaml:"scan"`

	Monitoring struct {
		PrometheusPort int `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Bollinger struct {
		Period        int     `yaml:"period"`
		StdDev        float64 `yaml:"std_dev"`
		SqueezeWindow int     `yaml:"squeeze_window"`
	} `yaml:"bollinger"`

	Watchlist []string               `yaml:"watchlist"`
	Rails     map[string]SymbolRails `yaml:"rails"`
	// VetoDates lists manual buy-veto dates per symbol as YYYY-MM-DD.
	VetoDates map[string][]string `yaml:"veto_dates"`
}

// Load reads the YAML file, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, errors.ErrorCategoryConfig, "config", "read %s", path)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrorCategoryConfig, "config", "parse %s", path)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Data.Dir = getEnv("DATA_DIR", cfg.Data.Dir)
	cfg.Database.SQLitePath = getEnv("SQLITE_PATH", cfg.Database.SQLitePath)
	cfg.Scan.Cron = getEnv("SCAN_CRON", cfg.Scan.Cron)
	cfg.Scan.Workers = getEnvInt("SCAN_WORKERS", cfg.Scan.Workers)
	cfg.Monitoring.PrometheusPort = getEnvInt("PROMETHEUS_PORT", cfg.Monitoring.PrometheusPort)
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/signals.db"
	}
	if cfg.Scan.Cron == "" {
		// Weekdays at 16:30 local, after the HKEX close.
		cfg.Scan.Cron = "30 16 * * 1-5"
	}
	if cfg.Scan.VetoWindowDays == 0 {
		cfg.Scan.VetoWindowDays = 2
	}
	if cfg.Monitoring.PrometheusPort == 0 {
		cfg.Monitoring.PrometheusPort = 9188
	}
}

// Validate rejects configurations the engine cannot act on.
func (c *Config) Validate() error {
	if len(c.Watchlist) == 0 {
		return errors.New(errors.ErrorCategoryConfig, "config", "watchlist is empty")
	}
	seen := make(map[string]bool, len(c.Watchlist))
	for _, sym := range c.Watchlist {
		if sym == "" {
			return errors.New(errors.ErrorCategoryConfig, "config", "watchlist contains an empty symbol")
		}
		if seen[sym] {
			return errors.New(errors.ErrorCategoryConfig, "config", "watchlist lists %s twice", sym)
		}
		seen[sym] = true
	}
	for sym, r := range c.Rails {
		if !seen[sym] {
			return errors.New(errors.ErrorCategoryConfig, "config", "rails for %s, which is not on the watchlist", sym)
		}
		if r.AddZone != nil && r.AddZone.Low > r.AddZone.High {
			return errors.New(errors.ErrorCategoryConfig, "config",
				"%s: add_zone low %.2f above high %.2f", sym, r.AddZone.Low, r.AddZone.High)
		}
		if r.TargetSell != nil && *r.TargetSell <= 0 {
			return errors.New(errors.ErrorCategoryConfig, "config", "%s: target_sell must be positive", sym)
		}
	}
	for sym, dates := range c.VetoDates {
		if !seen[sym] {
			return errors.New(errors.ErrorCategoryConfig, "config", "veto dates for %s, which is not on the watchlist", sym)
		}
		for _, d := range dates {
			if _, err := time.Parse(vetoDateLayout, d); err != nil {
				return errors.Wrap(err, errors.ErrorCategoryConfig, "config",
					"%s: veto date %q is not YYYY-MM-DD", sym, d)
			}
		}
	}
	if c.Scan.Workers < 0 {
		return errors.New(errors.ErrorCategoryConfig, "config", "scan.workers must not be negative")
	}
	return nil
}

// SignalRails converts the YAML rails into the evaluator's form.
func (c *Config) SignalRails() signal.Rails {
	rails := make(signal.Rails, len(c.Rails))
	for sym, r := range c.Rails {
		rc := signal.RailsConfig{
			TargetSell:   r.TargetSell,
			Stop:         r.Stop,
			TrimMin:      r.TrimMin,
			TacticalStop: r.TacticalStop,
			TrimFloor:    r.TrimFloor,
		}
		if r.AddZone != nil {
			rc.AddZone = &signal.AddZone{Low: r.AddZone.Low, High: r.AddZone.High}
		}
		rails[sym] = rc
	}
	return rails
}

// ParsedVetoDates converts the YYYY-MM-DD strings to times. Load has
// already validated the format.
func (c *Config) ParsedVetoDates() map[string][]time.Time {
	out := make(map[string][]time.Time, len(c.VetoDates))
	for sym, dates := range c.VetoDates {
		for _, d := range dates {
			t, err := time.Parse(vetoDateLayout, d)
			if err != nil {
				continue
			}
			out[sym] = append(out[sym], t)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
