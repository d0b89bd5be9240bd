// signal-scan runs one evaluation pass over the configured watchlist:
// load CSV history, evaluate every symbol in parallel, print the
// signal table and persist the records.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alphathia/hk-strategy-mvp-sub001/cmd/common"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/bollinger"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/engine"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/recorder"
	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/data"
	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/logger"
	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/reporting"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to the YAML configuration")
		envPath    = flag.String("env", ".env", "path to the .env file")
		xlsxPath   = flag.String("xlsx", "", "also write the results workbook to this path")
		dryRun     = flag.Bool("dry-run", false, "evaluate and print without persisting")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		common.PrintVersion("signal-scan")
		return
	}

	cfg, log, err := common.Bootstrap(*envPath, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "signal-scan: %v\n", err)
		os.Exit(1)
	}
	scanLog := logger.ForComponent(log, "signal-scan")

	eng := engine.New(engine.Config{
		Rails: cfg.SignalRails(),
		Bollinger: bollinger.Config{
			Period:        cfg.Bollinger.Period,
			StdDev:        cfg.Bollinger.StdDev,
			SqueezeWindow: cfg.Bollinger.SqueezeWindow,
		},
		VetoDates:      cfg.ParsedVetoDates(),
		VetoWindowDays: cfg.Scan.VetoWindowDays,
	})
	pool := engine.NewWorkerPool(eng, cfg.Scan.Workers)
	provider := data.NewCSVProvider(cfg.Data.Dir)

	watchlist, err := data.LoadWatchlist(provider, cfg.Watchlist)
	if err != nil {
		scanLog.WithError(err).Fatal("load watchlist")
	}

	start := time.Now()
	results := pool.Scan(context.Background(), watchlist, time.Now())
	scanLog.WithField("duration", time.Since(start)).Info("scan complete")

	reporting.NewConsoleReporter(os.Stdout).PrintSignals(results)

	if *xlsxPath != "" {
		if err := reporting.NewExcelReporter().WriteSignalsXLSX(results, *xlsxPath); err != nil {
			scanLog.WithError(err).Fatal("write workbook")
		}
		scanLog.WithField("path", *xlsxPath).Info("workbook written")
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if !*dryRun {
		sqlite, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			scanLog.WithError(err).Fatal("open recorder")
		}
		rec = sqlite
	}
	defer rec.Close()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			scanLog.WithField("symbol", res.Symbol).WithError(res.Err).Error("evaluate")
			failed++
			continue
		}
		if err := rec.RecordSignal(res.Record); err != nil {
			scanLog.WithField("symbol", res.Symbol).WithError(err).Error("record")
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
