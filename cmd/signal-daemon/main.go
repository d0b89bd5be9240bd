// signal-daemon runs the scan on a cron schedule and serves the
// Prometheus metrics and health endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alphathia/hk-strategy-mvp-sub001/cmd/common"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/bollinger"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/engine"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/monitoring"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/recorder"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/scheduler"
	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/data"
	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to the YAML configuration")
		envPath    = flag.String("env", ".env", "path to the .env file")
		runOnStart = flag.Bool("run-on-start", false, "run one scan immediately at startup")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		common.PrintVersion("signal-daemon")
		return
	}

	cfg, log, err := common.Bootstrap(*envPath, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "signal-daemon: %v\n", err)
		os.Exit(1)
	}
	daemonLog := logger.ForComponent(log, "signal-daemon")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		daemonLog.WithError(err).Fatal("open recorder")
	}
	defer rec.Close()

	health := monitoring.NewHealthChecker()
	sched := scheduler.New(ctx, pool, provider, rec, health, cfg.Watchlist,
		logger.ForComponent(log, "scheduler"))
	if err := sched.Register(cfg.Scan.Cron); err != nil {
		daemonLog.WithError(err).WithField("cron", cfg.Scan.Cron).Fatal("register scan task")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	mux.Handle("/health", health)
	addr := fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort)
	go func() {
		daemonLog.WithField("addr", addr).Info("monitoring endpoint listening")
		if err := http.ListenAndServe(addr, mux); err != nil {
			daemonLog.WithError(err).Error("monitoring endpoint")
		}
	}()

	if *runOnStart {
		go sched.RunNow()
	}
	sched.Start()
	daemonLog.WithField("cron", cfg.Scan.Cron).Info("daemon started")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	daemonLog.Info("shutting down")
	cancel()
	sched.Stop()
}
