// Package scheduler drives periodic watchlist scans: load history,
// evaluate in parallel, persist the records and update metrics.
package scheduler

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/engine"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/errors"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/monitoring"
	"github.com/alphathia/hk-strategy-mvp-sub001/internal/recorder"
	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/data"
)

// Scheduler runs the scan task on a cron spec.
type Scheduler struct {
	cron      *cron.Cron
	pool      *engine.WorkerPool
	provider  data.HistoryProvider
	recorder  recorder.Recorder
	health    *monitoring.HealthChecker
	watchlist []string
	log       *logrus.Entry
	ctx       context.Context
}

// New creates a scheduler over the given collaborators.
func New(ctx context.Context, pool *engine.WorkerPool, provider data.HistoryProvider,
	rec recorder.Recorder, health *monitoring.HealthChecker, watchlist []string,
	log *logrus.Entry) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		pool:      pool,
		provider:  provider,
		recorder:  rec,
		health:    health,
		watchlist: watchlist,
		log:       log,
		ctx:       ctx,
	}
}

// Register adds the scan task under the cron spec.
func (s *Scheduler) Register(spec string) error {
	_, err := s.cron.AddFunc(spec, s.scanTask)
	return err
}

// Start starts the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron loop, waiting for a running task to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

// RunNow executes the scan task immediately, used at daemon startup.
func (s *Scheduler) RunNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	start := time.Now()
	s.log.WithField("symbols", len(s.watchlist)).Info("scan started")

	watchlist, err := data.LoadWatchlist(s.provider, s.watchlist)
	if err != nil {
		s.log.WithError(err).Error("load watchlist")
		monitoring.RecordEvaluationError("DATA")
		s.health.ScanCompleted([]string{err.Error()})
		return
	}

	results := s.pool.Scan(s.ctx, watchlist, time.Now())

	var errs []string
	for _, res := range results {
		if res.Err != nil {
			s.log.WithField("symbol", res.Symbol).WithError(res.Err).Error("evaluate")
			monitoring.RecordEvaluationError(categoryOf(res.Err))
			errs = append(errs, res.Err.Error())
			continue
		}
		if err := s.recorder.RecordSignal(res.Record); err != nil {
			s.log.WithField("symbol", res.Symbol).WithError(err).Error("record signal")
			monitoring.RecordEvaluationError("STORAGE")
			errs = append(errs, err.Error())
			continue
		}
		monitoring.RecordSignal(res.Symbol, res.Record.Side, res.Record.Confidence)
		s.log.WithFields(logrus.Fields{
			"symbol":   res.Symbol,
			"code":     res.Record.TxyznCode,
			"strategy": res.Record.StrategyBase,
			"duration": res.Duration,
		}).Info("signal")
	}

	monitoring.RecordScan(time.Since(start))
	s.health.ScanCompleted(errs)
	s.log.WithFields(logrus.Fields{
		"duration": time.Since(start),
		"errors":   len(errs),
	}).Info("scan finished")
}

// categoryOf pulls the error category out for the metrics label.
func categoryOf(err error) string {
	var ee *errors.EngineError
	if stderrors.As(err, &ee) {
		return string(ee.Category)
	}
	return "UNKNOWN"
}
