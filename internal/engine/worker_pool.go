package engine

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/types"
)

// ScanJob is one symbol's evaluation task.
type ScanJob struct {
	Series *types.PriceSeries
	Now    time.Time
}

// ScanResult is the outcome for one symbol. Exactly one of Record and
// Err is set.
type ScanResult struct {
	Symbol   string
	Record   *SignalRecord
	Err      error
	Duration time.Duration
}

// WorkerPool evaluates a watchlist in parallel. Symbols are independent
// and the engine is stateless, so a parallel map is safe; no ordering
// is guaranteed between symbols. The pool itself holds no scan state,
// so concurrent Scan calls do not interfere.
type WorkerPool struct {
	engine      *Engine
	workerCount int
}

// NewWorkerPool creates a pool over the given engine. A non-positive
// workerCount defaults to the number of CPUs.
func NewWorkerPool(engine *Engine, workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	return &WorkerPool{
		engine:      engine,
		workerCount: workerCount,
	}
}

// Scan evaluates every series and returns one result per symbol.
// Cancelling the context abandons unstarted symbols; results for
// completed ones are still returned.
func (p *WorkerPool) Scan(ctx context.Context, watchlist []*types.PriceSeries, now time.Time) []ScanResult {
	jobs := make(chan ScanJob, len(watchlist))
	out := make(chan ScanResult, len(watchlist))

	var wg sync.WaitGroup
	for i := 0; i < p.workerCount; i++ {
		wg.Add(1)
		go p.worker(ctx, &wg, jobs, out)
	}

	for _, series := range watchlist {
		jobs <- ScanJob{Series: series, Now: now}
	}
	close(jobs)

	wg.Wait()
	close(out)

	results := make([]ScanResult, 0, len(watchlist))
	for res := range out {
		results = append(results, res)
	}
	return results
}

func (p *WorkerPool) worker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan ScanJob, out chan<- ScanResult) {
	defer wg.Done()
	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		start := time.Now()
		record, err := p.engine.EvaluateSymbol(job.Series, job.Now)
		out <- ScanResult{
			Symbol:   job.Series.Symbol,
			Record:   record,
			Err:      err,
			Duration: time.Since(start),
		}
	}
}
