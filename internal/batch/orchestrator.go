package batch

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/mmcli/mmcli/internal/model"
)

// Func executes exactly one job. Implementations must capture their own
// failures into the outcome instead of panicking; a panic that slips through
// is still recovered here and recorded as a failed outcome.
type Func func(ctx context.Context, job model.Job) model.Outcome

// Orchestrator applies an executor to N jobs with at most maxWorkers in
// flight at any time.
type Orchestrator struct {
	maxWorkers int
	logger     *log.Logger
}

// New creates an orchestrator. A maxWorkers below 1 is treated as 1.
func New(maxWorkers int, logger *log.Logger) *Orchestrator {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Orchestrator{
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// MaxWorkers returns the configured concurrency cap.
func (o *Orchestrator) MaxWorkers() int {
	return o.maxWorkers
}

// Run executes fn over every job and returns one outcome per job in input
// order. Sequential execution is the degenerate case of the same algorithm
// when there is a single job or a single worker. A cancelled context stops
// new jobs from being issued; jobs never started are recorded as failed.
func (o *Orchestrator) Run(ctx context.Context, jobs []model.Job, fn Func) model.BatchResult {
	results := make(model.BatchResult, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	total := len(jobs)
	if total == 1 || o.maxWorkers == 1 {
		for i, job := range jobs {
			if err := ctx.Err(); err != nil {
				results[i] = model.Failed(job, fmt.Errorf("not started: %w", err))
				continue
			}
			results[i] = o.execute(ctx, job, total, fn)
		}
		return results
	}

	// Counting semaphore bounds in-flight work; each worker writes its own
	// slot in results, so completion order never leaks to the caller.
	sem := make(chan struct{}, o.maxWorkers)
	var wg sync.WaitGroup
	for i, job := range jobs {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results[i] = model.Failed(job, fmt.Errorf("not started: %w", ctx.Err()))
			continue
		}

		wg.Add(1)
		go func(i int, job model.Job) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = o.execute(ctx, job, total, fn)
		}(i, job)
	}
	wg.Wait()

	return results
}

// execute runs one job with progress feedback and panic isolation.
func (o *Orchestrator) execute(ctx context.Context, job model.Job, total int, fn Func) (outcome model.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = model.Failed(job, fmt.Errorf("unexpected error: %v", r))
			o.logf("[FAIL] %s: %v", job.DisplayName(), r)
		}
	}()

	o.logf("[%d/%d] processing %s", job.Index+1, total, job.DisplayName())

	outcome = fn(ctx, job)
	if outcome.Success {
		o.logf("[OK] %s", job.DisplayName())
	} else {
		o.logf("[FAIL] %s: %s", job.DisplayName(), outcome.Err)
	}
	return outcome
}

func (o *Orchestrator) logf(format string, args ...any) {
	if o.logger != nil {
		o.logger.Printf(format, args...)
	}
}
