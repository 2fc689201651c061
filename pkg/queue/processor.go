package queue

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// ResultCallback receives one completed job's result. It is invoked from
// worker goroutines, serialized by an internal mutex so it sees at most one
// concurrent call; delivery order is unspecified. It must not call
// RunBatch again on the goroutine it is invoked from.
type ResultCallback func(OptionJobResult) error

// Solver runs the per-job orchestrator (mesh build, Crank-Nicolson solve,
// interpolation) for a single job. Numerical failures and invalid arguments
// are returned as errors, never panics, so the processor can isolate them.
type Solver func(OptionJob) (float64, error)

// Recorder receives batch/job timing and outcome observations. Implementations
// in pkg/metrics wire these into Prometheus; nil is a valid no-op Recorder.
type Recorder interface {
	ObserveJob(duration time.Duration, ok bool)
	ObserveBatch(duration time.Duration, total, succeeded, skipped int)
	SetQueueDepth(depth int)
}

// Breaker guards RunBatch against starting work while the solver health
// circuit is tripped. A nil Breaker means no guard is applied.
type Breaker interface {
	CanProcess() (bool, string)
	RecordResult(ok bool)
}

// Processor fans a drained batch of jobs out across a fixed worker pool and
// streams each finished result through a user-supplied callback.
type Processor struct {
	// Workers is the pool size. Zero or negative means runtime.NumCPU().
	Workers int
	Logger  *slog.Logger
	Metrics Recorder
	Breaker Breaker
}

// RunBatch drains q, solves every job across the worker pool, and delivers
// each result via cb before returning. It returns only after every drained
// job has either delivered a result or been skipped. A per-job failure
// (invalid argument, numerical failure, or a panic inside the job) does not
// abort the batch: the job is skipped, one aggregated warning line is logged
// per batch, and each job's own error is logged only at debug level. If
// cb itself errors, processing continues and the first such error is
// returned once the batch completes.
func (p *Processor) RunBatch(q *JobQueue, solve Solver, cb ResultCallback) error {
	if p.Breaker != nil {
		if ok, reason := p.Breaker.CanProcess(); !ok {
			return fmt.Errorf("queue: circuit breaker open: %s", reason)
		}
	}

	jobs := q.Drain()
	if p.Metrics != nil {
		p.Metrics.SetQueueDepth(0)
	}
	if len(jobs) == 0 {
		return nil
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	batchStart := time.Now()

	jobCh := make(chan OptionJob, len(jobs))
	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)

	var callbackMu sync.Mutex
	var firstErrMu sync.Mutex
	var firstErr error
	var skipped int32Counter
	var succeeded int32Counter

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobCh {
				result, ok := p.runJob(job, solve)
				if !ok {
					skipped.inc()
					if p.Breaker != nil {
						p.Breaker.RecordResult(false)
					}
					continue
				}
				if p.Breaker != nil {
					p.Breaker.RecordResult(true)
				}

				callbackMu.Lock()
				err := cb(result)
				callbackMu.Unlock()

				if err != nil {
					firstErrMu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("queue: callback failed for %s: %w", job.Identity(), err)
					}
					firstErrMu.Unlock()
					continue
				}
				succeeded.inc()
			}
		}()
	}
	wg.Wait()

	if p.Metrics != nil {
		p.Metrics.ObserveBatch(time.Since(batchStart), len(jobs), int(succeeded.value()), int(skipped.value()))
	}
	if skipped.value() > 0 && p.Logger != nil {
		p.Logger.Warn("batch completed with skipped jobs",
			"total", len(jobs), "succeeded", succeeded.value(), "skipped", skipped.value())
	}

	return firstErr
}

// runJob isolates a single job: a panic or returned error is converted into
// (zero, false) rather than propagating out to the worker goroutine.
func (p *Processor) runJob(job OptionJob, solve Solver) (result OptionJobResult, ok bool) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if p.Logger != nil {
				p.Logger.Debug("job panicked", "identity", job.Identity().String(), "panic", r)
			}
		}
		if p.Metrics != nil {
			p.Metrics.ObserveJob(time.Since(start), ok)
		}
	}()

	fairValue, err := solve(job)
	if err != nil {
		if p.Logger != nil {
			p.Logger.Debug("job failed", "identity", job.Identity().String(), "error", err)
		}
		return OptionJobResult{}, false
	}

	return OptionJobResult{
		Ticker:             job.Ticker,
		OptionType:         job.OptionType,
		K:                  job.K,
		T:                  job.T,
		CurrentPrice:       job.CurrentPrice,
		CurrentOptionPrice: job.CurrentOptionPrice,
		FairValue:          fairValue,
	}, true
}

// int32Counter is a mutex-guarded counter shared across worker goroutines.
type int32Counter struct {
	mu  sync.Mutex
	val int
}

func (c *int32Counter) inc() {
	c.mu.Lock()
	c.val++
	c.mu.Unlock()
}

func (c *int32Counter) value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.val
}
