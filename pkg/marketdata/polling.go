package marketdata

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hmac213/pde-pricer/pkg/queue"
)

// PollLoop is the background polling loop from spec section 6: on every
// tick it polls fresh chain data, submits the resulting jobs to Queue, and
// — only if the queue is non-empty — runs one batch through Processor.
// Grounded on the teacher's WebSocketClient stop-channel/sync.Once shutdown
// idiom and on original_source's continuous_poll_and_process, which ran the
// same poll-build-submit-process cycle on a timer against a stop event.
type PollLoop struct {
	Interval  time.Duration
	Tickers   []string
	Poller    Poller
	Queue     *queue.JobQueue
	Processor *queue.Processor
	Solve     queue.Solver
	Callback  queue.ResultCallback
	Logger    *slog.Logger

	mu        sync.Mutex
	stopChan  chan struct{}
	closeOnce sync.Once
	started   bool
	wg        sync.WaitGroup
}

// Start begins polling on a background goroutine. Calling Start twice on an
// already-started loop is a no-op.
func (p *PollLoop) Start() {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.stopChan = make(chan struct{})
	p.closeOnce = sync.Once{}
	stop := p.stopChan
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(stop)
}

// Stop signals the loop to exit and waits for the in-flight tick (if any)
// to finish; the processor does not support mid-batch cancellation (spec
// section 5), so Stop blocks until the current batch, if one is running,
// completes.
func (p *PollLoop) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.closeOnce.Do(func() { close(p.stopChan) })
	p.mu.Unlock()

	p.wg.Wait()

	p.mu.Lock()
	p.started = false
	p.mu.Unlock()
}

func (p *PollLoop) run(stop chan struct{}) {
	defer p.wg.Done()

	interval := p.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		p.tick()

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

func (p *PollLoop) tick() {
	chains, err := p.Poller.PollChains(p.Tickers)
	if err != nil {
		if p.Logger != nil {
			p.Logger.Error("poll failed", "error", err)
		}
		return
	}

	for ticker, entries := range chains {
		if len(entries) == 0 {
			continue
		}
		params, err := p.Poller.Params(ticker)
		if err != nil {
			if p.Logger != nil {
				p.Logger.Warn("skipping ticker, could not fetch market params", "ticker", ticker, "error", err)
			}
			continue
		}
		jobs, err := BuildJobs(entries, params)
		if err != nil {
			if p.Logger != nil {
				p.Logger.Warn("skipping ticker, no valid jobs", "ticker", ticker, "error", err)
			}
			continue
		}
		for _, job := range jobs {
			p.Queue.AddOrReplace(job)
		}
	}

	if p.Queue.Size() == 0 {
		return
	}

	if p.Logger != nil {
		p.Logger.Info("processing batch", "jobs", p.Queue.Size())
	}
	if err := p.Processor.RunBatch(p.Queue, p.Solve, p.Callback); err != nil {
		if p.Logger != nil {
			p.Logger.Error("batch completed with an error", "error", err)
		}
	}
}
