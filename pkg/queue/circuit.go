package queue

import (
	"fmt"
	"sync"
	"time"
)

// CircuitBreaker guards RunBatch against starting more work while the
// solver is failing at a pathological rate (e.g. a watchlist poisoned with
// degenerate strikes). It counts job outcomes inside a fixed window of length
// ResetWindow and trips once the failure rate reaches Threshold, the same
// peak/current-state shape the teacher's trading risk manager uses for its
// drawdown circuit breaker, repointed from balance drawdown to solver
// failure rate.
type CircuitBreaker struct {
	// Threshold is the failure rate (0-1) that trips the breaker. Zero
	// disables tripping.
	Threshold float64
	// MinSamples is the minimum number of recorded outcomes in the window
	// before the threshold is evaluated, to avoid tripping on a couple of
	// unlucky jobs at the very start of a batch.
	MinSamples int
	// ResetWindow is how long the breaker stays tripped before it
	// auto-resets and starts a fresh window.
	ResetWindow time.Duration

	mu        sync.RWMutex
	total     int
	failed    int
	windowAt  time.Time
	tripped   bool
	trippedAt time.Time
}

// NewCircuitBreaker returns a breaker with the given threshold and reset
// window. A zero ResetWindow defaults to 5 minutes.
func NewCircuitBreaker(threshold float64, minSamples int, resetWindow time.Duration) *CircuitBreaker {
	if resetWindow <= 0 {
		resetWindow = 5 * time.Minute
	}
	return &CircuitBreaker{
		Threshold:   threshold,
		MinSamples:  minSamples,
		ResetWindow: resetWindow,
		windowAt:    time.Now(),
	}
}

// RecordResult records one job outcome into the current window, first
// starting a fresh window if ResetWindow has elapsed since the last one began.
func (cb *CircuitBreaker) RecordResult(ok bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if !cb.tripped && time.Since(cb.windowAt) >= cb.ResetWindow {
		cb.total = 0
		cb.failed = 0
		cb.windowAt = time.Now()
	}

	cb.total++
	if !ok {
		cb.failed++
	}

	if cb.Threshold <= 0 || cb.total < cb.MinSamples {
		return
	}

	rate := float64(cb.failed) / float64(cb.total)
	if rate >= cb.Threshold && !cb.tripped {
		cb.tripped = true
		cb.trippedAt = time.Now()
	}
}

// CanProcess reports whether a new batch may start. Once tripped, the
// breaker auto-resets (clearing counters and starting a fresh window) after
// ResetWindow has elapsed.
func (cb *CircuitBreaker) CanProcess() (bool, string) {
	cb.mu.RLock()
	tripped := cb.tripped
	trippedAt := cb.trippedAt
	cb.mu.RUnlock()

	if !tripped {
		return true, ""
	}

	if time.Since(trippedAt) < cb.ResetWindow {
		remaining := cb.ResetWindow - time.Since(trippedAt)
		return false, fmt.Sprintf("solver circuit breaker tripped, resets in %s", remaining.Round(time.Second))
	}

	cb.mu.Lock()
	cb.tripped = false
	cb.total = 0
	cb.failed = 0
	cb.windowAt = time.Now()
	cb.mu.Unlock()
	return true, ""
}
