// Package cache implements the result cache that consumes the batch
// processor's callback: an in-memory, mutex-guarded store keyed by the same
// composite identity the job queue deduplicates on. No Redis client exists
// anywhere in the example corpus this repository was grounded on, so this
// follows the teacher's own stateful-manager idiom (a map behind a
// sync.RWMutex) rather than introducing an unverified dependency.
package cache

import (
	"sort"
	"sync"

	"github.com/hmac213/pde-pricer/pkg/queue"
)

// ResultCache stores the latest OptionJobResult per job identity.
// Replacement semantics mirror JobQueue.AddOrReplace: Set on an existing
// identity discards the previous value.
type ResultCache struct {
	mu      sync.RWMutex
	results map[queue.Identity]queue.OptionJobResult
	tickers map[string]struct{}
}

// New returns an empty ResultCache.
func New() *ResultCache {
	return &ResultCache{
		results: make(map[queue.Identity]queue.OptionJobResult),
		tickers: make(map[string]struct{}),
	}
}

// Set stores result, replacing any prior value for the same identity. It is
// the natural callback to hand a queue.Processor.
func (c *ResultCache) Set(result queue.OptionJobResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[result.Identity()] = result
	c.tickers[result.Ticker] = struct{}{}
	return nil
}

// Get returns the cached result for id, if any.
func (c *ResultCache) Get(id queue.Identity) (queue.OptionJobResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.results[id]
	return r, ok
}

// ForTicker returns every cached result for ticker, in no particular order.
func (c *ResultCache) ForTicker(ticker string) []queue.OptionJobResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]queue.OptionJobResult, 0)
	for id, r := range c.results {
		if id.Ticker == ticker {
			out = append(out, r)
		}
	}
	return out
}

// Add registers ticker as active, independent of any cached result for it
// yet existing (mirrors the original cache_ticker/active_tickers watchlist
// behavior). Add and List together satisfy internal/api.Watchlist.
func (c *ResultCache) Add(ticker string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tickers[ticker] = struct{}{}
}

// List returns the sorted list of tracked tickers.
func (c *ResultCache) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.tickers))
	for t := range c.tickers {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
