// Package marketdata is the polling adapter the core pricing engine treats
// as an external collaborator (spec section 6): it supplies OptionJobs by
// converting polled option-chain snapshots into queue submissions, and
// consumes OptionJobResults by handing them to whatever callback the caller
// wired up (typically pkg/cache.ResultCache.Set). None of this package is
// part of the core contract; the core only depends on the Poller interface
// it is built to satisfy.
package marketdata

import (
	"fmt"

	"github.com/hmac213/pde-pricer/pkg/option"
	"github.com/hmac213/pde-pricer/pkg/queue"
)

// ChainEntry is one contract out of a polled option chain: a single strike,
// expiration and side for a ticker, with the underlying's current price.
type ChainEntry struct {
	Ticker          string
	Strike          float64
	DaysToExpiry    int // calendar days, matching the upstream chain feed
	IsPut           bool
	UnderlyingPrice float64
	OptionPrice     float64 // observed market price, passed through only
}

// Chain maps ticker to its polled chain entries for one tick.
type Chain map[string][]ChainEntry

// MarketParams are the per-ticker inputs the job builder needs beyond the
// chain itself: annualized volatility, the risk-free rate, and the
// dividend yield.
type MarketParams struct {
	Sigma float64
	R     float64
	Q     float64
}

// Poller is the producer side of the core's external interface (spec
// section 6): it supplies fresh chain snapshots and the market parameters
// needed to turn them into OptionJobs. PollLoop (polling.go) drives one
// implementation of this on a timer.
type Poller interface {
	PollChains(tickers []string) (Chain, error)
	Params(ticker string) (MarketParams, error)
}

// BuildJobs converts one ticker's polled chain entries into OptionJobs,
// always pricing under the American exercise style — matching
// original_source's create_option_jobs, which maps every polled contract to
// american_call/american_put regardless of the instrument's actual style,
// since an American price bounds the European no-early-exercise price from
// above. dte is converted from calendar days to years by /365, exactly as
// original_source's options_poller.py does for its T_years.
func BuildJobs(entries []ChainEntry, params MarketParams) ([]queue.OptionJob, error) {
	jobs := make([]queue.OptionJob, 0, len(entries))
	for _, e := range entries {
		if e.Strike <= 0 {
			continue
		}
		optType := option.AmericanCall
		if e.IsPut {
			optType = option.AmericanPut
		}
		job := queue.OptionJob{
			Ticker:             e.Ticker,
			OptionType:         optType,
			K:                  e.Strike,
			T:                  float64(e.DaysToExpiry) / 365.0,
			CurrentPrice:       e.UnderlyingPrice,
			CurrentOptionPrice: e.OptionPrice,
			R:                  params.R,
			Sigma:              params.Sigma,
			Q:                  params.Q,
		}
		if err := job.Validate(); err != nil {
			continue
		}
		jobs = append(jobs, job)
	}
	if len(entries) > 0 && len(jobs) == 0 {
		return nil, fmt.Errorf("marketdata: no valid jobs built from %d chain entries", len(entries))
	}
	return jobs, nil
}
