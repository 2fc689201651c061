package main

import (
	"fmt"
	"math/rand"

	"github.com/hmac213/pde-pricer/pkg/marketdata"
)

// fixturePoller is a reference marketdata.Poller implementation. The
// retrieved example corpus carries no options-chain or quote REST client
// (the teacher's pkg/delta client talks to a perpetual-futures exchange,
// not an options chain), so wiring a real one here would mean fabricating
// an API this repository was never grounded on. fixturePoller instead
// synthesizes a small chain around a seeded spot price per ticker, purely
// so PollLoop has something to drive end to end; any real deployment
// swaps this out for a Poller backed by marketdata.Feed plus a real chain
// REST call.
type fixturePoller struct {
	r       float64
	q       float64
	spots   map[string]float64
	history map[string][]float64
}

func newFixturePoller(riskFreeRate, dividendYield float64) *fixturePoller {
	return &fixturePoller{
		r:       riskFreeRate,
		q:       dividendYield,
		spots:   make(map[string]float64),
		history: make(map[string][]float64),
	}
}

func (p *fixturePoller) spotFor(ticker string) float64 {
	if s, ok := p.spots[ticker]; ok {
		return s
	}
	seed := float64(100 + (hashString(ticker) % 300))
	p.spots[ticker] = seed
	return seed
}

func (p *fixturePoller) PollChains(tickers []string) (marketdata.Chain, error) {
	chain := make(marketdata.Chain, len(tickers))
	for _, ticker := range tickers {
		spot := p.spotFor(ticker)
		spot *= 1 + (rand.Float64()-0.5)*0.01
		p.spots[ticker] = spot
		p.history[ticker] = append(p.history[ticker], spot)
		if len(p.history[ticker]) > 252 {
			p.history[ticker] = p.history[ticker][1:]
		}

		entries := make([]marketdata.ChainEntry, 0, 6)
		for _, dte := range []int{30, 60, 90} {
			for _, isPut := range []bool{false, true} {
				strike := spot
				entries = append(entries, marketdata.ChainEntry{
					Ticker:          ticker,
					Strike:          strike,
					DaysToExpiry:    dte,
					IsPut:           isPut,
					UnderlyingPrice: spot,
					OptionPrice:     0,
				})
			}
		}
		chain[ticker] = entries
	}
	return chain, nil
}

func (p *fixturePoller) Params(ticker string) (marketdata.MarketParams, error) {
	closes, ok := p.history[ticker]
	if !ok || len(closes) < 2 {
		return marketdata.MarketParams{}, fmt.Errorf("fixture poller: no history yet for %s", ticker)
	}
	sigma := marketdata.AnnualizedVolatility(closes, 252)
	if sigma <= 0 {
		sigma = 0.25
	}
	return marketdata.MarketParams{Sigma: sigma, R: p.r, Q: p.q}, nil
}

func hashString(s string) int {
	h := 0
	for _, c := range s {
		h = h*31 + int(c)
	}
	if h < 0 {
		h = -h
	}
	return h
}
