package marketdata_test

import (
	"testing"

	"github.com/hmac213/pde-pricer/pkg/marketdata"
	"github.com/hmac213/pde-pricer/pkg/option"
)

func TestBuildJobsMapsChainEntriesToAmericanJobs(t *testing.T) {
	entries := []marketdata.ChainEntry{
		{Ticker: "AAPL", Strike: 150, DaysToExpiry: 91, IsPut: false, UnderlyingPrice: 155},
		{Ticker: "AAPL", Strike: 150, DaysToExpiry: 91, IsPut: true, UnderlyingPrice: 155},
	}
	params := marketdata.MarketParams{Sigma: 0.3, R: 0.05, Q: 0}

	jobs, err := marketdata.BuildJobs(entries, params)
	if err != nil {
		t.Fatalf("BuildJobs: unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("len(jobs) = %d, want 2", len(jobs))
	}
	if jobs[0].OptionType != option.AmericanCall {
		t.Errorf("jobs[0].OptionType = %s, want american_call", jobs[0].OptionType)
	}
	if jobs[1].OptionType != option.AmericanPut {
		t.Errorf("jobs[1].OptionType = %s, want american_put", jobs[1].OptionType)
	}
	wantT := 91.0 / 365.0
	if jobs[0].T != wantT {
		t.Errorf("jobs[0].T = %g, want %g", jobs[0].T, wantT)
	}
}

func TestBuildJobsSkipsDegenerateEntries(t *testing.T) {
	entries := []marketdata.ChainEntry{
		{Ticker: "AAPL", Strike: 0, DaysToExpiry: 30, UnderlyingPrice: 100},
		{Ticker: "AAPL", Strike: 100, DaysToExpiry: 30, UnderlyingPrice: 100},
	}
	jobs, err := marketdata.BuildJobs(entries, marketdata.MarketParams{Sigma: 0.2, R: 0.05})
	if err != nil {
		t.Fatalf("BuildJobs: unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("len(jobs) = %d, want 1 (zero-strike entry skipped)", len(jobs))
	}
}

func TestBuildJobsErrorsWhenNothingValid(t *testing.T) {
	entries := []marketdata.ChainEntry{
		{Ticker: "AAPL", Strike: 0, DaysToExpiry: 30, UnderlyingPrice: 100},
	}
	if _, err := marketdata.BuildJobs(entries, marketdata.MarketParams{Sigma: 0.2, R: 0.05}); err == nil {
		t.Fatal("expected an error when no valid jobs can be built")
	}
}

func TestAnnualizedVolatilityOnConstantSeriesIsZero(t *testing.T) {
	closes := []float64{100, 100, 100, 100}
	if got := marketdata.AnnualizedVolatility(closes, 252); got != 0 {
		t.Errorf("AnnualizedVolatility(constant) = %g, want 0", got)
	}
}

func TestAnnualizedVolatilityOnShortSeriesIsZero(t *testing.T) {
	if got := marketdata.AnnualizedVolatility([]float64{100}, 252); got != 0 {
		t.Errorf("AnnualizedVolatility(single point) = %g, want 0", got)
	}
}

func TestAnnualizedVolatilityIsPositiveForVaryingPrices(t *testing.T) {
	closes := []float64{100, 102, 98, 105, 101, 110, 95}
	got := marketdata.AnnualizedVolatility(closes, 252)
	if got <= 0 {
		t.Errorf("AnnualizedVolatility(varying series) = %g, want > 0", got)
	}
}

func TestFixedRateReturnsConstant(t *testing.T) {
	rate := marketdata.FixedRate(0.05)
	got, err := rate.RiskFreeRate()
	if err != nil {
		t.Fatalf("RiskFreeRate: unexpected error: %v", err)
	}
	if got != 0.05 {
		t.Errorf("RiskFreeRate() = %g, want 0.05", got)
	}
}
