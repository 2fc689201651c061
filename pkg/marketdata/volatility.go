package marketdata

import "math"

// AnnualizedVolatility estimates sigma from a price history using the
// log-return method: the sample standard deviation of log returns, scaled
// by sqrt(periodsPerYear). Grounded on the teacher's
// features.Engine.computeHistoricalVol (candle-close log returns scaled by
// sqrt(periods-per-day) then sqrt(365)) and on original_source's
// calculate_annual_volatility.py, generalized to take the sampling period
// explicitly rather than assuming daily candles. Returns 0 for fewer than
// two closes or a constant series.
func AnnualizedVolatility(closes []float64, periodsPerYear float64) float64 {
	if len(closes) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] <= 0 || closes[i] <= 0 {
			continue
		}
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}
	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance) * math.Sqrt(periodsPerYear)
}

// RateSource supplies the annualized risk-free rate used to discount the
// strike. FixedRate is the fallback implementation original_source's
// calculate_risk_free_rate.py falls back to (a constant 5%) when a live
// T-bill feed is unavailable.
type RateSource interface {
	RiskFreeRate() (float64, error)
}

// FixedRate is a RateSource that always returns the same constant rate.
type FixedRate float64

func (f FixedRate) RiskFreeRate() (float64, error) { return float64(f), nil }

// DefaultRiskFreeRate mirrors original_source's fallback when no live
// T-bill yield feed is wired.
const DefaultRiskFreeRate FixedRate = 0.05
