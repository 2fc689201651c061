package queue

import (
	"errors"
	"fmt"

	"github.com/hmac213/pde-pricer/pkg/option"
)

// ErrInvalidArgument is returned when a job's fields fail validation: an
// unrecognized option type, a non-positive K/sigma/current price, or a
// negative T.
var ErrInvalidArgument = errors.New("queue: invalid job argument")

// Identity is the (ticker, option_type, K, T) tuple that deduplicates
// pending work in the JobQueue: two jobs with equal identity are the same
// job, and the later submission replaces the earlier.
type Identity struct {
	Ticker     string
	OptionType option.Type
	K          float64
	T          float64
}

func (id Identity) String() string {
	return fmt.Sprintf("%s|%s|%g|%g", id.Ticker, id.OptionType, id.K, id.T)
}

// OptionJob is the immutable unit of pricing work submitted by a producer.
type OptionJob struct {
	Ticker             string
	OptionType         option.Type
	K                  float64
	T                  float64
	CurrentPrice       float64 // S0
	CurrentOptionPrice float64 // observed market price, pass-through only
	R                  float64
	Sigma              float64
	Q                  float64 // continuous dividend yield, default 0
}

// Identity returns the deduplication key for job.
func (job OptionJob) Identity() Identity {
	return Identity{Ticker: job.Ticker, OptionType: job.OptionType, K: job.K, T: job.T}
}

// Validate checks the job construction contract from spec section 6.
func (job OptionJob) Validate() error {
	switch job.OptionType {
	case option.EuropeanCall, option.EuropeanPut, option.AmericanCall, option.AmericanPut:
	default:
		return fmt.Errorf("%w: unrecognized option_type %q", ErrInvalidArgument, job.OptionType)
	}
	if job.K <= 0 {
		return fmt.Errorf("%w: K must be positive, got %g", ErrInvalidArgument, job.K)
	}
	if job.T < 0 {
		return fmt.Errorf("%w: T must be non-negative, got %g", ErrInvalidArgument, job.T)
	}
	if job.CurrentPrice <= 0 {
		return fmt.Errorf("%w: current_price must be positive, got %g", ErrInvalidArgument, job.CurrentPrice)
	}
	if job.Sigma <= 0 {
		return fmt.Errorf("%w: sigma must be positive, got %g", ErrInvalidArgument, job.Sigma)
	}
	return nil
}

// OptionJobResult carries a job's identity fields plus the computed
// theoretical price at S0. The core never retains results; they exist only
// long enough to reach the callback.
type OptionJobResult struct {
	Ticker             string
	OptionType         option.Type
	K                  float64
	T                  float64
	CurrentPrice       float64
	CurrentOptionPrice float64
	FairValue          float64
}

// Identity returns the same deduplication key as the job it was computed from.
func (r OptionJobResult) Identity() Identity {
	return Identity{Ticker: r.Ticker, OptionType: r.OptionType, K: r.K, T: r.T}
}
