package queue_test

import (
	"errors"
	"testing"

	"github.com/hmac213/pde-pricer/pkg/option"
	"github.com/hmac213/pde-pricer/pkg/queue"
)

func validJob() queue.OptionJob {
	return queue.OptionJob{
		Ticker:       "AAPL",
		OptionType:   option.AmericanCall,
		K:            150,
		T:            0.25,
		CurrentPrice: 155,
		Sigma:        0.3,
		R:            0.05,
	}
}

func TestValidateAcceptsValidJob(t *testing.T) {
	if err := validJob().Validate(); err != nil {
		t.Fatalf("Validate: unexpected error: %v", err)
	}
}

func TestValidateRejectsUnrecognizedOptionType(t *testing.T) {
	job := validJob()
	job.OptionType = option.Type("bogus")
	if err := job.Validate(); !errors.Is(err, queue.ErrInvalidArgument) {
		t.Errorf("Validate: got %v, want ErrInvalidArgument", err)
	}
}

func TestValidateRejectsNonPositiveStrike(t *testing.T) {
	job := validJob()
	job.K = 0
	if err := job.Validate(); !errors.Is(err, queue.ErrInvalidArgument) {
		t.Errorf("Validate: got %v, want ErrInvalidArgument", err)
	}
}

func TestValidateRejectsNegativeMaturity(t *testing.T) {
	job := validJob()
	job.T = -1
	if err := job.Validate(); !errors.Is(err, queue.ErrInvalidArgument) {
		t.Errorf("Validate: got %v, want ErrInvalidArgument", err)
	}
}

func TestValidateRejectsNonPositiveCurrentPrice(t *testing.T) {
	job := validJob()
	job.CurrentPrice = 0
	if err := job.Validate(); !errors.Is(err, queue.ErrInvalidArgument) {
		t.Errorf("Validate: got %v, want ErrInvalidArgument", err)
	}
}

func TestValidateRejectsNonPositiveSigma(t *testing.T) {
	job := validJob()
	job.Sigma = 0
	if err := job.Validate(); !errors.Is(err, queue.ErrInvalidArgument) {
		t.Errorf("Validate: got %v, want ErrInvalidArgument", err)
	}
}

func TestValidateAcceptsZeroMaturity(t *testing.T) {
	job := validJob()
	job.T = 0
	if err := job.Validate(); err != nil {
		t.Errorf("Validate: unexpected error for T=0: %v", err)
	}
}

func TestIdentityIgnoresPriceFields(t *testing.T) {
	a := validJob()
	b := validJob()
	b.CurrentPrice = 999
	b.CurrentOptionPrice = 42
	if a.Identity() != b.Identity() {
		t.Errorf("Identity() should ignore price fields: %v != %v", a.Identity(), b.Identity())
	}
}
