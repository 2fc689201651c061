// Package option implements the four Black-Scholes contract variants priced
// by the Crank-Nicolson solver: European and American calls and puts.
package option

import (
	"fmt"
	"math"
)

// Type identifies which of the four supported contract variants an Option is.
type Type string

const (
	EuropeanCall Type = "european_call"
	EuropeanPut  Type = "european_put"
	AmericanCall Type = "american_call"
	AmericanPut  Type = "american_put"
)

// Option is the capability set the mesh and Crank-Nicolson driver dispatch
// against once per job: a payoff function, a boundary-condition setter, and
// an early-exercise projection (a no-op for European variants).
type Option interface {
	Kind() Type
	K() float64
	T() float64
	R() float64
	Sigma() float64
	Q() float64

	// Payoff returns max(S-K,0) or max(K-S,0) elementwise over S.
	Payoff(S []float64) []float64

	// ApplyBoundary sets V[0] and V[len(V)-1] in place for the row at time
	// tNow, using S for the corresponding grid; S[len(S)-1] is the upper node SMax.
	ApplyBoundary(V, S []float64, tNow float64)

	// ApplyEarlyExercise projects V in place onto V >= payoff(S). A no-op
	// for European variants.
	ApplyEarlyExercise(V, S []float64, tNow float64)
}

type base struct {
	k, t, r, sigma, q float64
}

func (b base) K() float64     { return b.k }
func (b base) T() float64     { return b.t }
func (b base) R() float64     { return b.r }
func (b base) Sigma() float64 { return b.sigma }
func (b base) Q() float64     { return b.q }

func (base) ApplyEarlyExercise(V, S []float64, tNow float64) {}

type europeanCall struct{ base }
type europeanPut struct{ base }
type americanCall struct{ base }
type americanPut struct{ base }

// New builds the Option variant named by kind. Q is the continuous dividend
// yield and is used as given; pass 0 when there is no dividend-yield estimate.
func New(kind Type, K, T, R, Sigma, Q float64) (Option, error) {
	b := base{k: K, t: T, r: R, sigma: Sigma, q: Q}
	switch kind {
	case EuropeanCall:
		return europeanCall{b}, nil
	case EuropeanPut:
		return europeanPut{b}, nil
	case AmericanCall:
		return americanCall{b}, nil
	case AmericanPut:
		return americanPut{b}, nil
	default:
		return nil, fmt.Errorf("option: unrecognized option type %q", kind)
	}
}

func NewEuropeanCall(K, T, R, Sigma, Q float64) Option {
	return europeanCall{base{K, T, R, Sigma, Q}}
}

func NewEuropeanPut(K, T, R, Sigma, Q float64) Option {
	return europeanPut{base{K, T, R, Sigma, Q}}
}

func NewAmericanCall(K, T, R, Sigma, Q float64) Option {
	return americanCall{base{K, T, R, Sigma, Q}}
}

func NewAmericanPut(K, T, R, Sigma, Q float64) Option {
	return americanPut{base{K, T, R, Sigma, Q}}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// --- European call ---

func (o europeanCall) Kind() Type { return EuropeanCall }

func (o europeanCall) Payoff(S []float64) []float64 {
	out := make([]float64, len(S))
	for i, s := range S {
		out[i] = maxFloat(s-o.k, 0.0)
	}
	return out
}

func (o europeanCall) ApplyBoundary(V, S []float64, tNow float64) {
	last := len(V) - 1
	V[0] = 0.0
	V[last] = S[last] - o.k*math.Exp(-(o.r-o.q)*(o.t-tNow))
}

// --- European put ---

func (o europeanPut) Kind() Type { return EuropeanPut }

func (o europeanPut) Payoff(S []float64) []float64 {
	out := make([]float64, len(S))
	for i, s := range S {
		out[i] = maxFloat(o.k-s, 0.0)
	}
	return out
}

func (o europeanPut) ApplyBoundary(V, S []float64, tNow float64) {
	last := len(V) - 1
	V[0] = o.k * math.Exp(-(o.r-o.q)*(o.t-tNow))
	V[last] = 0.0
}

// --- American call ---

func (o americanCall) Kind() Type { return AmericanCall }

func (o americanCall) Payoff(S []float64) []float64 {
	out := make([]float64, len(S))
	for i, s := range S {
		out[i] = maxFloat(s-o.k, 0.0)
	}
	return out
}

func (o americanCall) ApplyBoundary(V, S []float64, tNow float64) {
	last := len(V) - 1
	V[0] = 0.0
	discounted := S[last] - o.k*math.Exp(-(o.r-o.q)*(o.t-tNow))
	V[last] = maxFloat(S[last]-o.k, discounted)
}

func (o americanCall) ApplyEarlyExercise(V, S []float64, tNow float64) {
	for j, s := range S {
		V[j] = maxFloat(V[j], maxFloat(s-o.k, 0.0))
	}
}

// --- American put ---

func (o americanPut) Kind() Type { return AmericanPut }

func (o americanPut) Payoff(S []float64) []float64 {
	out := make([]float64, len(S))
	for i, s := range S {
		out[i] = maxFloat(o.k-s, 0.0)
	}
	return out
}

func (o americanPut) ApplyBoundary(V, S []float64, tNow float64) {
	discounted := o.k*math.Exp(-(o.r-o.q)*(o.t-tNow)) - S[0]
	V[0] = maxFloat(o.k-S[0], discounted)
	V[len(V)-1] = 0.0
}

func (o americanPut) ApplyEarlyExercise(V, S []float64, tNow float64) {
	for j, s := range S {
		V[j] = maxFloat(V[j], maxFloat(o.k-s, 0.0))
	}
}
