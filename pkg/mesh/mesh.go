// Package mesh allocates the spatial/time grids the Crank-Nicolson driver
// steps over and seeds the terminal payoff row.
package mesh

import (
	"fmt"

	"github.com/hmac213/pde-pricer/pkg/option"
)

// Mesh holds the uniform grids and the (N+1)x(J+1) value surface for one
// pricing job. It is owned exclusively by the worker that built it and is
// discarded once the job completes.
type Mesh struct {
	S []float64   // J+1 nodes on [0, SMax]
	T []float64   // N+1 nodes on [0, opt.T()]
	V [][]float64 // V[n][j], row N is the terminal payoff
}

// Initialize builds S, T and V for opt on [0, SMax] x [0, opt.T()], seeding
// the terminal row with the option's payoff. J and N must both be large
// enough to form an interior: J>=2, N>=1.
func Initialize(opt option.Option, SMax float64, N, J int) (*Mesh, error) {
	if J < 2 {
		return nil, fmt.Errorf("mesh: J must be >= 2, got %d", J)
	}
	if N < 1 {
		return nil, fmt.Errorf("mesh: N must be >= 1, got %d", N)
	}

	dS := SMax / float64(J)
	S := make([]float64, J+1)
	for j := range S {
		S[j] = float64(j) * dS
	}
	S[J] = SMax

	dt := opt.T() / float64(N)
	t := make([]float64, N+1)
	for n := range t {
		t[n] = float64(n) * dt
	}
	t[N] = opt.T()

	V := make([][]float64, N+1)
	for n := range V {
		V[n] = make([]float64, J+1)
	}
	copy(V[N], opt.Payoff(S))

	return &Mesh{S: S, T: t, V: V}, nil
}
