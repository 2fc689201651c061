// Package pricer implements the per-job orchestrator: it chooses grid
// sizing from a job's parameters, builds and solves the mesh, and
// interpolates the fair value at the spot price.
package pricer

import (
	"math"

	"github.com/hmac213/pde-pricer/pkg/mesh"
	"github.com/hmac213/pde-pricer/pkg/option"
	"github.com/hmac213/pde-pricer/pkg/queue"
	"github.com/hmac213/pde-pricer/pkg/solver"
)

// MaxJ bounds the number of price steps so a single pathological job can't
// exhaust memory.
const MaxJ = 10000

// MinN is the floor on time steps regardless of how short T is.
const MinN = 20

// Solve validates job, then returns its theoretical fair value at S0. T==0
// short-circuits to the payoff; otherwise a mesh is built, solved with
// Crank-Nicolson, and the result is linearly interpolated at S0. The mesh
// is owned by this call and released before it returns.
func Solve(job queue.OptionJob) (float64, error) {
	if err := job.Validate(); err != nil {
		return 0, err
	}

	opt, err := option.New(job.OptionType, job.K, job.T, job.R, job.Sigma, job.Q)
	if err != nil {
		return 0, err
	}

	if job.T == 0 {
		payoff := opt.Payoff([]float64{job.CurrentPrice})
		return payoff[0], nil
	}

	SMax := gridSMax(job.CurrentPrice, job.K)
	J := gridJ(SMax)
	N := gridN(job.T)

	m, err := mesh.Initialize(opt, SMax, N, J)
	if err != nil {
		return 0, err
	}

	if err := solver.CrankNicolson(opt, m, SMax); err != nil {
		return 0, err
	}

	return interpolate(m.S, m.V[0], job.CurrentPrice), nil
}

// gridSMax chooses the upper price bound, at least twice max(S0, K) as
// spec section 4.5 requires, rounded up to the next integer.
func gridSMax(S0, K float64) float64 {
	SMax := math.Max(2*S0, 4*K)
	return math.Ceil(SMax)
}

// gridJ picks roughly one node per cent of SMax, capped at MaxJ.
func gridJ(SMax float64) int {
	J := int(math.Round(SMax * 100))
	if J > MaxJ {
		J = MaxJ
	}
	if J < 2 {
		J = 2
	}
	return J
}

// gridN picks twice the number of trading days to maturity, floored at MinN.
func gridN(T float64) int {
	N := int(math.Round(T * 252 * 2))
	if N < MinN {
		N = MinN
	}
	return N
}

// interpolate linearly interpolates row at S0 against grid S, clamping to
// the grid's endpoints.
func interpolate(S, row []float64, S0 float64) float64 {
	J := len(S) - 1
	if S0 <= S[0] {
		return row[0]
	}
	if S0 >= S[J] {
		return row[J]
	}

	dS := S[1] - S[0]
	jf := S0 / dS
	j := int(jf)
	if j >= J {
		return row[J]
	}
	frac := jf - float64(j)
	return row[j]*(1-frac) + row[j+1]*frac
}
