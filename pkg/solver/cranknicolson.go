// Package solver implements the tridiagonal (Thomas) solver and the
// Crank-Nicolson time-stepping driver for the Black-Scholes PDE.
package solver

import (
	"github.com/hmac213/pde-pricer/pkg/mesh"
	"github.com/hmac213/pde-pricer/pkg/option"
)

// CrankNicolson steps m.V backward from maturity to t=0 in place, assembling
// the implicit/explicit tridiagonal systems described in spec section 4.3:
//
//	ML = I - 0.5*A, MR = I + 0.5*A
//
// for the discretized Black-Scholes operator A, applying opt's boundary
// conditions before each solve and its early-exercise projection after.
// SMax must match the upper bound m was initialized with.
func CrankNicolson(opt option.Option, m *mesh.Mesh, SMax float64) error {
	J := len(m.S) - 1
	N := len(m.T) - 1
	interior := J - 1

	dS := SMax / float64(J)
	dt := opt.T() / float64(N)
	sigma := opt.Sigma()
	r := opt.R()
	q := opt.Q()

	a := make([]float64, interior)
	b := make([]float64, interior)
	c := make([]float64, interior)
	for k := 0; k < interior; k++ {
		Sj := m.S[k+1]
		alpha := dt / (dS * dS)
		beta := dt / dS
		a[k] = 0.5*sigma*sigma*Sj*Sj*alpha - 0.5*(r-q)*Sj*beta
		b[k] = -sigma*sigma*Sj*Sj*alpha - r*dt
		c[k] = 0.5*sigma*sigma*Sj*Sj*alpha + 0.5*(r-q)*Sj*beta
	}

	MLlower := make([]float64, interior)
	MLmain := make([]float64, interior)
	MLupper := make([]float64, interior)
	MRlower := make([]float64, interior)
	MRmain := make([]float64, interior)
	MRupper := make([]float64, interior)
	for k := 0; k < interior; k++ {
		MLlower[k] = -0.5 * a[k]
		MLmain[k] = 1 - 0.5*b[k]
		MLupper[k] = -0.5 * c[k]
		MRlower[k] = 0.5 * a[k]
		MRmain[k] = 1 + 0.5*b[k]
		MRupper[k] = 0.5 * c[k]
	}

	rhs := make([]float64, interior)

	for n := N - 1; n >= 0; n-- {
		opt.ApplyBoundary(m.V[n], m.S, m.T[n])

		for k := 0; k < interior; k++ {
			j := k + 1
			rhs[k] = MRlower[k]*m.V[n+1][j-1] + MRmain[k]*m.V[n+1][j] + MRupper[k]*m.V[n+1][j+1]
		}
		rhs[0] -= MLlower[0] * m.V[n][0]
		rhs[interior-1] -= MLupper[interior-1] * m.V[n][J]

		x, err := Thomas(MLlower, MLmain, MLupper, rhs)
		if err != nil {
			return err
		}
		copy(m.V[n][1:J], x)

		opt.ApplyEarlyExercise(m.V[n], m.S, m.T[n])
	}

	opt.ApplyBoundary(m.V[0], m.S, m.T[0])
	opt.ApplyEarlyExercise(m.V[0], m.S, m.T[0])

	return nil
}
