package solver_test

import (
	"math"
	"testing"

	"github.com/hmac213/pde-pricer/pkg/solver"
)

func TestThomasSolvesKnownSystem(t *testing.T) {
	// [2 1 0] [x0]   [3]
	// [1 3 1] [x1] = [8]
	// [0 1 2] [x2]   [5]
	lower := []float64{0, 1, 1}
	main := []float64{2, 3, 2}
	upper := []float64{1, 1, 0}
	rhs := []float64{3, 8, 5}

	x, err := solver.Thomas(lower, main, upper, rhs)
	if err != nil {
		t.Fatalf("Thomas: unexpected error: %v", err)
	}

	// Verify A*x reproduces rhs rather than hand-deriving the solution.
	got := []float64{
		main[0]*x[0] + upper[0]*x[1],
		lower[1]*x[0] + main[1]*x[1] + upper[1]*x[2],
		lower[2]*x[1] + main[2]*x[2],
	}
	for i := range rhs {
		if math.Abs(got[i]-rhs[i]) > 1e-9 {
			t.Errorf("row %d: A*x = %g, want %g", i, got[i], rhs[i])
		}
	}
}

func TestThomasRejectsZeroPivot(t *testing.T) {
	lower := []float64{0, 1}
	main := []float64{0, 1}
	upper := []float64{1, 0}
	rhs := []float64{1, 1}

	if _, err := solver.Thomas(lower, main, upper, rhs); err == nil {
		t.Fatal("expected ErrSingular for a zero leading pivot")
	}
}

func TestThomasRejectsMismatchedLengths(t *testing.T) {
	if _, err := solver.Thomas([]float64{1}, []float64{1, 2}, []float64{1}, []float64{1}); err == nil {
		t.Fatal("expected an error for mismatched diagonal lengths")
	}
}

func TestThomasDoesNotMutateInputs(t *testing.T) {
	lower := []float64{0, 1, 1}
	main := []float64{2, 3, 2}
	upper := []float64{1, 1, 0}
	rhs := []float64{3, 8, 5}

	lowerCopy := append([]float64(nil), lower...)
	mainCopy := append([]float64(nil), main...)
	upperCopy := append([]float64(nil), upper...)
	rhsCopy := append([]float64(nil), rhs...)

	if _, err := solver.Thomas(lower, main, upper, rhs); err != nil {
		t.Fatalf("Thomas: unexpected error: %v", err)
	}

	for i := range lower {
		if lower[i] != lowerCopy[i] || main[i] != mainCopy[i] || upper[i] != upperCopy[i] || rhs[i] != rhsCopy[i] {
			t.Fatalf("Thomas mutated an input slice at index %d", i)
		}
	}
}
