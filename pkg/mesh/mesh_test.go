package mesh_test

import (
	"testing"

	"github.com/hmac213/pde-pricer/pkg/mesh"
	"github.com/hmac213/pde-pricer/pkg/option"
)

func TestInitializeGridShape(t *testing.T) {
	opt := option.NewEuropeanCall(100, 1, 0.05, 0.2, 0)
	m, err := mesh.Initialize(opt, 200, 10, 20)
	if err != nil {
		t.Fatalf("Initialize: unexpected error: %v", err)
	}
	if len(m.S) != 21 {
		t.Errorf("len(S) = %d, want 21", len(m.S))
	}
	if len(m.T) != 11 {
		t.Errorf("len(T) = %d, want 11", len(m.T))
	}
	if len(m.V) != 11 {
		t.Errorf("len(V) = %d, want 11", len(m.V))
	}
	for _, row := range m.V {
		if len(row) != 21 {
			t.Fatalf("row length = %d, want 21", len(row))
		}
	}
	if m.S[0] != 0 || m.S[20] != 200 {
		t.Errorf("S endpoints = [%g, %g], want [0, 200]", m.S[0], m.S[20])
	}
	if m.T[0] != 0 || m.T[10] != 1 {
		t.Errorf("T endpoints = [%g, %g], want [0, 1]", m.T[0], m.T[10])
	}
}

func TestInitializeSeedsTerminalPayoff(t *testing.T) {
	opt := option.NewEuropeanCall(100, 1, 0.05, 0.2, 0)
	m, err := mesh.Initialize(opt, 200, 10, 20)
	if err != nil {
		t.Fatalf("Initialize: unexpected error: %v", err)
	}
	terminal := m.V[len(m.V)-1]
	want := opt.Payoff(m.S)
	for j := range want {
		if terminal[j] != want[j] {
			t.Errorf("terminal row[%d] = %g, want %g", j, terminal[j], want[j])
		}
	}
}

func TestInitializeRejectsDegenerateGrids(t *testing.T) {
	opt := option.NewEuropeanCall(100, 1, 0.05, 0.2, 0)
	if _, err := mesh.Initialize(opt, 200, 10, 1); err == nil {
		t.Error("expected an error for J < 2")
	}
	if _, err := mesh.Initialize(opt, 200, 0, 20); err == nil {
		t.Error("expected an error for N < 1")
	}
}
