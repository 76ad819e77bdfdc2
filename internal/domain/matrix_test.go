package domain

import (
	"errors"
	"math"
	"testing"
)

func TestMatrixFromNodesEuclidean(t *testing.T) {
	nodes := []Node{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: 3, Y: 4},
		{ID: 2, X: 3, Y: 0},
	}

	m := MatrixFromNodes(nodes)
	if m.Dim() != 3 {
		t.Fatalf("dim = %d, want 3", m.Dim())
	}
	if got := m.Cost(0, 1); got != 5 {
		t.Fatalf("cost(0,1) = %g, want 5", got)
	}
	if got := m.Cost(1, 2); got != 4 {
		t.Fatalf("cost(1,2) = %g, want 4", got)
	}
	if m.Cost(1, 0) != m.Cost(0, 1) {
		t.Fatalf("matrix from nodes is not symmetric")
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMatrixFromRowsRejectsRagged(t *testing.T) {
	_, err := MatrixFromRows([][]float64{
		{0, 1},
		{1},
	})
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("err = %v, want ErrMalformedInput", err)
	}
}

func TestMatrixValidate(t *testing.T) {
	build := func(mutate func(m *DistanceMatrix)) *DistanceMatrix {
		m, err := MatrixFromRows([][]float64{
			{0, 2, 3},
			{2, 0, 4},
			{3, 4, 0},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mutate != nil {
			mutate(m)
		}
		return m
	}

	if err := build(nil).Validate(); err != nil {
		t.Fatalf("valid matrix rejected: %v", err)
	}

	cases := map[string]*DistanceMatrix{
		"negative cost":    build(func(m *DistanceMatrix) { m.SetCost(0, 1, -1); m.SetCost(1, 0, -1) }),
		"asymmetric":       build(func(m *DistanceMatrix) { m.SetCost(0, 2, 9) }),
		"nonzero diagonal": build(func(m *DistanceMatrix) { m.SetCost(1, 1, 1) }),
		"missing entry":    build(func(m *DistanceMatrix) { m.SetCost(1, 2, math.NaN()) }),
	}
	for name, m := range cases {
		if err := m.Validate(); !errors.Is(err, ErrMalformedInput) {
			t.Errorf("%s: err = %v, want ErrMalformedInput", name, err)
		}
	}
}

func TestInstanceValidate(t *testing.T) {
	inst := &Instance{
		Name: "tiny",
		Nodes: []Node{
			{ID: 0},
			{ID: 1, X: 1, Demand: 3},
		},
		Capacity: 5,
	}
	if err := inst.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	over := &Instance{
		Name: "over",
		Nodes: []Node{
			{ID: 0},
			{ID: 1, X: 1, Demand: 7},
		},
		Capacity: 5,
	}
	if err := over.Validate(); !errors.Is(err, ErrInfeasibleInstance) {
		t.Fatalf("err = %v, want ErrInfeasibleInstance", err)
	}

	depotDemand := &Instance{
		Name: "depot-demand",
		Nodes: []Node{
			{ID: 0, Demand: 1},
			{ID: 1, X: 1, Demand: 2},
		},
		Capacity: 5,
	}
	if err := depotDemand.Validate(); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("err = %v, want ErrMalformedInput", err)
	}
}
