package domain

import (
	"fmt"
	"math"
)

// DistanceMatrix holds pairwise travel costs between all nodes of an
// instance, stored row-major. The solver treats it as read-only.
type DistanceMatrix struct {
	dim  int
	cost []float64
}

// NewDistanceMatrix allocates a dim x dim matrix with every off-diagonal
// entry marked missing (NaN) until set.
func NewDistanceMatrix(dim int) *DistanceMatrix {
	m := &DistanceMatrix{dim: dim, cost: make([]float64, dim*dim)}
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			if i != j {
				m.cost[i*dim+j] = math.NaN()
			}
		}
	}
	return m
}

// MatrixFromRows builds a matrix from explicit rows, e.g. a matrix supplied
// inline over the API. Rows must be square; content is checked by Validate.
func MatrixFromRows(rows [][]float64) (*DistanceMatrix, error) {
	dim := len(rows)
	m := &DistanceMatrix{dim: dim, cost: make([]float64, 0, dim*dim)}
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("matrix from rows: row %d has %d entries, want %d: %w", i, len(row), dim, ErrMalformedInput)
		}
		m.cost = append(m.cost, row...)
	}
	return m, nil
}

// MatrixFromNodes computes the Euclidean distance matrix of an instance's
// node coordinates.
func MatrixFromNodes(nodes []Node) *DistanceMatrix {
	dim := len(nodes)
	m := &DistanceMatrix{dim: dim, cost: make([]float64, dim*dim)}
	for i := 0; i < dim; i++ {
		for j := i + 1; j < dim; j++ {
			d := math.Hypot(nodes[i].X-nodes[j].X, nodes[i].Y-nodes[j].Y)
			m.cost[i*dim+j] = d
			m.cost[j*dim+i] = d
		}
	}
	return m
}

// Dim returns the number of nodes covered by the matrix, depot included.
func (m *DistanceMatrix) Dim() int { return m.dim }

// Cost returns the travel cost between nodes i and j.
func (m *DistanceMatrix) Cost(i, j int) float64 { return m.cost[i*m.dim+j] }

// SetCost sets the cost of one directed entry. Symmetry is the caller's
// responsibility and is checked by Validate.
func (m *DistanceMatrix) SetCost(i, j int, cost float64) { m.cost[i*m.dim+j] = cost }

// Validate checks that the matrix describes a usable symmetric cost model:
// zero diagonal, no missing (NaN) or negative entries, and cost(i,j) equal
// to cost(j,i). Any violation wraps ErrMalformedInput.
func (m *DistanceMatrix) Validate() error {
	if m.dim < 2 {
		return fmt.Errorf("validate matrix: dimension %d too small: %w", m.dim, ErrMalformedInput)
	}
	for i := 0; i < m.dim; i++ {
		if m.Cost(i, i) != 0 {
			return fmt.Errorf("validate matrix: diagonal entry (%d,%d) = %g, want 0: %w", i, i, m.Cost(i, i), ErrMalformedInput)
		}
		for j := i + 1; j < m.dim; j++ {
			ij, ji := m.Cost(i, j), m.Cost(j, i)
			if math.IsNaN(ij) || math.IsNaN(ji) {
				return fmt.Errorf("validate matrix: missing cost for pair (%d,%d): %w", i, j, ErrMalformedInput)
			}
			if ij < 0 || ji < 0 {
				return fmt.Errorf("validate matrix: negative cost for pair (%d,%d): %w", i, j, ErrMalformedInput)
			}
			if ij != ji {
				return fmt.Errorf("validate matrix: asymmetric entries (%d,%d)=%g and (%d,%d)=%g: %w", i, j, ij, j, i, ji, ErrMalformedInput)
			}
		}
	}
	return nil
}
