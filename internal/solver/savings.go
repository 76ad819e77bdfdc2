package solver

import (
	"fmt"
	"slices"

	"fleet-route-solver/internal/domain"
)

// Saving is the distance saved by serving customers I and J on one route
// instead of two separate depot round-trips:
//
//	value = cost(depot,I) + cost(depot,J) - cost(I,J)
//
// A saving stays meaningful only while I and J are both route endpoints.
type Saving struct {
	I     int
	J     int
	Value float64
}

// ComputeSavings builds the Clarke-Wright savings list for every unordered
// customer pair, sorted descending by value. Ties break on ascending (I, J)
// so repeated builds from the same matrix are identical. The result is
// immutable for the duration of a search; selection policies copy it per
// trial rather than mutate it.
func ComputeSavings(m *domain.DistanceMatrix, depot int) ([]Saving, error) {
	if depot < 0 || depot >= m.Dim() {
		return nil, fmt.Errorf("compute savings: depot %d out of range for %d nodes: %w", depot, m.Dim(), domain.ErrMalformedInput)
	}

	n := m.Dim()
	savings := make([]Saving, 0, (n-1)*(n-2)/2)
	for i := 0; i < n; i++ {
		if i == depot {
			continue
		}
		for j := i + 1; j < n; j++ {
			if j == depot {
				continue
			}
			savings = append(savings, Saving{
				I:     i,
				J:     j,
				Value: m.Cost(depot, i) + m.Cost(depot, j) - m.Cost(i, j),
			})
		}
	}

	slices.SortFunc(savings, func(a, b Saving) int {
		if a.Value > b.Value {
			return -1
		}
		if a.Value < b.Value {
			return 1
		}
		if a.I != b.I {
			return a.I - b.I
		}
		return a.J - b.J
	})

	return savings, nil
}
