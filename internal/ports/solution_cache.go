package ports

import (
	"context"

	"fleet-route-solver/internal/domain"
)

// CachedResult is a previously computed search outcome.
type CachedResult struct {
	Best    domain.Solution
	History []float64
}

// Port: a boundary for caching search results keyed by instance and solver
// configuration. A miss returns (nil, nil).
type SolutionCache interface {
	Get(ctx context.Context, key string) (*CachedResult, error)
	Put(ctx context.Context, key string, res CachedResult) error
}
