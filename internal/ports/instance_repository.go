package ports

import (
	"context"

	"fleet-route-solver/internal/domain"
)

// InstanceSummary is the listing view of a stored problem instance.
type InstanceSummary struct {
	Name      string
	Customers int
	Capacity  float64
}

// Port: a boundary for retrieving CVRP instances from a data source.
type InstanceRepository interface {
	// List all instances available for solving.
	ListInstances(ctx context.Context) ([]InstanceSummary, error)
	// Retrieve one instance, depot first, nodes ordered by ID.
	GetInstance(ctx context.Context, name string) (*domain.Instance, error)
}
