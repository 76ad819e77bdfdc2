package domain

import "fmt"

// Node is a single location in a problem instance. ID 0 is the depot by
// convention; customers are 1..N. The depot carries zero demand.
type Node struct {
	ID     int
	X      float64
	Y      float64
	Demand float64
}

// Instance is a complete CVRP problem: depot plus customers and the
// homogeneous vehicle capacity. Nodes are indexed by ID, depot first.
// It is immutable planning data and contains no side effects.
type Instance struct {
	Name     string
	Nodes    []Node
	Capacity float64
}

// Demands returns the per-node demand vector indexed by node ID.
func (in *Instance) Demands() []float64 {
	demands := make([]float64, len(in.Nodes))
	for i, n := range in.Nodes {
		demands[i] = n.Demand
	}
	return demands
}

// Validate checks structural soundness of the instance before any solver
// work: depot present with zero demand, positive capacity, and no customer
// whose individual demand exceeds capacity.
func (in *Instance) Validate() error {
	if len(in.Nodes) < 2 {
		return fmt.Errorf("validate instance %q: need a depot and at least one customer: %w", in.Name, ErrMalformedInput)
	}
	if in.Capacity <= 0 {
		return fmt.Errorf("validate instance %q: capacity must be positive, got %g: %w", in.Name, in.Capacity, ErrMalformedInput)
	}
	if in.Nodes[0].Demand != 0 {
		return fmt.Errorf("validate instance %q: depot demand must be zero, got %g: %w", in.Name, in.Nodes[0].Demand, ErrMalformedInput)
	}
	for _, n := range in.Nodes[1:] {
		if n.Demand < 0 {
			return fmt.Errorf("validate instance %q: node %d has negative demand %g: %w", in.Name, n.ID, n.Demand, ErrMalformedInput)
		}
		if n.Demand > in.Capacity {
			return fmt.Errorf("validate instance %q: node %d demand %g exceeds vehicle capacity %g: %w",
				in.Name, n.ID, n.Demand, in.Capacity, ErrInfeasibleInstance)
		}
	}
	return nil
}
