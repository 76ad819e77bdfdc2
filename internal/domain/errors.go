package domain

import "errors"

var (
	// ErrMalformedInput indicates a distance matrix or demand vector that
	// cannot describe a valid problem instance (missing entry, negative
	// cost, asymmetry).
	ErrMalformedInput = errors.New("domain: malformed input")
	// ErrInfeasibleInstance indicates an instance no solution can serve,
	// e.g. a single customer whose demand exceeds vehicle capacity.
	ErrInfeasibleInstance = errors.New("domain: infeasible instance")
)
