package solver

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"fleet-route-solver/internal/domain"
)

// Config drives one multi-start search.
type Config struct {
	// Trials is the number of independent construction runs.
	Trials int
	// Policy orders merge candidates within each trial.
	Policy SelectionPolicy
	// Depot is the node ID routes start and end at.
	Depot int
	// Capacity is the homogeneous vehicle capacity.
	Capacity float64
	// MaxRouteCost optionally caps a single route's distance; 0 disables it.
	MaxRouteCost float64
	// Seed is the master seed. Each trial derives its own independent RNG
	// sub-stream from (Seed, trial index), so a fixed seed makes the whole
	// search replayable regardless of Workers.
	Seed uint64
	// Workers bounds concurrent trials; values below 2 run sequentially.
	Workers int
}

// Result is the outcome of a search: the minimum-cost valid solution, the
// trial that produced it, and every trial's cost in trial order for
// convergence analysis.
type Result struct {
	Best      domain.Solution
	BestTrial int
	History   []float64
}

// Search validates the instance once up front, builds the savings table,
// then runs cfg.Trials independent construction trials and reduces them to
// the minimum-cost valid solution. Trials share only the read-only savings
// table and matrix; an invalid trial (over-capacity routes, which cannot
// happen while capacity alone gates merges) is recorded in the history but
// excluded from the reduction.
func Search(ctx context.Context, m *domain.DistanceMatrix, demands []float64, cfg Config) (*Result, error) {
	if cfg.Trials < 1 {
		return nil, fmt.Errorf("search: trials must be positive, got %d: %w", cfg.Trials, ErrConfiguration)
	}
	if cfg.Policy == nil {
		return nil, fmt.Errorf("search: selection policy is required: %w", ErrConfiguration)
	}
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("search: capacity must be positive, got %g: %w", cfg.Capacity, ErrConfiguration)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if len(demands) != m.Dim() {
		return nil, fmt.Errorf("search: %d demands for %d nodes: %w", len(demands), m.Dim(), domain.ErrMalformedInput)
	}
	for id, d := range demands {
		if id == cfg.Depot {
			continue
		}
		if d < 0 {
			return nil, fmt.Errorf("search: node %d has negative demand %g: %w", id, d, domain.ErrMalformedInput)
		}
		if d > cfg.Capacity {
			return nil, fmt.Errorf("search: node %d demand %g exceeds capacity %g: %w", id, d, cfg.Capacity, domain.ErrInfeasibleInstance)
		}
	}

	savings, err := ComputeSavings(m, cfg.Depot)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	runTrial := func(trial int) domain.Solution {
		rng := rand.New(rand.NewPCG(cfg.Seed, uint64(trial)))
		rs := newRouteSet(m, cfg.Depot, demands, cfg.Capacity, cfg.MaxRouteCost)
		return construct(rs, cfg.Policy.Stream(savings, rng))
	}

	solutions := make([]domain.Solution, cfg.Trials)
	if cfg.Workers > 1 {
		sem := make(chan struct{}, cfg.Workers)
		var wg sync.WaitGroup
		for trial := 0; trial < cfg.Trials; trial++ {
			if err := ctx.Err(); err != nil {
				break
			}
			wg.Add(1)
			go func(trial int) {
				sem <- struct{}{}
				defer wg.Done()
				defer func() { <-sem }()
				solutions[trial] = runTrial(trial)
			}(trial)
		}
		wg.Wait()
	} else {
		for trial := 0; trial < cfg.Trials; trial++ {
			if err := ctx.Err(); err != nil {
				break
			}
			solutions[trial] = runTrial(trial)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	// Pure keep-minimum reduction; ties go to the earlier trial so the
	// outcome is independent of worker scheduling.
	res := &Result{BestTrial: -1, History: make([]float64, cfg.Trials)}
	for trial, sol := range solutions {
		res.History[trial] = sol.Cost
		if !sol.Valid {
			continue
		}
		if res.BestTrial < 0 || sol.Cost < res.Best.Cost {
			res.Best = sol
			res.BestTrial = trial
		}
	}
	if res.BestTrial < 0 {
		return nil, fmt.Errorf("search: no trial produced a valid solution")
	}
	return res, nil
}

// SearchInstance runs Search over an instance's Euclidean matrix after
// validating the instance itself.
func SearchInstance(ctx context.Context, in *domain.Instance, cfg Config) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("search instance: %w", err)
	}
	cfg.Depot = 0
	cfg.Capacity = in.Capacity
	return Search(ctx, domain.MatrixFromNodes(in.Nodes), in.Demands(), cfg)
}
