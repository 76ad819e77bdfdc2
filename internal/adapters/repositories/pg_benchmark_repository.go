package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// BenchmarkRun is one solver configuration evaluated over one instance.
type BenchmarkRun struct {
	Instance      string
	Policy        string
	Distribution  string
	BiasParameter float64
	Trials        int
	Seed          uint64
	BestCost      float64
	ReferenceCost float64
	Elapsed       time.Duration
}

// Postgres-backed store for benchmark sweep results.
type PgBenchmarkRepository struct{ DB *sql.DB }

func NewPgBenchmarkRepository(db *sql.DB) *PgBenchmarkRepository {
	return &PgBenchmarkRepository{DB: db}
}

// Initialize the benchmark_runs table.
func (p *PgBenchmarkRepository) InitSchema(ctx context.Context) error {
	if p.DB == nil {
		return errors.New("benchmark repository: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS benchmark_runs (
		id BIGSERIAL PRIMARY KEY,
		instance TEXT NOT NULL,
		policy TEXT NOT NULL,
		distribution TEXT NOT NULL,
		bias_parameter DOUBLE PRECISION NOT NULL,
		trials INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		best_cost DOUBLE PRECISION NOT NULL,
		reference_cost DOUBLE PRECISION NOT NULL,
		elapsed_ms BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`
	if _, err := p.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("benchmark repository: init schema: %w", err)
	}
	return nil
}

// Persist one sweep result row.
func (p *PgBenchmarkRepository) InsertRun(ctx context.Context, run BenchmarkRun) error {
	if p.DB == nil {
		return errors.New("benchmark repository: DB is nil")
	}

	query := `
	INSERT INTO benchmark_runs (
		instance,
		policy,
		distribution,
		bias_parameter,
		trials,
		seed,
		best_cost,
		reference_cost,
		elapsed_ms
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := p.DB.ExecContext(ctx, query,
		run.Instance,
		run.Policy,
		run.Distribution,
		run.BiasParameter,
		run.Trials,
		int64(run.Seed),
		run.BestCost,
		run.ReferenceCost,
		run.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("benchmark repository: insert run instance=%q: %w", run.Instance, err)
	}
	return nil
}
