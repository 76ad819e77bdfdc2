package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleet-route-solver/internal/domain"
	"fleet-route-solver/internal/ports"
)

// SQLite-backed implementation of the InstanceRepository port.
type SqliteInstanceRepository struct{ DB *sql.DB }

func NewSqliteInstanceRepository(db *sql.DB) *SqliteInstanceRepository {
	return &SqliteInstanceRepository{DB: db}
}

// Return name, customer count and capacity for every stored instance.
func (s *SqliteInstanceRepository) ListInstances(ctx context.Context) ([]ports.InstanceSummary, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite instance repository: DB is nil")
	}

	query := `
	SELECT
		i.name,
		i.capacity,
		COUNT(n.node_id) - 1 AS customers
	FROM instances i
	JOIN instance_nodes n ON n.instance_name = i.name
	GROUP BY i.name, i.capacity
	ORDER BY i.name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list instances: query instances table: %w", err)
	}
	defer rows.Close()

	summaries := make([]ports.InstanceSummary, 0, 16)
	for rows.Next() {
		var sum ports.InstanceSummary
		if err := rows.Scan(&sum.Name, &sum.Capacity, &sum.Customers); err != nil {
			return nil, fmt.Errorf("list instances: scan row: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list instances: row iteration: %w", err)
	}

	return summaries, nil
}

// Return one full instance with nodes ordered by ID (depot first).
func (s *SqliteInstanceRepository) GetInstance(ctx context.Context, name string) (*domain.Instance, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite instance repository: DB is nil")
	}

	var capacity float64
	err := s.DB.QueryRowContext(ctx, `SELECT capacity FROM instances WHERE name = ?;`, name).Scan(&capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get instance: %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("get instance: query instances table: %w", err)
	}

	query := `
	SELECT
		node_id,
		x,
		y,
		demand
	FROM instance_nodes
	WHERE instance_name = ?
	ORDER BY node_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("get instance: query instance_nodes table: %w", err)
	}
	defer rows.Close()

	nodes := make([]domain.Node, 0, 64)
	for rows.Next() {
		var n domain.Node
		if err := rows.Scan(&n.ID, &n.X, &n.Y, &n.Demand); err != nil {
			return nil, fmt.Errorf("get instance: scan row: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get instance: row iteration: %w", err)
	}

	return &domain.Instance{Name: name, Nodes: nodes, Capacity: capacity}, nil
}
