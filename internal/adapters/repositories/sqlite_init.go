package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createInstancesQuery := `
	CREATE TABLE IF NOT EXISTS instances (
		name TEXT PRIMARY KEY,
		capacity REAL NOT NULL
	);
	`

	createNodesQuery := `
	CREATE TABLE IF NOT EXISTS instance_nodes (
		instance_name TEXT NOT NULL,
		node_id INTEGER NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		demand REAL NOT NULL,
		PRIMARY KEY (instance_name, node_id)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_instance_nodes_name
	ON instance_nodes(instance_name);
	`

	statements := []string{
		createInstancesQuery,
		createNodesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type NodeSeed struct {
	NodeID int     `json:"node_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Demand float64 `json:"demand"`
}

type InstanceSeed struct {
	Name     string     `json:"name"`
	Capacity float64    `json:"capacity"`
	Nodes    []NodeSeed `json:"nodes"`
}

// Populate the database with instance data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed instances: read %q: %w", jsonPath, err)
	}

	var data []InstanceSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed instances: parse json: %w", err)
	}

	for i, inst := range data {
		if strings.TrimSpace(inst.Name) == "" {
			return fmt.Errorf("seed instances: item at index %d: name cannot be empty", i+1)
		}
		if inst.Capacity <= 0 {
			return fmt.Errorf("seed instances: %q: capacity must be positive, got %g", inst.Name, inst.Capacity)
		}
		if len(inst.Nodes) < 2 {
			return fmt.Errorf("seed instances: %q: need a depot and at least one customer", inst.Name)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed instances: begin tx: %w", err)
	}
	defer tx.Rollback()

	instStmt, err := tx.Prepare(`INSERT OR REPLACE INTO instances (name, capacity) VALUES (?, ?);`)
	if err != nil {
		return fmt.Errorf("seed instances: prepare instance insert: %w", err)
	}
	defer instStmt.Close()

	nodeStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO instance_nodes (
		instance_name,
		node_id,
		x,
		y,
		demand
	)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed instances: prepare node insert: %w", err)
	}
	defer nodeStmt.Close()

	for _, inst := range data {
		if _, err := instStmt.Exec(inst.Name, inst.Capacity); err != nil {
			return fmt.Errorf("seed instances: insert %q: %w", inst.Name, err)
		}
		for _, n := range inst.Nodes {
			if _, err := nodeStmt.Exec(inst.Name, n.NodeID, n.X, n.Y, n.Demand); err != nil {
				return fmt.Errorf("seed instances: insert %q node %d: %w", inst.Name, n.NodeID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed instances: commit tx: %w", err)
	}

	return nil
}
