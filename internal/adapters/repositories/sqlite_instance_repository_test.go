package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

const seedFixture = `[
  {
    "name": "square",
    "capacity": 2,
    "nodes": [
      {"node_id": 0, "x": 0, "y": 0, "demand": 0},
      {"node_id": 1, "x": 1, "y": 1, "demand": 1},
      {"node_id": 2, "x": 1, "y": -1, "demand": 1},
      {"node_id": 3, "x": -1, "y": -1, "demand": 1},
      {"node_id": 4, "x": -1, "y": 1, "demand": 1}
    ]
  },
  {
    "name": "pair",
    "capacity": 10,
    "nodes": [
      {"node_id": 0, "x": 0, "y": 0, "demand": 0},
      {"node_id": 1, "x": 3, "y": 4, "demand": 6}
    ]
  }
]`

func seededDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	seedPath := filepath.Join(t.TempDir(), "instances.json")
	if err := os.WriteFile(seedPath, []byte(seedFixture), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if err := SeedFromJSON(db, seedPath); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return db
}

func TestSqliteInstanceRepositoryList(t *testing.T) {
	repo := NewSqliteInstanceRepository(seededDB(t))

	summaries, err := repo.ListInstances(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("instances = %d, want 2", len(summaries))
	}

	// Ordered by name: pair, square.
	if summaries[0].Name != "pair" || summaries[0].Customers != 1 || summaries[0].Capacity != 10 {
		t.Fatalf("unexpected summary: %+v", summaries[0])
	}
	if summaries[1].Name != "square" || summaries[1].Customers != 4 {
		t.Fatalf("unexpected summary: %+v", summaries[1])
	}
}

func TestSqliteInstanceRepositoryGet(t *testing.T) {
	repo := NewSqliteInstanceRepository(seededDB(t))

	inst, err := repo.GetInstance(context.Background(), "square")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inst.Nodes) != 5 {
		t.Fatalf("nodes = %d, want 5", len(inst.Nodes))
	}
	if inst.Nodes[0].ID != 0 || inst.Nodes[0].Demand != 0 {
		t.Fatalf("depot not first: %+v", inst.Nodes[0])
	}
	if inst.Nodes[3].X != -1 || inst.Nodes[3].Y != -1 {
		t.Fatalf("node order broken: %+v", inst.Nodes[3])
	}
	if err := inst.Validate(); err != nil {
		t.Fatalf("stored instance invalid: %v", err)
	}

	if _, err := repo.GetInstance(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown instance")
	}
}
