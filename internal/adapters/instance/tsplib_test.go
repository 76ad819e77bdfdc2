package instance

import (
	"os"
	"path/filepath"
	"testing"
)

const tsplibFixture = `NAME : toy-n5-k2
COMMENT : hand-built fixture
TYPE : CVRP
DIMENSION : 5
EDGE_WEIGHT_TYPE : EUC_2D
CAPACITY : 100
NODE_COORD_SECTION
1 30 40
2 37 52
3 49 49
4 52 64
5 31 62
DEMAND_SECTION
1 0
2 7
3 30
4 16
5 23
DEPOT_SECTION
 1
 -1
EOF
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.vrp")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestParseTSPLIB(t *testing.T) {
	inst, err := ParseTSPLIB(writeFixture(t, tsplibFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inst.Name != "toy-n5-k2" {
		t.Fatalf("name = %q, want toy-n5-k2", inst.Name)
	}
	if inst.Capacity != 100 {
		t.Fatalf("capacity = %g, want 100", inst.Capacity)
	}
	if len(inst.Nodes) != 5 {
		t.Fatalf("nodes = %d, want 5", len(inst.Nodes))
	}

	depot := inst.Nodes[0]
	if depot.X != 30 || depot.Y != 40 || depot.Demand != 0 {
		t.Fatalf("depot = %+v, want (30,40) demand 0", depot)
	}

	// File node 3 becomes customer 2 after rebasing.
	second := inst.Nodes[2]
	if second.X != 49 || second.Y != 49 || second.Demand != 30 {
		t.Fatalf("customer 2 = %+v, want (49,49) demand 30", second)
	}

	if err := inst.Validate(); err != nil {
		t.Fatalf("parsed instance invalid: %v", err)
	}
}

func TestParseTSPLIBRejectsUnsupportedWeights(t *testing.T) {
	fixture := `NAME : explicit
DIMENSION : 3
EDGE_WEIGHT_TYPE : EXPLICIT
CAPACITY : 10
EOF
`
	if _, err := ParseTSPLIB(writeFixture(t, fixture)); err == nil {
		t.Fatal("expected error for EXPLICIT edge weights")
	}
}

func TestParseTSPLIBMissingCoordinates(t *testing.T) {
	fixture := `NAME : short
DIMENSION : 4
EDGE_WEIGHT_TYPE : EUC_2D
CAPACITY : 10
NODE_COORD_SECTION
1 0 0
2 1 1
DEMAND_SECTION
1 0
2 1
EOF
`
	if _, err := ParseTSPLIB(writeFixture(t, fixture)); err == nil {
		t.Fatal("expected error for missing coordinates")
	}
}

func TestParseNodesFile(t *testing.T) {
	content := "0.0 0.0 0.0\n1.0 1.0 2.0\n-1.0 2.0 3.0\n"
	path := filepath.Join(t.TempDir(), "toy_input_nodes.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	inst, err := ParseNodesFile(path, "toy", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inst.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(inst.Nodes))
	}
	if inst.Nodes[0].Demand != 0 {
		t.Fatalf("depot demand = %g, want 0", inst.Nodes[0].Demand)
	}
	if inst.Nodes[2].X != -1 || inst.Nodes[2].Demand != 3 {
		t.Fatalf("node 2 = %+v, want x=-1 demand=3", inst.Nodes[2])
	}
}

func TestLoadCapacityTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "veh_capacity.txt")
	if err := os.WriteFile(path, []byte("A-n32-k5,100\nP-n16-k8,35\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	capacities, err := LoadCapacityTable(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capacities["A-n32-k5"] != 100 || capacities["P-n16-k8"] != 35 {
		t.Fatalf("unexpected capacities: %v", capacities)
	}
}
