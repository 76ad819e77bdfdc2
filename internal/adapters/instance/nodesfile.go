package instance

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fleet-route-solver/internal/domain"
)

// ParseNodesFile reads the plain benchmark format: one "x y demand" line per
// node, first line the depot. The vehicle capacity comes from a separate
// capacity table, see LoadCapacityTable.
func ParseNodesFile(path, name string, capacity float64) (*domain.Instance, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parse nodes file: %w", err)
	}
	defer file.Close()

	var nodes []domain.Node
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("parse nodes file %q: line %q needs x, y and demand", path, line)
		}
		vals := make([]float64, 3)
		for i, f := range fields {
			vals[i], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("parse nodes file %q: bad value %q: %w", path, f, err)
			}
		}
		nodes = append(nodes, domain.Node{ID: len(nodes), X: vals[0], Y: vals[1], Demand: vals[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse nodes file %q: %w", path, err)
	}

	return &domain.Instance{Name: name, Nodes: nodes, Capacity: capacity}, nil
}

// LoadCapacityTable reads a CSV of instance name to vehicle capacity rows.
func LoadCapacityTable(path string) (map[string]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load capacity table: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("load capacity table %q: %w", path, err)
	}

	capacities := make(map[string]float64, len(rows))
	for _, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("load capacity table %q: row %v needs name and capacity", path, row)
		}
		c, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("load capacity table %q: bad capacity for %q: %w", path, row[0], err)
		}
		capacities[strings.TrimSpace(row[0])] = c
	}
	return capacities, nil
}
