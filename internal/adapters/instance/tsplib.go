// Package instance loads CVRP problem instances from the two on-disk
// formats the solver understands: CVRP-flavored TSPLIB files and plain
// whitespace node files.
package instance

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fleet-route-solver/internal/domain"
)

// ParseTSPLIB reads a CVRP instance in TSPLIB format: NAME, DIMENSION and
// CAPACITY headers followed by NODE_COORD_SECTION, DEMAND_SECTION and an
// optional DEPOT_SECTION. Only EUC_2D edge weights are supported; node IDs
// are rebased so the depot is 0 and customers are 1..N.
func ParseTSPLIB(path string) (*domain.Instance, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parse tsplib: %w", err)
	}
	defer file.Close()

	var (
		name      string
		dimension int
		capacity  float64
		depot     = 1 // TSPLIB numbers nodes from 1
		coords    = map[int][2]float64{}
		demands   = map[int]float64{}
	)

	const (
		sectionNone = iota
		sectionCoords
		sectionDemands
		sectionDepot
	)
	section := sectionNone

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "EOF" {
			break
		}

		if key, value, ok := strings.Cut(line, ":"); ok && !strings.HasPrefix(line, "-") {
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			switch key {
			case "NAME":
				name = value
			case "DIMENSION":
				dimension, err = strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("parse tsplib %q: bad DIMENSION %q: %w", path, value, err)
				}
			case "CAPACITY":
				capacity, err = strconv.ParseFloat(value, 64)
				if err != nil {
					return nil, fmt.Errorf("parse tsplib %q: bad CAPACITY %q: %w", path, value, err)
				}
			case "EDGE_WEIGHT_TYPE":
				if value != "EUC_2D" {
					return nil, fmt.Errorf("parse tsplib %q: unsupported edge weight type %q", path, value)
				}
			}
			continue
		}

		switch line {
		case "NODE_COORD_SECTION":
			section = sectionCoords
			continue
		case "DEMAND_SECTION":
			section = sectionDemands
			continue
		case "DEPOT_SECTION":
			section = sectionDepot
			continue
		}

		fields := strings.Fields(line)
		switch section {
		case sectionCoords:
			if len(fields) != 3 {
				return nil, fmt.Errorf("parse tsplib %q: bad coord line %q", path, line)
			}
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("parse tsplib %q: bad node id %q: %w", path, fields[0], err)
			}
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			if errX != nil || errY != nil {
				return nil, fmt.Errorf("parse tsplib %q: bad coordinates in %q", path, line)
			}
			coords[id] = [2]float64{x, y}
		case sectionDemands:
			if len(fields) != 2 {
				return nil, fmt.Errorf("parse tsplib %q: bad demand line %q", path, line)
			}
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("parse tsplib %q: bad node id %q: %w", path, fields[0], err)
			}
			d, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("parse tsplib %q: bad demand in %q: %w", path, line, err)
			}
			demands[id] = d
		case sectionDepot:
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("parse tsplib %q: bad depot id %q: %w", path, fields[0], err)
			}
			if id > 0 {
				depot = id
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse tsplib %q: %w", path, err)
	}

	if dimension == 0 {
		dimension = len(coords)
	}
	if len(coords) != dimension {
		return nil, fmt.Errorf("parse tsplib %q: %d coordinates for dimension %d", path, len(coords), dimension)
	}

	// Depot first, then customers in file order.
	nodes := make([]domain.Node, 0, dimension)
	appendNode := func(id int) error {
		c, ok := coords[id]
		if !ok {
			return fmt.Errorf("parse tsplib %q: missing coordinates for node %d", path, id)
		}
		nodes = append(nodes, domain.Node{ID: len(nodes), X: c[0], Y: c[1], Demand: demands[id]})
		return nil
	}
	if err := appendNode(depot); err != nil {
		return nil, err
	}
	for id := 1; id <= dimension; id++ {
		if id == depot {
			continue
		}
		if err := appendNode(id); err != nil {
			return nil, err
		}
	}

	return &domain.Instance{Name: name, Nodes: nodes, Capacity: capacity}, nil
}
