package solver

import (
	"slices"

	"fleet-route-solver/internal/domain"
)

// route is one in-progress route during a construction trial. Customers run
// head to tail; the depot legs at both ends are included in cost but not in
// the customer slice.
type route struct {
	customers []int
	demand    float64
	cost      float64
}

func (r *route) head() int { return r.customers[0] }
func (r *route) tail() int { return r.customers[len(r.customers)-1] }

// routeSet is the mutable construction state of one trial: the current
// partition of customers into routes. It starts as singleton depot-customer
// round-trips and shrinks through accepted merges. A routeSet is created per
// trial and never shared.
type routeSet struct {
	matrix    *domain.DistanceMatrix
	depot     int
	capacity  float64
	maxCost   float64 // optional per-route distance limit, 0 means unlimited
	routes    map[*route]struct{}
	nodeRoute []*route // customer ID -> owning route, nil for the depot
}

func newRouteSet(m *domain.DistanceMatrix, depot int, demands []float64, capacity, maxCost float64) *routeSet {
	rs := &routeSet{
		matrix:    m,
		depot:     depot,
		capacity:  capacity,
		maxCost:   maxCost,
		routes:    make(map[*route]struct{}, m.Dim()-1),
		nodeRoute: make([]*route, m.Dim()),
	}
	for id := 0; id < m.Dim(); id++ {
		if id == depot {
			continue
		}
		r := &route{
			customers: []int{id},
			demand:    demands[id],
			cost:      2 * m.Cost(depot, id),
		}
		rs.routes[r] = struct{}{}
		rs.nodeRoute[id] = r
	}
	return rs
}

// tryMerge attempts to join the routes holding s.I and s.J at that edge.
// Legality is checked in order, short-circuiting on the first failure:
// distinct routes, both nodes endpoints, combined demand within capacity,
// and the optional per-route distance limit. On failure the routeSet is
// untouched and the candidate is simply skipped; on success the two routes
// become one, with s.I and s.J adjacent and the remaining original
// endpoints as the new head and tail.
func (rs *routeSet) tryMerge(s Saving) bool {
	ri, rj := rs.nodeRoute[s.I], rs.nodeRoute[s.J]
	if ri == rj {
		return false
	}
	if (ri.head() != s.I && ri.tail() != s.I) || (rj.head() != s.J && rj.tail() != s.J) {
		return false
	}
	if ri.demand+rj.demand > rs.capacity {
		return false
	}

	// Dropping the two depot legs and adding the i-j edge reduces the
	// combined cost by exactly the saving value.
	merged := ri.cost + rj.cost - s.Value
	if rs.maxCost > 0 && merged > rs.maxCost {
		return false
	}

	// Orient so s.I sits at ri's tail and s.J at rj's head; reversal is
	// cost-neutral on a symmetric matrix.
	if ri.head() == s.I {
		slices.Reverse(ri.customers)
	}
	if rj.tail() == s.J {
		slices.Reverse(rj.customers)
	}

	ri.customers = append(ri.customers, rj.customers...)
	ri.demand += rj.demand
	ri.cost = merged
	for _, id := range rj.customers {
		rs.nodeRoute[id] = ri
	}
	delete(rs.routes, rj)
	return true
}

// solution freezes the current partition into an immutable Solution. Routes
// are ordered by head customer ID so identical partitions always render
// identically.
func (rs *routeSet) solution() domain.Solution {
	sol := domain.Solution{Routes: make([]domain.Route, 0, len(rs.routes)), Valid: true}
	for r := range rs.routes {
		sol.Routes = append(sol.Routes, domain.Route{
			Customers: slices.Clone(r.customers),
			Demand:    r.demand,
			Distance:  r.cost,
		})
		sol.Cost += r.cost
		if r.demand > rs.capacity {
			sol.Valid = false
		}
	}
	slices.SortFunc(sol.Routes, func(a, b domain.Route) int { return a.Head() - b.Head() })
	return sol
}

// construct runs one full trial: it consumes candidates from the stream in
// the order the selection policy dictates, merging every legal one, until
// the stream is exhausted.
func construct(rs *routeSet, stream CandidateStream) domain.Solution {
	for {
		s, ok := stream.Next()
		if !ok {
			return rs.solution()
		}
		rs.tryMerge(s)
	}
}
