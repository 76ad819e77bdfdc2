package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"fleet-route-solver/internal/api/dto"
	"fleet-route-solver/internal/domain"
	"fleet-route-solver/internal/platform/obs"
	"fleet-route-solver/internal/ports"
	"fleet-route-solver/internal/solver"
)

type SolveHandler struct {
	Repo  ports.InstanceRepository
	Cache ports.SolutionCache
}

// Solve runs a multi-start savings search for a stored or inline instance.
// It coordinates instance lookup, the solution cache, and the search itself.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SolveRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.Trials == 0 {
		req.Trials = 1
	}
	if req.Trials < 1 || req.Trials > 100000 {
		writeError(w, r, http.StatusBadRequest, "trials must be between 1 and 100000")
		return
	}
	if req.Policy == "" {
		req.Policy = "deterministic"
	}
	if req.Distribution == "" {
		req.Distribution = string(solver.DistGeometric)
	}

	policy, err := solver.NewPolicy(req.Policy, solver.Distribution(req.Distribution), req.BiasParameter)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// A missing seed means a fresh random search; such runs are not
	// replayable and bypass the cache.
	seeded := req.RandomSeed != nil
	var seed uint64
	if seeded {
		seed = *req.RandomSeed
	} else {
		seed = uint64(time.Now().UnixNano())
	}

	var (
		matrix   *domain.DistanceMatrix
		demands  []float64
		capacity float64
	)

	name := strings.TrimSpace(req.Instance)
	switch {
	case name != "":
		if h.Repo == nil {
			writeError(w, r, http.StatusBadRequest, "no instance repository configured")
			return
		}
		inst, err := h.Repo.GetInstance(r.Context(), name)
		if err != nil {
			log.Printf("get instance failed: %v", err)
			writeError(w, r, http.StatusNotFound, fmt.Sprintf("instance %q not found", name))
			return
		}
		if err := inst.Validate(); err != nil {
			writeInstanceError(w, r, err)
			return
		}
		matrix = domain.MatrixFromNodes(inst.Nodes)
		demands = inst.Demands()
		capacity = inst.Capacity
	case len(req.Matrix) > 0:
		matrix, err = domain.MatrixFromRows(req.Matrix)
		if err != nil {
			writeInstanceError(w, r, err)
			return
		}
		demands = req.Demands
		capacity = req.Capacity
	default:
		writeError(w, r, http.StatusBadRequest, "either instance or matrix is required")
		return
	}

	cfg := solver.Config{
		Trials:       req.Trials,
		Policy:       policy,
		Capacity:     capacity,
		MaxRouteCost: req.MaxRouteCost,
		Seed:         seed,
		Workers:      req.Workers,
	}

	// Seeded searches over stored instances are deterministic, so their
	// results can be served from cache.
	cacheKey := ""
	if h.Cache != nil && seeded && name != "" {
		cacheKey = SolveCacheKey(name, req, seed)
		cached, err := h.Cache.Get(r.Context(), cacheKey)
		if err != nil {
			log.Printf("solution cache get failed: %v", err)
		} else if cached != nil {
			writeJSON(w, r, http.StatusOK, solveResponse(name, req.Policy, cached.Best, cached.History, bestTrialOf(cached.History, cached.Best.Cost), true))
			return
		}
	}

	var res *solver.Result
	func() {
		var err error
		defer obs.Time(r.Context(), "solver.search")(&err)
		res, err = solver.Search(r.Context(), matrix, demands, cfg)
		if err != nil {
			writeInstanceError(w, r, err)
		}
	}()
	if res == nil {
		return
	}

	if cacheKey != "" {
		if err := h.Cache.Put(r.Context(), cacheKey, ports.CachedResult{Best: res.Best, History: res.History}); err != nil {
			log.Printf("solution cache put failed: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, solveResponse(name, req.Policy, res.Best, res.History, res.BestTrial, false))
}

// SolveCacheKey encodes everything that determines a seeded search outcome.
func SolveCacheKey(instance string, req dto.SolveRequest, seed uint64) string {
	return fmt.Sprintf("%s|%s|%s|%g|%d|%g|%d",
		instance, req.Policy, req.Distribution, req.BiasParameter, req.Trials, req.MaxRouteCost, seed)
}

// writeInstanceError maps solver failure classes onto HTTP statuses:
// bad configuration or malformed input is the caller's fault, an infeasible
// instance is a semantically valid but unservable request.
func writeInstanceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, solver.ErrConfiguration), errors.Is(err, domain.ErrMalformedInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInfeasibleInstance):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("solve failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func solveResponse(instance, policy string, best domain.Solution, history []float64, bestTrial int, cached bool) dto.SolveResponse {
	routes := make([]dto.RouteResponse, 0, len(best.Routes))
	for _, rt := range best.Routes {
		routes = append(routes, dto.RouteResponse{
			Customers: rt.Customers,
			Demand:    rt.Demand,
			Distance:  rt.Distance,
		})
	}
	return dto.SolveResponse{
		Instance:   instance,
		Policy:     policy,
		BestCost:   best.Cost,
		BestTrial:  bestTrial,
		Routes:     routes,
		TrialCosts: history,
		Cached:     cached,
	}
}

func bestTrialOf(history []float64, bestCost float64) int {
	for i, c := range history {
		if c == bestCost {
			return i
		}
	}
	return 0
}
