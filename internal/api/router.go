package api

import (
	"net/http"

	"fleet-route-solver/internal/api/handlers"
	"fleet-route-solver/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.InstanceRepository, cache ports.SolutionCache) http.Handler {
	mux := http.NewServeMux()

	instHandler := &handlers.InstanceHandler{Repo: repo}
	solveHandler := &handlers.SolveHandler{
		Repo:  repo,
		Cache: cache,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/instances", instHandler.List)
	mux.HandleFunc("/solve", solveHandler.Solve)

	return loggingMiddleware(mux)
}
