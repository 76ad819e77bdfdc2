package handlers

import (
	"log"
	"net/http"

	"fleet-route-solver/internal/api/dto"
	"fleet-route-solver/internal/ports"
)

// InstanceHandler exposes read-only instance retrieval endpoints.
type InstanceHandler struct {
	Repo ports.InstanceRepository
}

func (h *InstanceHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	summaries, err := h.Repo.ListInstances(r.Context())
	if err != nil {
		log.Printf("list instances failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListInstancesResponse{
		Instances: make([]dto.InstanceResponse, 0, len(summaries)),
	}
	for _, s := range summaries {
		res.Instances = append(res.Instances, dto.InstanceResponse{
			Name:      s.Name,
			Customers: s.Customers,
			Capacity:  s.Capacity,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
