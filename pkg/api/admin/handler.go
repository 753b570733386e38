// Package admin exposes the weight-factor tables for the administrative
// collaborator. Names are canonicalized at this boundary; the core only ever
// sees canonical factors.
package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"fundamental_metrics/pkg/core/scoring"
	"fundamental_metrics/pkg/core/store"
)

// WeightStore reads and writes the weight-factor tables.
type WeightStore interface {
	Weights(ctx context.Context, kind string) (scoring.WeightSet, error)
	SetWeight(ctx context.Context, kind, name string, weight float64) error
}

// Handler holds dependencies for the admin endpoints.
type Handler struct {
	Config WeightStore
}

// NewHandler creates a new admin handler.
func NewHandler(config WeightStore) *Handler {
	return &Handler{Config: config}
}

type WeightsResponse struct {
	Growth scoring.WeightSet `json:"growth"`
	Stddev scoring.WeightSet `json:"stddev"`
}

type UpdateRequest struct {
	Kind   string  `json:"kind"` // "growth" or "stddev"
	Factor string  `json:"factor"`
	Weight float64 `json:"weight"`
}

// HandleWeights serves GET and POST /api/admin/weights.
func (h *Handler) HandleWeights(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	growth, err := h.Config.Weights(ctx, store.WeightKindGrowth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	stddev, err := h.Config.Weights(ctx, store.WeightKindStddev)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(WeightsResponse{Growth: growth, Stddev: stddev})
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Kind != store.WeightKindGrowth && req.Kind != store.WeightKindStddev {
		http.Error(w, "Invalid kind: want growth or stddev", http.StatusBadRequest)
		return
	}

	if err := h.Config.SetWeight(r.Context(), req.Kind, req.Factor, req.Weight); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
