// Package series exposes derived annual series over HTTP with
// compute-then-read semantics: every read triggers a refresh first.
package series

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fundamental_metrics/pkg/models"
)

// Refresher recomputes one entity's derived series.
type Refresher interface {
	RefreshEntity(ctx context.Context, ticker string) error
}

// SeriesReader loads series and metric bundles from the fact store.
type SeriesReader interface {
	GetSeries(ctx context.Context, ticker, metric string) (models.AnnualSeries, error)
	SeriesBundle(ctx context.Context, ticker string, metrics []string) (map[string]models.AnnualSeries, error)
}

// Handler holds dependencies for the series endpoints.
type Handler struct {
	Refresher Refresher
	Store     SeriesReader
}

// NewHandler creates a new series handler.
func NewHandler(refresher Refresher, store SeriesReader) *Handler {
	return &Handler{Refresher: refresher, Store: store}
}

type Response struct {
	RequestID string                         `json:"request_id"`
	Ticker    string                         `json:"ticker"`
	Series    map[string]models.AnnualSeries `json:"series"`
}

// HandleDerived serves GET /api/series/derived?ticker=ACME[&metric=wacc].
// Without a metric it returns every derived series for the ticker.
func (h *Handler) HandleDerived(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		http.Error(w, "Missing ticker parameter", http.StatusBadRequest)
		return
	}

	requestID := uuid.NewString()
	ctx := r.Context()

	// Compute-then-read: idempotent, so a refresh on every read is safe.
	if err := h.Refresher.RefreshEntity(ctx, ticker); err != nil {
		log.Warn().Err(err).Str("request_id", requestID).Str("ticker", ticker).Msg("Refresh failed")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	resp := Response{RequestID: requestID, Ticker: ticker}

	if metric := r.URL.Query().Get("metric"); metric != "" {
		series, err := h.Store.GetSeries(ctx, ticker, metric)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp.Series = map[string]models.AnnualSeries{metric: series}
	} else {
		bundle, err := h.Store.SeriesBundle(ctx, ticker, models.DerivedMetrics)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp.Series = bundle
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
