// Package scores exposes the weighted composite scores over HTTP. Each
// request refreshes the entity, parses the year-range expression, and runs
// the statistics and scoring layers on the fly; nothing is persisted.
package scores

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fundamental_metrics/pkg/core/scoring"
	"fundamental_metrics/pkg/core/stats"
	"fundamental_metrics/pkg/core/store"
	"fundamental_metrics/pkg/models"
)

// Refresher recomputes one entity's derived series.
type Refresher interface {
	RefreshEntity(ctx context.Context, ticker string) error
}

// FactReader is the fact-store slice the score computation needs.
type FactReader interface {
	SeriesBundle(ctx context.Context, ticker string, metrics []string) (map[string]models.AnnualSeries, error)
	ListYears(ctx context.Context, ticker string) ([]int, error)
}

// WeightSource loads the configured weight sets.
type WeightSource interface {
	Weights(ctx context.Context, kind string) (scoring.WeightSet, error)
}

// Handler holds dependencies for the score endpoints.
type Handler struct {
	Refresher Refresher
	Store     FactReader
	Config    WeightSource
}

// NewHandler creates a new scores handler.
func NewHandler(refresher Refresher, facts FactReader, config WeightSource) *Handler {
	return &Handler{Refresher: refresher, Store: facts, Config: config}
}

// scoreInputMetrics is every series the three section scores read.
var scoreInputMetrics = []string{
	models.MetricAccumulatedProfit,
	models.MetricROE,
	models.MetricROCE,
	models.MetricInterestLoadPct,
	models.MetricRevenue,
	models.MetricPretaxIncome,
	models.MetricNetIncome,
	models.MetricNOPAT,
	models.MetricOperatingMargin,
	models.MetricFCFF,
	models.MetricROICWACCSpread,
	models.MetricAnnualPriceChange,
}

// Fixed windows for the price statistics block.
var priceWindows = []stats.YearRange{
	{Start: 2025, End: 2020},
	{Start: 2020, End: 2015},
	{Start: 2015, End: 2010},
}

const gainThreshold = 0.15

var gainWindow = stats.YearRange{Start: 2025, End: 2010}

type PriceWindow struct {
	Range stats.YearRange `json:"range"`
	CAGR  *float64        `json:"cagr"`
}

type PriceStats struct {
	Windows       []PriceWindow `json:"windows"`
	GainYearShare *float64      `json:"gain_year_share"`
}

type Response struct {
	RequestID      string               `json:"request_id"`
	Ticker         string               `json:"ticker"`
	Range          stats.YearRange      `json:"range"`
	Mode           string               `json:"mode"`
	BalanceSheet   scoring.SectionScore `json:"balance_sheet"`
	ProfitLoss     scoring.SectionScore `json:"profit_loss"`
	CashFlowSpread scoring.SectionScore `json:"cash_flow_spread"`
	Totals         scoring.TotalScores  `json:"totals"`
	Prices         PriceStats           `json:"prices"`
}

// HandleScores serves GET /api/scores?ticker=ACME&range=Recent%20-%202015&mode=sample.
func (h *Handler) HandleScores(w http.ResponseWriter, r *http.Request) {
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
	rangeExpr := r.URL.Query().Get("range")
	if rangeExpr == "" {
		http.Error(w, "Missing range parameter", http.StatusBadRequest)
		return
	}

	mode := stats.Sample
	modeName := r.URL.Query().Get("mode")
	switch modeName {
	case "", "sample":
		modeName = "sample"
	case "population":
		mode = stats.Population
	default:
		http.Error(w, "Invalid mode: want sample or population", http.StatusBadRequest)
		return
	}

	requestID := uuid.NewString()
	ctx := r.Context()

	if err := h.Refresher.RefreshEntity(ctx, ticker); err != nil {
		log.Warn().Err(err).Str("request_id", requestID).Str("ticker", ticker).Msg("Refresh failed")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	years, err := h.Store.ListYears(ctx, ticker)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	yearRange, err := stats.ParseYearRange(rangeExpr, years)
	if err != nil {
		var perr *stats.ParseError
		if errors.As(err, &perr) {
			http.Error(w, perr.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	yearRange = yearRange.Normalize()

	bundle, err := h.Store.SeriesBundle(ctx, ticker, scoreInputMetrics)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	growthWeights, err := h.Config.Weights(ctx, store.WeightKindGrowth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	stddevWeights, err := h.Config.Weights(ctx, store.WeightKindStddev)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	in := scoring.Inputs{
		Series: bundle,
		Growth: growthWeights,
		Stddev: stddevWeights,
		Range:  yearRange,
		Mode:   mode,
	}
	bs := scoring.BalanceSheetScore(in)
	pl := scoring.ProfitLossScore(in)
	cf := scoring.CashFlowSpreadScore(in)

	priceChanges := bundle[models.MetricAnnualPriceChange]
	prices := PriceStats{GainYearShare: stats.GainYearShare(priceChanges, gainWindow, gainThreshold)}
	for _, window := range priceWindows {
		prices.Windows = append(prices.Windows, PriceWindow{
			Range: window,
			CAGR:  stats.PriceCAGR(priceChanges, window),
		})
	}

	resp := Response{
		RequestID:      requestID,
		Ticker:         ticker,
		Range:          yearRange,
		Mode:           modeName,
		BalanceSheet:   bs,
		ProfitLoss:     pl,
		CashFlowSpread: cf,
		Totals:         scoring.Totals(bs, pl, cf),
		Prices:         prices,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
