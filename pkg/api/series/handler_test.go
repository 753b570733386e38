package series

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundamental_metrics/pkg/core/refresh"
	"fundamental_metrics/pkg/core/store"
	"fundamental_metrics/pkg/models"
)

func TestHandleDerivedComputeThenRead(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemoryStore()
	require.NoError(t, m.UpsertCompany(ctx, models.Company{Ticker: "ACME", Name: "Acme Corp", Country: "USA"}))
	require.NoError(t, m.PutSeries(ctx, "ACME", models.MetricShareholdersEquity,
		models.AnnualSeries{2020: 1000, 2021: 1200}))
	require.NoError(t, m.PutSeries(ctx, "ACME", models.MetricNetIncome,
		models.AnnualSeries{2021: 220}))

	h := NewHandler(refresh.New(m, m), m)

	// The derived series does not exist until the read triggers the refresh.
	req := httptest.NewRequest(http.MethodGet, "/api/series/derived?ticker=ACME&metric=roe", nil)
	rec := httptest.NewRecorder()
	h.HandleDerived(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Series, models.MetricROE)
	// ROE(2021) = 220 / (0.5*(1000+1200)) = 0.2
	assert.InDelta(t, 0.2, resp.Series[models.MetricROE][2021], 1e-9)
}

func TestHandleDerivedUnknownTicker(t *testing.T) {
	m := store.NewMemoryStore()
	h := NewHandler(refresh.New(m, m), m)

	req := httptest.NewRequest(http.MethodGet, "/api/series/derived?ticker=GHOST", nil)
	rec := httptest.NewRecorder()
	h.HandleDerived(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDerivedMissingTicker(t *testing.T) {
	m := store.NewMemoryStore()
	h := NewHandler(refresh.New(m, m), m)

	req := httptest.NewRequest(http.MethodGet, "/api/series/derived", nil)
	rec := httptest.NewRecorder()
	h.HandleDerived(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
