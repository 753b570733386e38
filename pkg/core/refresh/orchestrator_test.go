package refresh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundamental_metrics/pkg/core/store"
	"fundamental_metrics/pkg/models"
)

func seedStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	ctx := context.Background()
	m := store.NewMemoryStore()

	require.NoError(t, m.UpsertCompany(ctx, models.Company{Ticker: "ACME", Name: "Acme Corp", Country: "USA"}))
	m.AddBucketBeta("ACME", 1.2)
	m.SetTaxRate("USA", 25.70)
	m.SetRiskFree("USA", models.AnnualSeries{2020: 0.89, 2021: 1.45})
	m.SetImpliedERP(models.AnnualSeries{2020: 5.20, 2021: 4.72})
	m.SetCRP("USA", models.AnnualSeries{2020: 0.00, 2021: 0.00})

	facts := map[string]models.AnnualSeries{
		models.MetricShareholdersEquity: {2019: 1000, 2020: 1100, 2021: 1200},
		models.MetricNetIncome:          {2020: 210, 2021: 230},
		models.MetricEBIT:               {2021: 500},
		models.MetricEffectiveTaxRate:   {2021: 0.2},
		models.MetricOperatingIncome:    {2021: 500},
		models.MetricInterestExpense:    {2021: 25},
		models.MetricTotalDebt:          {2021: 400},
		models.MetricMarketCap:          {2021: 600},
		models.MetricROICPct:            {2021: 12.0},
		models.MetricTotalCurrentAssets: {2021: 800},
		models.MetricCash:               {2021: 100},
		models.MetricTotalCurrentLiab:   {2021: 400},
		models.MetricCurrentDebt:        {2021: 50},
		models.MetricCapEx:              {2021: 120},
		models.MetricDepreciationAmort:  {2021: 80},
		models.MetricRDExpense:          {2021: 60},
	}
	for metric, series := range facts {
		require.NoError(t, m.PutSeries(ctx, "ACME", metric, series))
	}
	return m
}

func TestRefreshEntityFullChain(t *testing.T) {
	ctx := context.Background()
	m := seedStore(t)
	orch := New(m, m)

	require.NoError(t, orch.RefreshEntity(ctx, "ACME"))

	get := func(metric string) models.AnnualSeries {
		s, err := m.GetSeries(ctx, "ACME", metric)
		require.NoError(t, err)
		return s
	}

	// Equity chain: AvgEq(2021) = 0.5*(1100+1200) = 1150; ROE = 230/1150 = 0.2
	roe := get(models.MetricROE)
	assert.InDelta(t, 0.2, roe[2021], 1e-9)
	assert.InDelta(t, 210.0/1050.0, roe[2020], 1e-9)

	// NOPAT(2021) = 500 * 0.8 = 400
	assert.InDelta(t, 400.0, get(models.MetricNOPAT)[2021], 1e-9)

	// NCWC(2021) = (800-100) - (400-50) = 350
	assert.InDelta(t, 350.0, get(models.MetricNCWC)[2021], 1e-9)

	// Leverage chain: D/E = 400/600; Hamada with BetaU 1.2, T 0.257.
	de := 400.0 / 600.0
	leveredBeta := 1.2 * (1 + (1-0.257)*de)
	assert.InDelta(t, leveredBeta, get(models.MetricLeveredBeta)[2021], 1e-9)

	// Cost of equity = 1.45 + BetaL*4.72 + 0
	costOfEquity := 1.45 + leveredBeta*4.72
	assert.InDelta(t, costOfEquity, get(models.MetricCostOfEquity)[2021], 1e-9)

	// Coverage = 500/25 = 20 -> spread 0.59 -> Rd = 1.45 + 0.59
	assert.InDelta(t, 20.0, get(models.MetricInterestCoverage)[2021], 1e-9)
	assert.InDelta(t, 0.59, get(models.MetricDefaultSpread)[2021], 1e-9)
	assert.InDelta(t, 5.0, get(models.MetricInterestLoadPct)[2021], 1e-9)
	rd := 1.45 + 0.59
	assert.InDelta(t, rd, get(models.MetricPreTaxCostOfDebt)[2021], 1e-9)

	// WACC = Rd*(1-T)*D/(D+E) + Re*E/(D+E)
	wacc := rd*(1-0.257)*(400.0/1000.0) + costOfEquity*(600.0/1000.0)
	assert.InDelta(t, wacc, get(models.MetricWACC)[2021], 1e-9)
	assert.InDelta(t, 12.0-wacc, get(models.MetricROICWACCSpread)[2021], 1e-9)

	// Cash-flow chain: NetCapEx = 40, first NCWC year so delta 0.
	assert.InDelta(t, 360.0, get(models.MetricFCFF)[2021], 1e-9)
	assert.InDelta(t, 0.1, get(models.MetricReinvestmentRate)[2021], 1e-9)
	// FCFE = 230 + 80 - 120 - 0 + 0 (no prior debt year for the fallback)
	assert.InDelta(t, 190.0, get(models.MetricFCFE)[2021], 1e-9)
	// R&D spend rate = 60/400
	assert.InDelta(t, 0.15, get(models.MetricRDSpendRate)[2021], 1e-9)
}

func TestRefreshEntityIdempotent(t *testing.T) {
	ctx := context.Background()
	m := seedStore(t)
	orch := New(m, m)

	require.NoError(t, orch.RefreshEntity(ctx, "ACME"))
	first := map[string]models.AnnualSeries{}
	for _, metric := range models.DerivedMetrics {
		s, err := m.GetSeries(ctx, "ACME", metric)
		require.NoError(t, err)
		first[metric] = s
	}

	require.NoError(t, orch.RefreshEntity(ctx, "ACME"))
	for _, metric := range models.DerivedMetrics {
		s, err := m.GetSeries(ctx, "ACME", metric)
		require.NoError(t, err)
		assert.Equal(t, first[metric], s, "metric %s changed across identical refreshes", metric)
	}
}

func TestRefreshEntityWithoutBetaStillRunsOtherStages(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemoryStore()
	require.NoError(t, m.UpsertCompany(ctx, models.Company{Ticker: "NOBETA", Name: "No Beta Inc", Country: "USA"}))
	m.SetTaxRate("USA", 25.70)
	m.SetRiskFree("USA", models.AnnualSeries{2021: 1.45})
	require.NoError(t, m.PutSeries(ctx, "NOBETA", models.MetricOperatingIncome, models.AnnualSeries{2021: 50}))
	// No interest expense at all: sentinel coverage.
	orch := New(m, m)

	require.NoError(t, orch.RefreshEntity(ctx, "NOBETA"))

	cov, err := m.GetSeries(ctx, "NOBETA", models.MetricInterestCoverage)
	require.NoError(t, err)
	assert.InDelta(t, 5000.0, cov[2021], 1e-9)

	beta, err := m.GetSeries(ctx, "NOBETA", models.MetricLeveredBeta)
	require.NoError(t, err)
	assert.Empty(t, beta)

	// Default spread and pre-tax cost of debt still computed.
	rd, err := m.GetSeries(ctx, "NOBETA", models.MetricPreTaxCostOfDebt)
	require.NoError(t, err)
	assert.InDelta(t, 1.45+0.59, rd[2021], 1e-9)
}

func TestRefreshEntityUnknownTicker(t *testing.T) {
	m := store.NewMemoryStore()
	orch := New(m, m)
	assert.Error(t, orch.RefreshEntity(context.Background(), "GHOST"))
}

func TestRefreshAllIsolatesEntities(t *testing.T) {
	ctx := context.Background()
	m := seedStore(t)
	// Second entity with almost no data; it must not disturb the first.
	require.NoError(t, m.UpsertCompany(ctx, models.Company{Ticker: "BARE", Name: "Bare Inc", Country: "Atlantis"}))
	orch := New(m, m)

	require.NoError(t, orch.RefreshAll(ctx))

	roe, err := m.GetSeries(ctx, "ACME", models.MetricROE)
	require.NoError(t, err)
	assert.NotEmpty(t, roe)
}
