// Package refresh runs the derivation stages in dependency order and writes
// the results back to the fact store.
package refresh

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fundamental_metrics/pkg/core/metrics"
	"fundamental_metrics/pkg/models"
)

// FactStore is the slice of the store the orchestrator needs. Satisfied by
// both store.FactRepo and store.MemoryStore.
type FactStore interface {
	GetSeries(ctx context.Context, ticker, metric string) (models.AnnualSeries, error)
	PutSeries(ctx context.Context, ticker, metric string, series models.AnnualSeries) error
	SeriesBundle(ctx context.Context, ticker string, metrics []string) (map[string]models.AnnualSeries, error)
	ListTickers(ctx context.Context) ([]string, error)
	GetCompany(ctx context.Context, ticker string) (models.Company, error)
}

// ConfigSource supplies the configuration tables the cost-of-capital stages
// read. Satisfied by both store.ConfigRepo and store.MemoryStore.
type ConfigSource interface {
	UnleveredBeta(ctx context.Context, ticker string) (float64, bool, error)
	RiskFreeRates(ctx context.Context, country string) (models.AnnualSeries, error)
	ImpliedERP(ctx context.Context) (models.AnnualSeries, error)
	CountryRiskPremium(ctx context.Context, country string) (models.AnnualSeries, error)
	MarginalTaxRate(ctx context.Context, country string) (float64, error)
}

// Orchestrator recomputes every derived series for one entity or for all of
// them. Each pass is a full recompute: no dirty tracking, no caching, safe to
// run on every read. Writes are upsert-only, so years that stop being
// computable keep their last computed value (last-known-good retention).
type Orchestrator struct {
	store  FactStore
	config ConfigSource
}

// New creates an orchestrator over the given store and configuration source.
func New(store FactStore, config ConfigSource) *Orchestrator {
	return &Orchestrator{store: store, config: config}
}

// rawInputs is every raw metric any stage reads.
var rawInputs = []string{
	models.MetricRevenue,
	models.MetricOperatingIncome,
	models.MetricNetIncome,
	models.MetricEBIT,
	models.MetricEffectiveTaxRate,
	models.MetricInterestExpense,
	models.MetricShareholdersEquity,
	models.MetricRetainedEarnings,
	models.MetricComprehensiveIncome,
	models.MetricTotalLongTermLiab,
	models.MetricTotalCurrentAssets,
	models.MetricTotalCurrentLiab,
	models.MetricCash,
	models.MetricCurrentDebt,
	models.MetricTotalDebt,
	models.MetricLongTermInvestments,
	models.MetricMarketCap,
	models.MetricCapEx,
	models.MetricDepreciationAmort,
	models.MetricNetDebtIssuedPaid,
	models.MetricRDExpense,
	models.MetricROICPct,
}

// RefreshEntity recomputes the full stage chain for one entity. A failing
// stage write or missing configuration drops that stage's output and moves
// on; only an unknown entity or an unreadable fact store is an error.
func (o *Orchestrator) RefreshEntity(ctx context.Context, ticker string) error {
	company, err := o.store.GetCompany(ctx, ticker)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", ticker, err)
	}

	raw, err := o.store.SeriesBundle(ctx, ticker, rawInputs)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", ticker, err)
	}

	jobID := uuid.NewString()
	in := func(metric string) models.AnnualSeries {
		if s, ok := raw[metric]; ok {
			return s
		}
		return models.AnnualSeries{}
	}

	// Derived outputs feed later stages from memory, not from re-reads.
	derived := map[string]models.AnnualSeries{}
	save := func(metric string, series models.AnnualSeries) {
		derived[metric] = series
		if len(series) == 0 {
			return
		}
		if err := o.store.PutSeries(ctx, ticker, metric, series); err != nil {
			log.Warn().Err(err).
				Str("job_id", jobID).
				Str("ticker", ticker).
				Str("metric", metric).
				Msg("Failed to store derived series")
		}
	}

	// Equity chain.
	save(models.MetricAccumulatedProfit, metrics.AccumulatedProfit(in(models.MetricRetainedEarnings), in(models.MetricComprehensiveIncome)))
	save(models.MetricAverageEquity, metrics.AverageEquity(in(models.MetricShareholdersEquity)))
	save(models.MetricROE, metrics.ROE(in(models.MetricNetIncome), derived[models.MetricAverageEquity]))
	save(models.MetricCapitalEmployed, metrics.CapitalEmployed(in(models.MetricShareholdersEquity), in(models.MetricTotalLongTermLiab)))
	save(models.MetricROCE, metrics.ROCE(in(models.MetricEBIT), derived[models.MetricCapitalEmployed]))
	save(models.MetricInvestedCapital, metrics.InvestedCapital(in(models.MetricShareholdersEquity), in(models.MetricTotalDebt), in(models.MetricCash), in(models.MetricLongTermInvestments)))
	save(models.MetricNOPAT, metrics.NOPAT(in(models.MetricEBIT), in(models.MetricEffectiveTaxRate)))
	save(models.MetricNCWC, metrics.NCWC(in(models.MetricTotalCurrentAssets), in(models.MetricCash), in(models.MetricTotalCurrentLiab), in(models.MetricCurrentDebt)))
	save(models.MetricNCWCRevenueYield, metrics.NCWCRevenueYield(derived[models.MetricNCWC], in(models.MetricRevenue)))

	// Leverage and cost-of-capital chain.
	save(models.MetricDebtEquity, metrics.DebtEquity(in(models.MetricTotalDebt), in(models.MetricMarketCap)))
	o.refreshCostOfCapital(ctx, jobID, company, derived, save)

	save(models.MetricInterestCoverage, metrics.InterestCoverage(in(models.MetricOperatingIncome), in(models.MetricInterestExpense)))
	save(models.MetricInterestLoadPct, metrics.InterestLoadPct(derived[models.MetricInterestCoverage]))
	save(models.MetricDefaultSpread, metrics.DefaultSpread(derived[models.MetricInterestCoverage]))
	o.refreshDebtAndWACC(ctx, jobID, company, in, derived, save)

	// Cash-flow chain.
	save(models.MetricFCFF, metrics.FCFF(derived[models.MetricNOPAT], derived[models.MetricNCWC], in(models.MetricCapEx), in(models.MetricDepreciationAmort)))
	save(models.MetricReinvestmentRate, metrics.ReinvestmentRate(derived[models.MetricNOPAT], derived[models.MetricNCWC], in(models.MetricCapEx), in(models.MetricDepreciationAmort)))
	save(models.MetricFCFE, metrics.FCFE(in(models.MetricNetIncome), derived[models.MetricNCWC], in(models.MetricCapEx), in(models.MetricDepreciationAmort), in(models.MetricNetDebtIssuedPaid), in(models.MetricTotalDebt)))
	save(models.MetricRDSpendRate, metrics.RDSpendRate(in(models.MetricRDExpense), derived[models.MetricNOPAT]))

	return nil
}

// refreshCostOfCapital computes levered beta and cost of equity. Missing
// configuration (no bucket beta, no tax rate) skips these stages for the
// entity without failing the pass.
func (o *Orchestrator) refreshCostOfCapital(
	ctx context.Context,
	jobID string,
	company models.Company,
	derived map[string]models.AnnualSeries,
	save func(string, models.AnnualSeries),
) {
	beta, ok, err := o.config.UnleveredBeta(ctx, company.Ticker)
	if err != nil || !ok {
		if err != nil {
			log.Warn().Err(err).Str("job_id", jobID).Str("ticker", company.Ticker).Msg("Failed to load unlevered beta")
		}
		return
	}
	taxRate, err := o.config.MarginalTaxRate(ctx, company.Country)
	if err != nil {
		log.Warn().Err(err).Str("job_id", jobID).Str("ticker", company.Ticker).
			Str("country", company.Country).Msg("No marginal tax rate; skipping beta stages")
		return
	}

	save(models.MetricLeveredBeta, metrics.LeveredBeta(beta, taxRate, derived[models.MetricDebtEquity]))

	riskFree, err := o.config.RiskFreeRates(ctx, company.Country)
	if err != nil {
		log.Warn().Err(err).Str("job_id", jobID).Str("ticker", company.Ticker).Msg("Failed to load risk-free rates")
		return
	}
	erp, err := o.config.ImpliedERP(ctx)
	if err != nil {
		log.Warn().Err(err).Str("job_id", jobID).Str("ticker", company.Ticker).Msg("Failed to load implied ERP")
		return
	}
	crp, err := o.config.CountryRiskPremium(ctx, company.Country)
	if err != nil {
		log.Warn().Err(err).Str("job_id", jobID).Str("ticker", company.Ticker).Msg("Failed to load country risk premium")
		crp = models.AnnualSeries{}
	}

	save(models.MetricCostOfEquity, metrics.CostOfEquity(derived[models.MetricLeveredBeta], riskFree, erp, crp))
}

// refreshDebtAndWACC computes the pre-tax cost of debt, WACC, and the
// ROIC-WACC spread from the already computed default spread.
func (o *Orchestrator) refreshDebtAndWACC(
	ctx context.Context,
	jobID string,
	company models.Company,
	in func(string) models.AnnualSeries,
	derived map[string]models.AnnualSeries,
	save func(string, models.AnnualSeries),
) {
	riskFree, err := o.config.RiskFreeRates(ctx, company.Country)
	if err != nil {
		log.Warn().Err(err).Str("job_id", jobID).Str("ticker", company.Ticker).Msg("Failed to load risk-free rates")
		return
	}

	save(models.MetricPreTaxCostOfDebt, metrics.PreTaxCostOfDebt(derived[models.MetricDefaultSpread], riskFree))

	taxRate, err := o.config.MarginalTaxRate(ctx, company.Country)
	if err != nil {
		log.Warn().Err(err).Str("job_id", jobID).Str("ticker", company.Ticker).
			Str("country", company.Country).Msg("No marginal tax rate; skipping WACC")
		return
	}

	save(models.MetricWACC, metrics.WACC(
		derived[models.MetricCostOfEquity],
		derived[models.MetricPreTaxCostOfDebt],
		in(models.MetricTotalDebt),
		in(models.MetricMarketCap),
		taxRate,
	))
	save(models.MetricROICWACCSpread, metrics.ROICWACCSpread(in(models.MetricROICPct), derived[models.MetricWACC]))
}

// RefreshAll recomputes every entity. One entity's failure is logged and does
// not stop the rest; only an unreadable ticker list is an error.
func (o *Orchestrator) RefreshAll(ctx context.Context) error {
	tickers, err := o.store.ListTickers(ctx)
	if err != nil {
		return fmt.Errorf("refresh all: %w", err)
	}

	jobID := uuid.NewString()
	log.Info().Str("job_id", jobID).Int("entities", len(tickers)).Msg("Starting full refresh")

	failed := 0
	for _, ticker := range tickers {
		if err := o.RefreshEntity(ctx, ticker); err != nil {
			failed++
			log.Warn().Err(err).Str("job_id", jobID).Str("ticker", ticker).Msg("Entity refresh failed")
		}
	}

	log.Info().Str("job_id", jobID).Int("entities", len(tickers)).Int("failed", failed).Msg("Full refresh finished")
	return nil
}
