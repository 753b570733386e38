// Package models defines the shared data types exchanged between the fact
// store, the derivation stages, and the API handlers.
package models

// =============================================================================
// ANNUAL SERIES
// =============================================================================

// AnnualSeries maps a fiscal year to a value for one (entity, metric) pair.
// Sparse by construction: a year missing from the map means "no value", and
// NaN is never stored. Joins across metrics are always explicit inner joins.
type AnnualSeries map[int]float64

// Years returns the fiscal years present in the series, unordered.
func (s AnnualSeries) Years() []int {
	years := make([]int, 0, len(s))
	for y := range s {
		years = append(years, y)
	}
	return years
}

// Clone returns an independent copy of the series.
func (s AnnualSeries) Clone() AnnualSeries {
	out := make(AnnualSeries, len(s))
	for y, v := range s {
		out[y] = v
	}
	return out
}

// =============================================================================
// METRIC KEYS
// Raw metrics are written by the ingestion collaborator; derived metrics are
// owned by the refresh orchestrator and overwritten on every pass.
// =============================================================================

// Raw metrics.
const (
	MetricRevenue              = "revenue"
	MetricOperatingIncome      = "operating_income"
	MetricPretaxIncome         = "pretax_income"
	MetricNetIncome            = "net_income"
	MetricEBIT                 = "ebit"
	MetricEffectiveTaxRate     = "effective_tax_rate"
	MetricInterestExpense      = "interest_expense"
	MetricShareholdersEquity   = "shareholders_equity"
	MetricRetainedEarnings     = "retained_earnings"
	MetricComprehensiveIncome  = "comprehensive_income"
	MetricTotalLongTermLiab    = "total_long_term_liabilities"
	MetricTotalCurrentAssets   = "total_current_assets"
	MetricTotalCurrentLiab     = "total_current_liabilities"
	MetricCash                 = "cash"
	MetricCurrentDebt          = "current_debt"
	MetricTotalDebt            = "total_debt"
	MetricLongTermInvestments  = "long_term_investments"
	MetricMarketCap            = "market_cap"
	MetricCapEx                = "capex"
	MetricDepreciationAmort    = "depreciation_amortization"
	MetricNetDebtIssuedPaid    = "net_debt_issued_paid"
	MetricRDExpense            = "rd_expense"
	MetricOperatingMargin      = "operating_margin"
	MetricROICPct              = "roic_pct"
	MetricAnnualPriceChange    = "annual_price_change"
)

// Derived metrics, in dependency order within each chain.
const (
	MetricAccumulatedProfit = "accumulated_profit"
	MetricAverageEquity     = "average_equity"
	MetricROE               = "roe"
	MetricCapitalEmployed   = "capital_employed"
	MetricROCE              = "roce"
	MetricInvestedCapital   = "invested_capital"
	MetricNOPAT             = "nopat"
	MetricNCWC              = "ncwc"
	MetricNCWCRevenueYield  = "ncwc_revenue_yield"

	MetricDebtEquity       = "debt_equity"
	MetricLeveredBeta      = "levered_beta"
	MetricCostOfEquity     = "cost_of_equity"
	MetricInterestCoverage = "interest_coverage"
	MetricInterestLoadPct  = "interest_load_pct"
	MetricDefaultSpread    = "default_spread"
	MetricPreTaxCostOfDebt = "pretax_cost_of_debt"
	MetricWACC             = "wacc"
	MetricROICWACCSpread   = "roic_wacc_spread"

	MetricFCFF             = "fcff"
	MetricReinvestmentRate = "reinvestment_rate"
	MetricFCFE             = "fcfe"
	MetricRDSpendRate      = "rd_spend_rate"
)

// DerivedMetrics lists every orchestrator-owned metric key.
var DerivedMetrics = []string{
	MetricAccumulatedProfit,
	MetricAverageEquity,
	MetricROE,
	MetricCapitalEmployed,
	MetricROCE,
	MetricInvestedCapital,
	MetricNOPAT,
	MetricNCWC,
	MetricNCWCRevenueYield,
	MetricDebtEquity,
	MetricLeveredBeta,
	MetricCostOfEquity,
	MetricInterestCoverage,
	MetricInterestLoadPct,
	MetricDefaultSpread,
	MetricPreTaxCostOfDebt,
	MetricWACC,
	MetricROICWACCSpread,
	MetricFCFF,
	MetricReinvestmentRate,
	MetricFCFE,
	MetricRDSpendRate,
}

// =============================================================================
// ENTITIES & CONFIGURATION
// =============================================================================

// Company identifies one entity in the fact store.
type Company struct {
	Ticker  string `json:"ticker"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// IndustryBeta is one industry bucket's beta pair. Entities may belong to
// several buckets; the effective unlevered beta is the average across them.
type IndustryBeta struct {
	Bucket           string  `json:"bucket"`
	Industry         string  `json:"industry"`
	UnleveredBeta    float64 `json:"unlevered_beta"`
	CashAdjustedBeta float64 `json:"cash_adjusted_beta"`
}

// RatePoint is one (year, value) row of a configuration rate series
// (risk-free rate, implied ERP, country risk premium, index movement).
type RatePoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}
