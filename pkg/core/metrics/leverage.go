package metrics

import "fundamental_metrics/pkg/models"

// =============================================================================
// LEVERAGE & COST OF CAPITAL CHAIN
// DebtEquity -> LeveredBeta -> CostOfEquity
// InterestCoverage -> DefaultSpread -> PreTaxCostOfDebt -> WACC -> Spread
// Rates (risk-free, ERP, CRP, spreads, WACC) are all in percentage points.
// =============================================================================

// interestExpenseSentinel replaces a missing/zero interest expense so that
// operating-income years are not dropped by a division by zero.
const interestExpenseSentinel = 0.01

// interestLoadSentinel is the post-inversion analogue used by InterestLoadPct
// when coverage itself is zero or undefined.
const interestLoadSentinel = 0.001

// DebtEquity(y) = TotalDebt(y) / MarketCap(y); zero-market-cap years are
// skipped, never stored as Inf.
func DebtEquity(totalDebt, marketCap models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(totalDebt, marketCap) {
		if marketCap[y] == 0 {
			continue
		}
		put(out, y, totalDebt[y]/marketCap[y])
	}
	return out
}

// LeveredBeta relevers an industry unlevered beta with the Hamada equation:
//
//	BetaL(y) = BetaU * (1 + (1 - TaxRate) * DebtEquity(y))
//
// BetaU is the average across all industry buckets the entity belongs to that
// define a beta; TaxRate is the country marginal rate as a decimal.
func LeveredBeta(unleveredBeta, taxRate float64, debtEquity models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for y, de := range debtEquity {
		put(out, y, unleveredBeta*(1+(1-taxRate)*de))
	}
	return out
}

// CostOfEquity is CAPM with a country risk premium add-on:
//
//	Re(y) = RiskFree(country, y) + BetaL(y) * ImpliedERP_USA(y) + CRP(country, y)
//
// Risk-free and ERP are required for the year; a missing CRP defaults to 0.
func CostOfEquity(leveredBeta, riskFree, impliedERP, countryRiskPremium models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(leveredBeta, riskFree, impliedERP) {
		crp := countryRiskPremium[y] // zero value when absent
		put(out, y, riskFree[y]+leveredBeta[y]*impliedERP[y]+crp)
	}
	return out
}

// InterestCoverage(y) = OperatingIncome(y) / InterestExpense(y). A missing,
// NaN, or exactly-zero interest expense is replaced by the 0.01 sentinel so
// the year survives with a very high coverage instead of being dropped.
func InterestCoverage(operatingIncome, interestExpense models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for y, oi := range operatingIncome {
		ie, ok := interestExpense[y]
		if !ok || !finite(ie) || ie == 0 {
			ie = interestExpenseSentinel
		}
		put(out, y, oi/ie)
	}
	return out
}

// InterestLoadPct(y) = (1 / InterestCoverage(y)) * 100, the share of operating
// income consumed by interest. Zero or non-finite coverage maps to the 0.001
// sentinel rather than dropping the year.
func InterestLoadPct(coverage models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for y, cov := range coverage {
		if !finite(cov) || cov == 0 {
			out[y] = interestLoadSentinel
			continue
		}
		load := (1 / cov) * 100
		if !finite(load) {
			load = interestLoadSentinel
		}
		out[y] = load
	}
	return out
}

// defaultSpreadTable is the synthetic-rating step function from interest
// coverage to default spread, in percentage points. Buckets are inclusive at
// the upper boundary and must be kept bucket-for-bucket compatible.
var defaultSpreadTable = []struct {
	maxCoverage float64
	spread      float64
}{
	{0.5, 20.00},
	{0.8, 17.00},
	{1.25, 11.78},
	{1.5, 8.51},
	{2.0, 5.24},
	{2.5, 3.61},
	{3.0, 3.14},
	{3.5, 2.21},
	{4.0, 1.74},
	{4.5, 1.47},
	{6.0, 1.21},
	{7.5, 1.07},
	{9.5, 0.92},
	{12.5, 0.70},
}

// defaultSpreadFloor applies above the last bucket (coverage > 12.5).
const defaultSpreadFloor = 0.59

// DefaultSpreadFor maps one interest-coverage ratio through the spread table.
func DefaultSpreadFor(coverage float64) float64 {
	for _, bucket := range defaultSpreadTable {
		if coverage <= bucket.maxCoverage {
			return bucket.spread
		}
	}
	return defaultSpreadFloor
}

// DefaultSpread maps an interest-coverage series through the spread table.
func DefaultSpread(coverage models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for y, cov := range coverage {
		if !finite(cov) {
			continue
		}
		out[y] = DefaultSpreadFor(cov)
	}
	return out
}

// PreTaxCostOfDebt(y) = RiskFree(country, y) + DefaultSpread(y).
func PreTaxCostOfDebt(defaultSpread, riskFree models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(defaultSpread, riskFree) {
		put(out, y, defaultSpread[y]+riskFree[y])
	}
	return out
}

// WACC blends the debt and equity legs at market weights:
//
//	WACC(y) = Rd(y) * (1 - T) * D/(D+E) + Re(y) * E/(D+E)
//
// D = TotalDebt(y), E = MarketCap(y), T = country marginal tax rate as a
// decimal. Years with D+E = 0 are skipped.
func WACC(costOfEquity, preTaxCostOfDebt, totalDebt, marketCap models.AnnualSeries, taxRate float64) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(costOfEquity, preTaxCostOfDebt, totalDebt, marketCap) {
		d, e := totalDebt[y], marketCap[y]
		if d+e == 0 {
			continue
		}
		wacc := preTaxCostOfDebt[y]*(1-taxRate)*(d/(d+e)) + costOfEquity[y]*(e/(d+e))
		put(out, y, wacc)
	}
	return out
}

// ROICWACCSpread(y) = ROIC%(y) - WACC(y). ROIC arrives directly from the
// ingestion collaborator already in percentage points.
func ROICWACCSpread(roicPct, wacc models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(roicPct, wacc) {
		put(out, y, roicPct[y]-wacc[y])
	}
	return out
}
