package metrics

import "fundamental_metrics/pkg/models"

// =============================================================================
// EQUITY & RETURNS CHAIN
// AccumulatedProfit, AverageEquity -> ROE, CapitalEmployed -> ROCE,
// InvestedCapital, NOPAT, NCWC -> NCWCRevenueYield
// =============================================================================

// AccumulatedProfit = RetainedEarnings + ComprehensiveIncome.
func AccumulatedProfit(retained, comprehensive models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(retained, comprehensive) {
		put(out, y, retained[y]+comprehensive[y])
	}
	return out
}

// AverageEquity(y) = 0.5 * (Equity(y-1) + Equity(y)).
// Both consecutive years must be present; no extrapolation at series edges.
func AverageEquity(equity models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for y := range equity {
		prev, ok := equity[y-1]
		if !ok {
			continue
		}
		put(out, y, 0.5*(prev+equity[y]))
	}
	return out
}

// ROE(y) = NetIncome(y) / AverageEquity(y); years with a zero denominator
// are skipped.
func ROE(netIncome, avgEquity models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(netIncome, avgEquity) {
		if avgEquity[y] == 0 {
			continue
		}
		put(out, y, netIncome[y]/avgEquity[y])
	}
	return out
}

// CapitalEmployed = ShareholdersEquity + TotalLongTermLiabilities.
func CapitalEmployed(equity, longTermLiabilities models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(equity, longTermLiabilities) {
		put(out, y, equity[y]+longTermLiabilities[y])
	}
	return out
}

// ROCE(y) = EBIT(y) / (0.5 * (CapitalEmployed(y-1) + CapitalEmployed(y))).
// Requires the consecutive prior year; zero denominators are skipped.
func ROCE(ebit, capitalEmployed models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(ebit, capitalEmployed) {
		prev, ok := capitalEmployed[y-1]
		if !ok {
			continue
		}
		denom := 0.5 * (prev + capitalEmployed[y])
		if denom == 0 {
			continue
		}
		put(out, y, ebit[y]/denom)
	}
	return out
}

// InvestedCapital = ShareholdersEquity + TotalDebt - Cash - LongTermInvestments.
func InvestedCapital(equity, totalDebt, cash, longTermInvestments models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(equity, totalDebt, cash, longTermInvestments) {
		put(out, y, equity[y]+totalDebt[y]-cash[y]-longTermInvestments[y])
	}
	return out
}

// NOPAT(y) = EBIT(y) * (1 - EffectiveTaxRate(y)). The effective tax rate is
// the per-year decimal from the fact store, not the country marginal rate.
func NOPAT(ebit, effectiveTaxRate models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(ebit, effectiveTaxRate) {
		put(out, y, ebit[y]*(1-effectiveTaxRate[y]))
	}
	return out
}

// NCWC = (TotalCurrentAssets - Cash) - (TotalCurrentLiabilities - CurrentDebt).
func NCWC(currentAssets, cash, currentLiabilities, currentDebt models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(currentAssets, cash, currentLiabilities, currentDebt) {
		put(out, y, (currentAssets[y]-cash[y])-(currentLiabilities[y]-currentDebt[y]))
	}
	return out
}

// NCWCRevenueYield(y) = 1 - NCWC(y)/Revenue(y); zero-revenue years are skipped.
func NCWCRevenueYield(ncwc, revenue models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(ncwc, revenue) {
		if revenue[y] == 0 {
			continue
		}
		put(out, y, 1-ncwc[y]/revenue[y])
	}
	return out
}
