package metrics

import "fundamental_metrics/pkg/models"

// =============================================================================
// FREE CASH FLOW CHAIN
// NOPAT, NCWC, CapEx, D&A -> FCFF, ReinvestmentRate
// NetIncome, NCWC, CapEx, D&A, NetDebtIssued -> FCFE
// =============================================================================

// deltaNCWC is the change in non-cash working capital for year y measured
// against the most recent prior year that has a value (not necessarily y-1,
// which keeps gapped series usable). With no prior year the delta is 0.
func deltaNCWC(ncwc models.AnnualSeries, y int) float64 {
	prev, ok := priorYear(ncwc, y)
	if !ok {
		return 0.0
	}
	return ncwc[y] - ncwc[prev]
}

// FCFF(y) = NOPAT(y) - NetCapEx(y) - dNCWC(y), with NetCapEx = CapEx - D&A.
// CapEx is stored as a positive outflow.
func FCFF(nopat, ncwc, capex, depreciation models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(nopat, ncwc, capex, depreciation) {
		netCapEx := capex[y] - depreciation[y]
		put(out, y, nopat[y]-netCapEx-deltaNCWC(ncwc, y))
	}
	return out
}

// ReinvestmentRate(y) = (NetCapEx(y) + dNCWC(y)) / NOPAT(y); zero-NOPAT years
// are skipped.
func ReinvestmentRate(nopat, ncwc, capex, depreciation models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(nopat, ncwc, capex, depreciation) {
		if nopat[y] == 0 {
			continue
		}
		netCapEx := capex[y] - depreciation[y]
		put(out, y, (netCapEx+deltaNCWC(ncwc, y))/nopat[y])
	}
	return out
}

// FCFE(y) = NetIncome(y) + D&A(y) - CapEx(y) - dNCWC(y) + NetDebtIssued(y).
// A year missing from the net-debt-issued series contributes 0 rather than
// dropping the year. When the series is entirely absent, the change in total
// debt against the most recent prior year stands in for it.
func FCFE(netIncome, ncwc, capex, depreciation, netDebtIssued, totalDebt models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(netIncome, ncwc, capex, depreciation) {
		ndi := 0.0
		if len(netDebtIssued) > 0 {
			ndi = netDebtIssued[y] // zero value when the year is absent
		} else if prev, ok := priorYear(totalDebt, y); ok {
			if cur, curOK := totalDebt[y]; curOK {
				ndi = cur - totalDebt[prev]
			}
		}
		put(out, y, netIncome[y]+depreciation[y]-capex[y]-deltaNCWC(ncwc, y)+ndi)
	}
	return out
}

// RDSpendRate(y) = R&DExpense(y) / NOPAT(y); zero-NOPAT years are skipped.
func RDSpendRate(rdExpense, nopat models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{}
	for _, y := range joinYears(rdExpense, nopat) {
		if nopat[y] == 0 {
			continue
		}
		put(out, y, rdExpense[y]/nopat[y])
	}
	return out
}
