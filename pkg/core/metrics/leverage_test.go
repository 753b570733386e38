package metrics

import (
	"math"
	"testing"

	"fundamental_metrics/pkg/models"
)

func TestDebtEquitySkipsZeroMarketCap(t *testing.T) {
	debt := models.AnnualSeries{2020: 500, 2021: 500}
	mc := models.AnnualSeries{2020: 1000, 2021: 0}

	de := DebtEquity(debt, mc)

	if math.Abs(de[2020]-0.5) > 1e-9 {
		t.Errorf("Expected D/E(2020) 0.5, got %f", de[2020])
	}
	if _, ok := de[2021]; ok {
		t.Errorf("zero market cap must skip the year, not produce Inf")
	}
}

func TestLeveredBetaHamada(t *testing.T) {
	de := models.AnnualSeries{2021: 0.5}

	beta := LeveredBeta(1.2, 0.25, de)

	// 1.2 * (1 + (1-0.25)*0.5) = 1.2 * 1.375 = 1.65
	if math.Abs(beta[2021]-1.65) > 1e-9 {
		t.Errorf("Expected levered beta 1.65, got %f", beta[2021])
	}
}

func TestCostOfEquityCAPMWithCRP(t *testing.T) {
	beta := models.AnnualSeries{2021: 1.65, 2022: 1.5}
	rf := models.AnnualSeries{2021: 4.0, 2022: 4.0}
	erp := models.AnnualSeries{2021: 4.33} // no 2022 ERP -> year dropped
	crp := models.AnnualSeries{}           // absent CRP defaults to 0

	re := CostOfEquity(beta, rf, erp, crp)

	// 4.0 + 1.65*4.33 = 11.1445
	if math.Abs(re[2021]-11.1445) > 1e-6 {
		t.Errorf("Expected Re(2021) 11.1445, got %f", re[2021])
	}
	if _, ok := re[2022]; ok {
		t.Errorf("missing ERP year must be dropped")
	}
}

func TestInterestCoverageSentinel(t *testing.T) {
	oi := models.AnnualSeries{2020: 50, 2021: 80}
	ie := models.AnnualSeries{2020: 0, 2021: 4}

	cov := InterestCoverage(oi, ie)

	// Zero interest expense -> sentinel 0.01: 50/0.01 = 5000
	if math.Abs(cov[2020]-5000.0) > 1e-9 {
		t.Errorf("Expected coverage(2020) 5000, got %f", cov[2020])
	}
	if math.Abs(cov[2021]-20.0) > 1e-9 {
		t.Errorf("Expected coverage(2021) 20, got %f", cov[2021])
	}
}

func TestInterestCoverageMissingExpenseStillCovered(t *testing.T) {
	oi := models.AnnualSeries{2020: 50}

	cov := InterestCoverage(oi, models.AnnualSeries{})

	if math.Abs(cov[2020]-5000.0) > 1e-9 {
		t.Errorf("missing interest expense must use the sentinel, got %f", cov[2020])
	}
}

func TestInterestLoadPct(t *testing.T) {
	cov := models.AnnualSeries{2020: 4, 2021: 0}

	load := InterestLoadPct(cov)

	// (1/4)*100 = 25; zero coverage -> 0.001 sentinel
	if math.Abs(load[2020]-25.0) > 1e-9 {
		t.Errorf("Expected load(2020) 25, got %f", load[2020])
	}
	if math.Abs(load[2021]-0.001) > 1e-12 {
		t.Errorf("Expected load(2021) sentinel 0.001, got %f", load[2021])
	}
}

func TestDefaultSpreadTableBoundaries(t *testing.T) {
	cases := []struct {
		coverage float64
		spread   float64
	}{
		{0.3, 20.00},
		{0.5, 20.00},     // inclusive upper boundary of the first bucket
		{0.500001, 17.00}, // just past it
		{0.8, 17.00},
		{1.0, 11.78},
		{1.5, 8.51},
		{1.75, 5.24},
		{2.5, 3.61},
		{3.0, 3.14},
		{3.5, 2.21},
		{4.0, 1.74},
		{4.5, 1.47},
		{5.0, 1.21},
		{7.0, 1.07},
		{9.0, 0.92},
		{12.5, 0.70},
		{12.500001, 0.59},
		{5000.0, 0.59},
	}
	for _, c := range cases {
		if got := DefaultSpreadFor(c.coverage); got != c.spread {
			t.Errorf("coverage %f: expected spread %.2f, got %.2f", c.coverage, c.spread, got)
		}
	}
}

func TestWACC(t *testing.T) {
	re := models.AnnualSeries{2021: 10.0}
	rd := models.AnnualSeries{2021: 5.0}
	debt := models.AnnualSeries{2021: 400, 2022: 0}
	mc := models.AnnualSeries{2021: 600, 2022: 0}

	wacc := WACC(re, rd, debt, mc, 0.25)

	// Rd leg: 5 * 0.75 * 0.4 = 1.5; Re leg: 10 * 0.6 = 6.0; WACC = 7.5
	if math.Abs(wacc[2021]-7.5) > 1e-9 {
		t.Errorf("Expected WACC 7.5, got %f", wacc[2021])
	}
	if _, ok := wacc[2022]; ok {
		t.Errorf("D+E = 0 must skip the year")
	}
}

func TestROICWACCSpread(t *testing.T) {
	roic := models.AnnualSeries{2021: 12.0}
	wacc := models.AnnualSeries{2021: 7.5}

	spread := ROICWACCSpread(roic, wacc)

	if math.Abs(spread[2021]-4.5) > 1e-9 {
		t.Errorf("Expected spread 4.5, got %f", spread[2021])
	}
}
