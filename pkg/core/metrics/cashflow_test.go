package metrics

import (
	"math"
	"testing"

	"fundamental_metrics/pkg/models"
)

func TestFCFFUsesPriorAvailableNCWC(t *testing.T) {
	nopat := models.AnnualSeries{2019: 100, 2022: 120}
	ncwc := models.AnnualSeries{2019: 30, 2022: 50}
	capex := models.AnnualSeries{2019: 40, 2022: 45}
	da := models.AnnualSeries{2019: 25, 2022: 30}

	fcff := FCFF(nopat, ncwc, capex, da)

	// 2019: no prior NCWC -> delta 0. NetCapEx = 40-25 = 15. FCFF = 100-15-0 = 85
	if math.Abs(fcff[2019]-85) > 1e-9 {
		t.Errorf("Expected FCFF(2019) 85, got %f", fcff[2019])
	}
	// 2022: prior NCWC year is 2019 (gap tolerated). Delta = 50-30 = 20.
	// NetCapEx = 45-30 = 15. FCFF = 120-15-20 = 85
	if math.Abs(fcff[2022]-85) > 1e-9 {
		t.Errorf("Expected FCFF(2022) 85, got %f", fcff[2022])
	}
}

func TestReinvestmentRateSkipsZeroNOPAT(t *testing.T) {
	nopat := models.AnnualSeries{2020: 100, 2021: 0}
	ncwc := models.AnnualSeries{2020: 30, 2021: 35}
	capex := models.AnnualSeries{2020: 40, 2021: 40}
	da := models.AnnualSeries{2020: 25, 2021: 25}

	rr := ReinvestmentRate(nopat, ncwc, capex, da)

	// 2020: (15 + 0) / 100 = 0.15
	if math.Abs(rr[2020]-0.15) > 1e-9 {
		t.Errorf("Expected rate(2020) 0.15, got %f", rr[2020])
	}
	if _, ok := rr[2021]; ok {
		t.Errorf("zero NOPAT must skip the year")
	}
}

func TestFCFEMissingNetDebtYearDefaultsToZero(t *testing.T) {
	ni := models.AnnualSeries{2020: 80, 2021: 90}
	ncwc := models.AnnualSeries{2020: 30, 2021: 40}
	capex := models.AnnualSeries{2020: 35, 2021: 35}
	da := models.AnnualSeries{2020: 20, 2021: 20}
	ndi := models.AnnualSeries{2020: 12} // 2021 missing -> 0, not skipped

	fcfe := FCFE(ni, ncwc, capex, da, ndi, nil)

	// 2020: 80 + 20 - 35 - 0 + 12 = 77 (first NCWC year, delta 0)
	if math.Abs(fcfe[2020]-77) > 1e-9 {
		t.Errorf("Expected FCFE(2020) 77, got %f", fcfe[2020])
	}
	// 2021: 90 + 20 - 35 - (40-30) + 0 = 65
	if math.Abs(fcfe[2021]-65) > 1e-9 {
		t.Errorf("Expected FCFE(2021) 65, got %f", fcfe[2021])
	}
}

func TestFCFEFallsBackToDebtDelta(t *testing.T) {
	ni := models.AnnualSeries{2020: 80, 2021: 90}
	ncwc := models.AnnualSeries{2020: 30, 2021: 40}
	capex := models.AnnualSeries{2020: 35, 2021: 35}
	da := models.AnnualSeries{2020: 20, 2021: 20}
	debt := models.AnnualSeries{2020: 100, 2021: 130}

	fcfe := FCFE(ni, ncwc, capex, da, nil, debt)

	// Net debt issued approximated by the debt delta: 2021 gets 130-100 = 30.
	// 2021: 90 + 20 - 35 - 10 + 30 = 95
	if math.Abs(fcfe[2021]-95) > 1e-9 {
		t.Errorf("Expected FCFE(2021) 95, got %f", fcfe[2021])
	}
	// 2020 has no prior debt year -> 0: 80 + 20 - 35 - 0 + 0 = 65
	if math.Abs(fcfe[2020]-65) > 1e-9 {
		t.Errorf("Expected FCFE(2020) 65, got %f", fcfe[2020])
	}
}

func TestRDSpendRate(t *testing.T) {
	rd := models.AnnualSeries{2021: 18}
	nopat := models.AnnualSeries{2021: 90}

	rate := RDSpendRate(rd, nopat)

	if math.Abs(rate[2021]-0.2) > 1e-9 {
		t.Errorf("Expected rate 0.2, got %f", rate[2021])
	}
}
