package scoring

import (
	"fundamental_metrics/pkg/core/stats"
	"fundamental_metrics/pkg/models"
)

// =============================================================================
// WEIGHTED AVERAGE & COMPOSITE COMBINATORS
// =============================================================================

// Pair is one (value, weight) input to a weighted average. Either side may be
// absent (nil); such pairs are excluded, never treated as weight 0.
type Pair struct {
	Value  *float64
	Weight *float64
}

// WeightedAverage = sum(value*weight) / sum(weight) over pairs where both
// sides are present and weight > 0. Nil when no pair qualifies.
func WeightedAverage(pairs []Pair) *float64 {
	num, den := 0.0, 0.0
	for _, p := range pairs {
		if p.Value == nil || p.Weight == nil || *p.Weight <= 0 {
			continue
		}
		num += *p.Value * *p.Weight
		den += *p.Weight
	}
	if den == 0 {
		return nil
	}
	avg := num / den
	return &avg
}

// Additive = G - S.
func Additive(g, s *float64) *float64 {
	if g == nil || s == nil {
		return nil
	}
	v := *g - *s
	return &v
}

// Scaled = G / (1 + S).
func Scaled(g, s *float64) *float64 {
	if g == nil || s == nil {
		return nil
	}
	denom := 1 + *s
	if denom == 0 {
		return nil
	}
	v := *g / denom
	return &v
}

// DebtAdjusted = Scaled / (1 + InterestLoad%/100). The interest load is the
// median of (1/coverage)*100 over the range, already sentineled upstream.
func DebtAdjusted(scaled, interestLoadPct *float64) *float64 {
	if scaled == nil || interestLoadPct == nil {
		return nil
	}
	denom := 1 + *interestLoadPct/100
	if denom == 0 {
		return nil
	}
	v := *scaled / denom
	return &v
}

// =============================================================================
// SECTION SCORES
// Balance sheet, P&L, and cash-flow/spread each produce one growth/strength
// score and one dispersion score from the configured weight sets, then the
// composite triple.
// =============================================================================

// Inputs carries everything a section score needs: the entity's series by
// metric key, the two weight sets, the normalized range, and dispersion mode.
type Inputs struct {
	Series map[string]models.AnnualSeries
	Growth WeightSet
	Stddev WeightSet
	Range  stats.YearRange
	Mode   stats.DispersionMode
}

func (in Inputs) series(metric string) models.AnnualSeries {
	return in.Series[metric]
}

// SectionScore is the scored output of one statement section.
type SectionScore struct {
	Growth       *float64 `json:"growth"`
	Stddev       *float64 `json:"stddev"`
	Additive     *float64 `json:"additive"`
	Scaled       *float64 `json:"scaled"`
	DebtAdjusted *float64 `json:"debt_adjusted,omitempty"`
}

// scale multiplies an optional value, turning growth fractions and ratio
// levels into percentage points so they share units with the weights' scale.
func scale(v *float64, by float64) *float64 {
	if v == nil {
		return nil
	}
	s := *v * by
	return &s
}

// BalanceSheetScore weighs accumulated-profit growth against ROE and ROCE
// levels, then debt-adjusts the scaled composite by the median interest load.
func BalanceSheetScore(in Inputs) SectionScore {
	apGrowthMed, apGrowthSD := stats.GrowthStats(in.series(models.MetricAccumulatedProfit), in.Range, true, in.Mode)
	roeMed, roeSD := stats.LevelStats(in.series(models.MetricROE), in.Range, in.Mode)
	roceMed, roceSD := stats.LevelStats(in.series(models.MetricROCE), in.Range, in.Mode)

	growth := WeightedAverage([]Pair{
		{scale(apGrowthMed, 100), in.Growth.Weight(FactorAccumulatedProfitGrowth)},
		{scale(roeMed, 100), in.Growth.Weight(FactorROE)},
		{scale(roceMed, 100), in.Growth.Weight(FactorROCE)},
	})
	stddev := WeightedAverage([]Pair{
		{scale(apGrowthSD, 100), in.Stddev.Weight(FactorAccumulatedProfitGrowth)},
		{scale(roeSD, 100), in.Stddev.Weight(FactorROE)},
		{scale(roceSD, 100), in.Stddev.Weight(FactorROCE)},
	})

	scaled := Scaled(growth, stddev)
	loadMed, _ := stats.LevelStats(in.series(models.MetricInterestLoadPct), in.Range, in.Mode)

	return SectionScore{
		Growth:       growth,
		Stddev:       stddev,
		Additive:     Additive(growth, stddev),
		Scaled:       scaled,
		DebtAdjusted: DebtAdjusted(scaled, loadMed),
	}
}

// ProfitLossScore weighs revenue/income/NOPAT growth and operating-margin
// level and trend. Income and NOPAT growth use absolute denominators since
// those series cross zero; revenue does not.
func ProfitLossScore(in Inputs) SectionScore {
	revMed, revSD := stats.GrowthStats(in.series(models.MetricRevenue), in.Range, false, in.Mode)
	ptxMed, ptxSD := stats.GrowthStats(in.series(models.MetricPretaxIncome), in.Range, true, in.Mode)
	niMed, niSD := stats.GrowthStats(in.series(models.MetricNetIncome), in.Range, true, in.Mode)
	nopatMed, nopatSD := stats.GrowthStats(in.series(models.MetricNOPAT), in.Range, true, in.Mode)
	omMed, omSD := stats.LevelStats(in.series(models.MetricOperatingMargin), in.Range, in.Mode)
	omGrowthMed, omGrowthSD := stats.GrowthStats(in.series(models.MetricOperatingMargin), in.Range, true, in.Mode)

	growth := WeightedAverage([]Pair{
		{scale(revMed, 100), in.Growth.Weight(FactorRevenueGrowth)},
		{scale(ptxMed, 100), in.Growth.Weight(FactorPretaxIncomeGrowth)},
		{scale(niMed, 100), in.Growth.Weight(FactorNetIncomeGrowth)},
		{scale(nopatMed, 100), in.Growth.Weight(FactorNOPATGrowth)},
		{scale(omMed, 100), in.Growth.Weight(FactorOperatingMargin)},
		{scale(omGrowthMed, 100), in.Growth.Weight(FactorOperatingMarginGrowth)},
	})
	stddev := WeightedAverage([]Pair{
		{scale(revSD, 100), in.Stddev.Weight(FactorRevenueGrowth)},
		{scale(ptxSD, 100), in.Stddev.Weight(FactorPretaxIncomeGrowth)},
		{scale(niSD, 100), in.Stddev.Weight(FactorNetIncomeGrowth)},
		{scale(nopatSD, 100), in.Stddev.Weight(FactorNOPATGrowth)},
		{scale(omSD, 100), in.Stddev.Weight(FactorOperatingMargin)},
		{scale(omGrowthSD, 100), in.Stddev.Weight(FactorOperatingMarginGrowth)},
	})

	return SectionScore{
		Growth:   growth,
		Stddev:   stddev,
		Additive: Additive(growth, stddev),
		Scaled:   Scaled(growth, stddev),
	}
}

// CashFlowSpreadScore weighs free-cash-flow growth against the ROIC-WACC
// spread level. The spread is already in percentage points, so only the
// growth side is rescaled.
func CashFlowSpreadScore(in Inputs) SectionScore {
	fcffMed, fcffSD := stats.GrowthStats(in.series(models.MetricFCFF), in.Range, true, in.Mode)
	spreadMed, spreadSD := stats.LevelStats(in.series(models.MetricROICWACCSpread), in.Range, in.Mode)

	growth := WeightedAverage([]Pair{
		{scale(fcffMed, 100), in.Growth.Weight(FactorFreeCashFlowGrowth)},
		{spreadMed, in.Growth.Weight(FactorSpread)},
	})
	stddev := WeightedAverage([]Pair{
		{scale(fcffSD, 100), in.Stddev.Weight(FactorFreeCashFlowGrowth)},
		{spreadSD, in.Stddev.Weight(FactorSpread)},
	})

	return SectionScore{
		Growth:   growth,
		Stddev:   stddev,
		Additive: Additive(growth, stddev),
		Scaled:   Scaled(growth, stddev),
	}
}

// =============================================================================
// TOTALS
// =============================================================================

// TotalScores sums the three section triples into ranking numbers. A total is
// absent unless all three sections produced the corresponding score; partial
// totals would not be comparable across entities.
type TotalScores struct {
	Additive     *float64 `json:"additive"`
	Scaled       *float64 `json:"scaled"`
	DebtAdjusted *float64 `json:"debt_adjusted"`
}

func sum3(a, b, c *float64) *float64 {
	if a == nil || b == nil || c == nil {
		return nil
	}
	v := *a + *b + *c
	return &v
}

// Totals combines balance-sheet, P&L, and cash-flow/spread scores. The
// debt-adjusted total takes the balance sheet's debt-adjusted composite and
// the plain scaled composites of the other two sections.
func Totals(bs, pl, cf SectionScore) TotalScores {
	return TotalScores{
		Additive:     sum3(bs.Additive, pl.Additive, cf.Additive),
		Scaled:       sum3(bs.Scaled, pl.Scaled, cf.Scaled),
		DebtAdjusted: sum3(bs.DebtAdjusted, pl.Scaled, cf.Scaled),
	}
}
