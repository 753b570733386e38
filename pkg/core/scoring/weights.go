// Package scoring combines range statistics into weighted growth/strength and
// dispersion scores, then into additive, scaled, and debt-adjusted composites.
package scoring

// Factor is the canonical key of a weighted scoring input. Core code only
// ever uses these; legacy spellings are normalized once at the configuration
// boundary via CanonicalFactor, never resolved ad hoc at call sites.
type Factor string

const (
	FactorRevenueGrowth           Factor = "Revenue Growth"
	FactorPretaxIncomeGrowth      Factor = "Pretax Income Growth"
	FactorNetIncomeGrowth         Factor = "Net Income Growth"
	FactorNOPATGrowth             Factor = "NOPAT Growth"
	FactorOperatingMargin         Factor = "Operating Margin"
	FactorOperatingMarginGrowth   Factor = "YoY Operating Margin Growth"
	FactorAccumulatedProfitGrowth Factor = "Accumulated Profit Growth"
	FactorROE                     Factor = "ROE"
	FactorROCE                    Factor = "ROCE"
	FactorFreeCashFlowGrowth      Factor = "Free Cash Flow Growth"
	FactorSpread                  Factor = "Spread"
	FactorEarningsPowerChange     Factor = "Earnings Power Change %"
	FactorEPDeltaChange           Factor = "Change in EP Delta"
)

// factorAliases maps legacy weight-table spellings (including the historical
// double-space and FCFE-for-FCFF names) onto canonical factors.
var factorAliases = map[string]Factor{
	"Accumulated Equity Growth": FactorAccumulatedProfitGrowth,
	"Profit Before Tax Growth":  FactorPretaxIncomeGrowth,
	"Net Income  Growth":        FactorNetIncomeGrowth,
	"FCFE Growth":               FactorFreeCashFlowGrowth,
}

// canonicalSet contains every canonical factor for membership checks.
var canonicalSet = map[Factor]struct{}{
	FactorRevenueGrowth:           {},
	FactorPretaxIncomeGrowth:      {},
	FactorNetIncomeGrowth:         {},
	FactorNOPATGrowth:             {},
	FactorOperatingMargin:         {},
	FactorOperatingMarginGrowth:   {},
	FactorAccumulatedProfitGrowth: {},
	FactorROE:                     {},
	FactorROCE:                    {},
	FactorFreeCashFlowGrowth:      {},
	FactorSpread:                  {},
	FactorEarningsPowerChange:     {},
	FactorEPDeltaChange:           {},
}

// CanonicalFactor resolves a stored weight name to its canonical factor.
// Returns false for names that are neither canonical nor aliased.
func CanonicalFactor(name string) (Factor, bool) {
	if f, ok := factorAliases[name]; ok {
		return f, true
	}
	f := Factor(name)
	_, ok := canonicalSet[f]
	return f, ok
}

// WeightSet holds the configured weight per canonical factor. A factor absent
// from the set has no weight and its pair drops out of the weighted average.
type WeightSet map[Factor]float64

// Weight returns the configured weight for f, or nil when unset.
func (w WeightSet) Weight(f Factor) *float64 {
	v, ok := w[f]
	if !ok {
		return nil
	}
	return &v
}
