// Package metrics implements the derivation stages that turn raw annual fact
// series into derived series (equity returns, cost of capital, free cash
// flow). Every stage is a pure function: inputs in, one output series out.
//
// Shared contract: for a given year, if any declared input is missing or the
// formula produces a non-finite value, that year is absent from the output.
// Sentinel substitutions (interest expense, interest load) are the documented
// exceptions and live next to the formulas that apply them.
package metrics

import (
	"math"
	"sort"

	"fundamental_metrics/pkg/models"
)

// finite reports whether v is usable as a stored value.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// put stores v for year y, dropping non-finite results.
func put(out models.AnnualSeries, y int, v float64) {
	if finite(v) {
		out[y] = v
	}
}

// joinYears returns the sorted intersection of fiscal years present in every
// given series. Series are never assumed aligned; this is the only join.
func joinYears(series ...models.AnnualSeries) []int {
	if len(series) == 0 {
		return nil
	}
	years := make([]int, 0, len(series[0]))
	for y := range series[0] {
		present := true
		for _, s := range series[1:] {
			if _, ok := s[y]; !ok {
				present = false
				break
			}
		}
		if present {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}

// priorYear returns the most recent year in s strictly before y, or false if
// none exists. Used where a delta must tolerate gaps in the series.
func priorYear(s models.AnnualSeries, y int) (int, bool) {
	best, found := 0, false
	for candidate := range s {
		if candidate < y && (!found || candidate > best) {
			best, found = candidate, true
		}
	}
	return best, found
}
