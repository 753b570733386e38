package stats

import (
	"math"

	"fundamental_metrics/pkg/models"
)

// PriceCAGR compounds annual price changes (fractions, e.g. 0.12 for +12%)
// over the inclusive window and returns the geometric mean growth in percent:
//
//	CAGR% = ((1+r1)*(1+r2)*...*(1+rn))^(1/n) - 1, * 100
//
// Nil when no year falls inside the window or any compounding factor is <= 0
// (a -100% year makes the geometric mean meaningless).
func PriceCAGR(changes models.AnnualSeries, r YearRange) *float64 {
	r = r.Normalize()
	product := 1.0
	n := 0
	for y, change := range changes {
		if !r.Contains(y) {
			continue
		}
		factor := 1 + change
		if factor <= 0 {
			return nil
		}
		product *= factor
		n++
	}
	if n == 0 {
		return nil
	}
	cagr := (math.Pow(product, 1/float64(n)) - 1) * 100
	return &cagr
}

// GainYearShare returns the percentage of years inside the window whose
// price change exceeds threshold, over the years that have a value. Nil when
// the window holds no data.
func GainYearShare(changes models.AnnualSeries, r YearRange, threshold float64) *float64 {
	r = r.Normalize()
	total, gains := 0, 0
	for y, change := range changes {
		if !r.Contains(y) {
			continue
		}
		total++
		if change > threshold {
			gains++
		}
	}
	if total == 0 {
		return nil
	}
	share := float64(gains) / float64(total) * 100
	return &share
}
