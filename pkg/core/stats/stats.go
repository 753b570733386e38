package stats

import (
	"math"
	"sort"

	"fundamental_metrics/pkg/models"
)

// DispersionMode selects sample (ddof=1) or population (ddof=0) standard
// deviation.
type DispersionMode int

const (
	Sample DispersionMode = iota
	Population
)

// Absent values are nil pointers throughout this package: a missing median or
// dispersion means the sample was empty (or too small for the mode), never 0.

// LevelStats returns the median and dispersion of the raw values of series
// inside the (normalized) range. Both are nil when no year falls inside.
//
// Dispersion at n < 2 is asymmetric on purpose: Population yields 0.0 while
// Sample yields nil. Callers compare scores computed under one mode, so the
// split is preserved rather than unified.
func LevelStats(series models.AnnualSeries, r YearRange, mode DispersionMode) (median, stdev *float64) {
	r = r.Normalize()
	values := make([]float64, 0, len(series))
	for _, y := range sortedYears(series) {
		if r.Contains(y) {
			values = append(values, series[y])
		}
	}
	return Median(values), Dispersion(values, mode)
}

// GrowthStats returns the median and dispersion of year-over-year growth,
// (cur - prev) / denom, over adjacent retained years inside the range.
// With absDenom the denominator is |prev|, for metrics that cross zero.
// Zero-denominator pairs are excluded from the sample, not errors.
func GrowthStats(series models.AnnualSeries, r YearRange, absDenom bool, mode DispersionMode) (median, stdev *float64) {
	growths := Growths(series, r, absDenom)
	return Median(growths), Dispersion(growths, mode)
}

// Growths extracts the YoY growth sample used by GrowthStats. Exposed so the
// scoring layer can reuse the exact pairing rules for derived comparisons.
func Growths(series models.AnnualSeries, r YearRange, absDenom bool) []float64 {
	r = r.Normalize()
	years := make([]int, 0, len(series))
	for _, y := range sortedYears(series) {
		if r.Contains(y) {
			years = append(years, y)
		}
	}

	growths := make([]float64, 0, len(years))
	for i := 1; i < len(years); i++ {
		prev := series[years[i-1]]
		cur := series[years[i]]
		denom := prev
		if absDenom {
			denom = math.Abs(prev)
		}
		if denom == 0 {
			continue
		}
		growths = append(growths, (cur-prev)/denom)
	}
	return growths
}

// Median returns the middle value (mean of the two middles for even n),
// or nil for an empty sample.
func Median(values []float64) *float64 {
	n := len(values)
	if n == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	var m float64
	if n%2 == 1 {
		m = sorted[n/2]
	} else {
		m = 0.5 * (sorted[n/2-1] + sorted[n/2])
	}
	return &m
}

// Dispersion returns the standard deviation of values under the given mode.
// n = 0: nil for both modes. n = 1: 0.0 for Population, nil for Sample
// (sample deviation is undefined with a single observation). n >= 2: the
// usual ddof formula.
func Dispersion(values []float64, mode DispersionMode) *float64 {
	n := len(values)
	if n == 0 {
		return nil
	}
	if n == 1 {
		if mode == Population {
			zero := 0.0
			return &zero
		}
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}

	ddof := 0
	if mode == Sample {
		ddof = 1
	}
	sd := math.Sqrt(sumSq / float64(n-ddof))
	return &sd
}

func sortedYears(series models.AnnualSeries) []int {
	years := make([]int, 0, len(series))
	for y := range series {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
