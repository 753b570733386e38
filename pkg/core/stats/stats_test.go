package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundamental_metrics/pkg/models"
)

func TestGrowthStatsRoundTrip(t *testing.T) {
	// 100 -> 110 -> 121 is two +10% steps.
	series := models.AnnualSeries{2021: 100, 2022: 110, 2023: 121}
	r := YearRange{Start: 2023, End: 2021}

	median, stdev := GrowthStats(series, r, false, Population)
	require.NotNil(t, median)
	require.NotNil(t, stdev)
	assert.InDelta(t, 0.10, *median, 1e-9)
	assert.InDelta(t, 0.0, *stdev, 1e-9)

	// Two equal growths: sample stdev with ddof=1 is also 0.
	median, stdev = GrowthStats(series, r, false, Sample)
	require.NotNil(t, median)
	require.NotNil(t, stdev)
	assert.InDelta(t, 0.10, *median, 1e-9)
	assert.InDelta(t, 0.0, *stdev, 1e-9)
}

func TestDispersionAsymmetryBelowTwoObservations(t *testing.T) {
	one := []float64{0.10}

	pop := Dispersion(one, Population)
	require.NotNil(t, pop)
	assert.Equal(t, 0.0, *pop)

	assert.Nil(t, Dispersion(one, Sample))
	assert.Nil(t, Dispersion(nil, Population))
	assert.Nil(t, Dispersion(nil, Sample))
}

func TestGrowthStatsAbsDenom(t *testing.T) {
	// Crossing zero: -50 -> 25. Plain denom gives (25-(-50))/(-50) = -1.5,
	// abs denom gives 75/50 = 1.5.
	series := models.AnnualSeries{2021: -50, 2022: 25}
	r := YearRange{Start: 2022, End: 2021}

	median, _ := GrowthStats(series, r, false, Population)
	require.NotNil(t, median)
	assert.InDelta(t, -1.5, *median, 1e-9)

	median, _ = GrowthStats(series, r, true, Population)
	require.NotNil(t, median)
	assert.InDelta(t, 1.5, *median, 1e-9)
}

func TestGrowthStatsSkipsZeroDenominator(t *testing.T) {
	series := models.AnnualSeries{2020: 0, 2021: 50, 2022: 100}
	r := YearRange{Start: 2022, End: 2020}

	// 2020->2021 pair is excluded (zero denominator); only 50->100 remains.
	median, _ := GrowthStats(series, r, false, Population)
	require.NotNil(t, median)
	assert.InDelta(t, 1.0, *median, 1e-9)
}

func TestGrowthStatsEmptyWindow(t *testing.T) {
	series := models.AnnualSeries{2010: 100, 2011: 110}
	median, stdev := GrowthStats(series, YearRange{Start: 2023, End: 2020}, false, Sample)
	assert.Nil(t, median)
	assert.Nil(t, stdev)
}

func TestLevelStats(t *testing.T) {
	series := models.AnnualSeries{2019: 0.30, 2020: 0.10, 2021: 0.20, 2022: 0.40}
	r := YearRange{Start: 2021, End: 2019}

	median, stdev := LevelStats(series, r, Population)
	require.NotNil(t, median)
	require.NotNil(t, stdev)
	assert.InDelta(t, 0.20, *median, 1e-9)
	// mean 0.2, deviations ±0.1 and 0 -> sqrt(0.02/3)
	assert.InDelta(t, 0.0816496580927726, *stdev, 1e-12)
}

func TestLevelStatsReversedRangeNormalized(t *testing.T) {
	series := models.AnnualSeries{2019: 1, 2020: 2, 2021: 3}
	median, _ := LevelStats(series, YearRange{Start: 2019, End: 2021}, Population)
	require.NotNil(t, median)
	assert.InDelta(t, 2.0, *median, 1e-9)
}

func TestMedianEvenCount(t *testing.T) {
	m := Median([]float64{4, 1, 3, 2})
	require.NotNil(t, m)
	assert.InDelta(t, 2.5, *m, 1e-9)
}

func TestPriceCAGR(t *testing.T) {
	changes := models.AnnualSeries{2021: 0.10, 2022: 0.10}
	r := YearRange{Start: 2022, End: 2021}

	cagr := PriceCAGR(changes, r)
	require.NotNil(t, cagr)
	assert.InDelta(t, 10.0, *cagr, 1e-9)

	// A -100% year poisons the geometric mean.
	assert.Nil(t, PriceCAGR(models.AnnualSeries{2021: -1.0, 2022: 0.5}, r))
	// Empty window.
	assert.Nil(t, PriceCAGR(changes, YearRange{Start: 2019, End: 2015}))
}

func TestGainYearShare(t *testing.T) {
	changes := models.AnnualSeries{2020: 0.20, 2021: 0.05, 2022: 0.30, 2023: -0.10}
	r := YearRange{Start: 2023, End: 2020}

	share := GainYearShare(changes, r, 0.15)
	require.NotNil(t, share)
	assert.InDelta(t, 50.0, *share, 1e-9)

	assert.Nil(t, GainYearShare(changes, YearRange{Start: 2010, End: 2005}, 0.15))
}
