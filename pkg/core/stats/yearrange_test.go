package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYearRange(t *testing.T) {
	available := []int{2015, 2020, 2023}

	t.Run("RecentResolvesToMaxYear", func(t *testing.T) {
		r, err := ParseYearRange("Recent - 2018", available)
		require.NoError(t, err)
		assert.Equal(t, YearRange{Start: 2023, End: 2018}, r)
	})

	t.Run("RecentIsCaseInsensitive", func(t *testing.T) {
		r, err := ParseYearRange("recent-2018", available)
		require.NoError(t, err)
		assert.Equal(t, YearRange{Start: 2023, End: 2018}, r)
	})

	t.Run("EnDashAccepted", func(t *testing.T) {
		r, err := ParseYearRange("RECENT – 2020", available)
		require.NoError(t, err)
		assert.Equal(t, YearRange{Start: 2023, End: 2020}, r)
	})

	t.Run("ExplicitPairParsesVerbatim", func(t *testing.T) {
		r, err := ParseYearRange("2015 - 2022", available)
		require.NoError(t, err)
		// Parser does not reorder; that's the caller's job.
		assert.Equal(t, YearRange{Start: 2015, End: 2022}, r)
	})

	t.Run("MalformedExpressionFails", func(t *testing.T) {
		_, err := ParseYearRange("last five years", available)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
	})

	t.Run("EmptyYearSetFails", func(t *testing.T) {
		_, err := ParseYearRange("Recent - 2018", nil)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
	})
}

func TestYearRangeNormalize(t *testing.T) {
	assert.Equal(t, YearRange{Start: 2022, End: 2015}, YearRange{Start: 2015, End: 2022}.Normalize())
	assert.Equal(t, YearRange{Start: 2022, End: 2015}, YearRange{Start: 2022, End: 2015}.Normalize())
}

func TestYearRangeContains(t *testing.T) {
	r := YearRange{Start: 2023, End: 2018}
	assert.True(t, r.Contains(2018))
	assert.True(t, r.Contains(2023))
	assert.False(t, r.Contains(2017))
	assert.False(t, r.Contains(2024))
}
