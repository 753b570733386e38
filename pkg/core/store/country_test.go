package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalCountry(t *testing.T) {
	cases := map[string]string{
		"USA":                  CountryUSA,
		"us":                   CountryUSA,
		"United States":        CountryUSA,
		" india ":              CountryIndia,
		"PRC":                  CountryChina,
		"jp":                   CountryJapan,
		"United Kingdom":       CountryUK,
		"united arab emirates": CountryUAE,
		"Atlantis":             CountryUSA, // unknown falls back to USA
		"":                     CountryUSA,
	}
	for input, want := range cases {
		assert.Equal(t, want, CanonicalCountry(input), "input %q", input)
	}
}

func TestRiskFreeCountryFallback(t *testing.T) {
	// The UK and UAE have no seeded sovereign curve; they borrow the USA
	// rate and differentiate through the country risk premium.
	assert.Equal(t, CountryUSA, riskFreeCountry(CountryUK))
	assert.Equal(t, CountryUSA, riskFreeCountry(CountryUAE))
	assert.Equal(t, CountryIndia, riskFreeCountry(CountryIndia))
	assert.Equal(t, CountryJapan, riskFreeCountry(CountryJapan))
}

func TestTaxRateToDecimal(t *testing.T) {
	assert.InDelta(t, 0.257, taxRateToDecimal(25.70), 1e-9)
	assert.InDelta(t, 0.25, taxRateToDecimal(0.25), 1e-9)
	assert.InDelta(t, 1.0, taxRateToDecimal(1.0), 1e-9)
}
