package store

import "strings"

// Canonical country keys used by the rate and tax tables.
const (
	CountryUSA   = "USA"
	CountryIndia = "India"
	CountryChina = "China"
	CountryJapan = "Japan"
	CountryUK    = "UK"
	CountryUAE   = "UAE"
)

var countryAliases = map[string]string{
	"usa":                  CountryUSA,
	"us":                   CountryUSA,
	"united states":        CountryUSA,
	"united states of america": CountryUSA,
	"india":                CountryIndia,
	"in":                   CountryIndia,
	"china":                CountryChina,
	"cn":                   CountryChina,
	"prc":                  CountryChina,
	"japan":                CountryJapan,
	"jp":                   CountryJapan,
	"uk":                   CountryUK,
	"gb":                   CountryUK,
	"united kingdom":       CountryUK,
	"great britain":        CountryUK,
	"uae":                  CountryUAE,
	"ae":                   CountryUAE,
	"united arab emirates": CountryUAE,
}

// CanonicalCountry normalizes a stored country name to its canonical key.
// Unknown names fall back to USA so a misspelled country degrades to the
// base-rate tables instead of dropping every cost-of-capital year.
func CanonicalCountry(name string) string {
	if c, ok := countryAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return CountryUSA
}

// riskFreeCountry maps a canonical country to the risk-free rate table it
// actually uses. The UK and UAE have no dedicated sovereign curve seeded and
// borrow the USA rate; their risk differences come through the country risk
// premium instead.
func riskFreeCountry(country string) string {
	switch country {
	case CountryIndia, CountryChina, CountryJapan:
		return country
	default:
		return CountryUSA
	}
}
