package holidays

import (
	"strings"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/be"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/es"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/us"
)

// Country is a selectable country
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var countries = []Country{
	{Code: "US", Name: "United States"},
	{Code: "CA", Name: "Canada"},
	{Code: "BE", Name: "Belgium"},
	{Code: "ES", Name: "Spain"},
	{Code: "DE", Name: "Germany"},
	{Code: "GB", Name: "United Kingdom"},
	{Code: "FR", Name: "France"},
	{Code: "NL", Name: "Netherlands"},
}

// offline holiday tables per country code
var offlineTables = map[string][]*cal.Holiday{
	"US": us.Holidays,
	"CA": ca.Holidays,
	"BE": be.Holidays,
	"ES": es.Holidays,
	"DE": de.Holidays,
	"GB": gb.Holidays,
	"FR": fr.Holidays,
	"NL": nl.Holidays,
}

// Countries returns the selectable countries in display order
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// LookupCountry finds a country by its ISO code (case-insensitive)
func LookupCountry(code string) (Country, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range countries {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}

// NextCountry returns the country after code in display order, wrapping around
func NextCountry(code string) Country {
	code = strings.ToUpper(code)
	for i, c := range countries {
		if c.Code == code {
			return countries[(i+1)%len(countries)]
		}
	}
	return countries[0]
}
