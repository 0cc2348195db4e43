package domain

import (
	"strings"
	"unicode/utf8"
)

// UnknownCountryCode is used when a country name cannot be resolved.
const UnknownCountryCode = "XX"

// DefaultContinent is returned for unknown countries. It is an approximation
// kept for output parity, not a meaningful answer.
const DefaultContinent = NorthAmerica

// countryCodes maps normalized country names and common variants to ISO-2.
var countryCodes = map[string]string{
	"united states": "US", "united states of america": "US", "usa": "US", "us": "US",
	"canada": "CA", "mexico": "MX",
	"united kingdom": "GB", "uk": "GB", "great britain": "GB", "england": "GB", "scotland": "GB",
	"ireland": "IE", "france": "FR", "germany": "DE", "italy": "IT", "spain": "ES",
	"portugal": "PT", "netherlands": "NL", "the netherlands": "NL", "belgium": "BE",
	"switzerland": "CH", "austria": "AT", "greece": "GR", "sweden": "SE", "norway": "NO",
	"denmark": "DK", "finland": "FI", "iceland": "IS", "poland": "PL", "czech republic": "CZ",
	"czechia": "CZ", "hungary": "HU", "croatia": "HR", "turkey": "TR", "turkiye": "TR",
	"russia": "RU",
	"japan": "JP", "china": "CN", "south korea": "KR", "korea": "KR", "india": "IN",
	"thailand": "TH", "vietnam": "VN", "singapore": "SG", "malaysia": "MY", "indonesia": "ID",
	"philippines": "PH", "hong kong": "HK", "taiwan": "TW", "sri lanka": "LK", "nepal": "NP",
	"maldives": "MV",
	"united arab emirates": "AE", "uae": "AE", "qatar": "QA", "saudi arabia": "SA",
	"israel": "IL", "jordan": "JO", "oman": "OM", "bahrain": "BH", "kuwait": "KW",
	"egypt": "EG", "morocco": "MA", "south africa": "ZA", "kenya": "KE", "tanzania": "TZ",
	"nigeria": "NG", "tunisia": "TN", "ethiopia": "ET", "ghana": "GH",
	"australia": "AU", "new zealand": "NZ", "fiji": "FJ",
	"brazil": "BR", "argentina": "AR", "chile": "CL", "peru": "PE", "colombia": "CO",
	"ecuador": "EC", "uruguay": "UY", "bolivia": "BO", "venezuela": "VE", "paraguay": "PY",
	"costa rica": "CR", "panama": "PA", "guatemala": "GT", "belize": "BZ",
	"jamaica": "JM", "bahamas": "BS", "the bahamas": "BS", "cuba": "CU",
	"dominican republic": "DO", "puerto rico": "PR", "barbados": "BB", "aruba": "AW",
	"trinidad and tobago": "TT",
}

// continents maps ISO-2 codes to a display continent.
var continents = map[string]Continent{
	"US": NorthAmerica, "CA": NorthAmerica, "MX": NorthAmerica,
	"CR": NorthAmerica, "PA": NorthAmerica, "GT": NorthAmerica, "BZ": NorthAmerica,
	"GB": Europe, "IE": Europe, "FR": Europe, "DE": Europe, "IT": Europe, "ES": Europe,
	"PT": Europe, "NL": Europe, "BE": Europe, "CH": Europe, "AT": Europe, "GR": Europe,
	"SE": Europe, "NO": Europe, "DK": Europe, "FI": Europe, "IS": Europe, "PL": Europe,
	"CZ": Europe, "HU": Europe, "HR": Europe, "TR": Europe, "RU": Europe,
	"JP": Asia, "CN": Asia, "KR": Asia, "IN": Asia, "TH": Asia, "VN": Asia, "SG": Asia,
	"MY": Asia, "ID": Asia, "PH": Asia, "HK": Asia, "TW": Asia, "LK": Asia, "NP": Asia,
	"MV": Asia,
	"AE": MiddleEast, "QA": MiddleEast, "SA": MiddleEast, "IL": MiddleEast, "JO": MiddleEast,
	"OM": MiddleEast, "BH": MiddleEast, "KW": MiddleEast,
	"EG": Africa, "MA": Africa, "ZA": Africa, "KE": Africa, "TZ": Africa, "NG": Africa,
	"TN": Africa, "ET": Africa, "GH": Africa,
	"AU": Oceania, "NZ": Oceania, "FJ": Oceania,
	"BR": SouthAmerica, "AR": SouthAmerica, "CL": SouthAmerica, "PE": SouthAmerica,
	"CO": SouthAmerica, "EC": SouthAmerica, "UY": SouthAmerica, "BO": SouthAmerica,
	"VE": SouthAmerica, "PY": SouthAmerica,
	"JM": Caribbean, "BS": Caribbean, "CU": Caribbean, "DO": Caribbean, "PR": Caribbean,
	"BB": Caribbean, "AW": Caribbean, "TT": Caribbean,
}

// CountryCode resolves a free-text country name (or an ISO-2 code) to ISO-2.
func CountryCode(country string) string {
	n := Normalize(country)
	if code, ok := countryCodes[n]; ok {
		return code
	}
	if len(n) == 2 {
		if up := strings.ToUpper(n); continents[up] != "" {
			return up
		}
	}
	return UnknownCountryCode
}

// ContinentOf returns the continent of an ISO-2 code.
func ContinentOf(countryCode string) Continent {
	if c, ok := continents[strings.ToUpper(countryCode)]; ok {
		return c
	}
	return DefaultContinent
}

// Flag builds the regional-indicator flag for an ISO-2 code, "" if invalid.
func Flag(countryCode string) string {
	code := strings.ToUpper(countryCode)
	if utf8.RuneCountInString(code) != 2 || code == UnknownCountryCode {
		return ""
	}
	var b strings.Builder
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return b.String()
}
