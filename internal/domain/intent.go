package domain

import (
	"regexp"
	"strings"
)

// Intent is what the user seems to be looking for.
type Intent struct {
	CleanQuery        string      `json:"cleanQuery"`
	Types             []PlaceType `json:"types,omitempty"`
	IsProximitySearch bool        `json:"isProximitySearch"`
}

// HasType reports whether t is part of the intent's type filter.
func (i Intent) HasType(t PlaceType) bool {
	for _, it := range i.Types {
		if it == t {
			return true
		}
	}
	return false
}

var (
	proximityPattern = regexp.MustCompile(`(?i)^(hotels? )?(near|close to|around|by) (.+)$`)
	locationPattern  = regexp.MustCompile(`(?i)^(hotels? )?in (.+)$`)

	landmarkKeywords = []string{
		"tower", "statue", "palace", "cathedral", "temple", "monument",
		"museum", "park", "garden", "bridge", "gate", "square", "plaza",
	}
	neighborhoodKeywords = []string{
		"district", "quarter", "area", "downtown", "uptown", "beach", "bay", "hills",
	}
)

// DetectIntent classifies a raw query. The first matching rule wins.
func DetectIntent(query string) Intent {
	q := strings.TrimSpace(query)

	if m := proximityPattern.FindStringSubmatch(q); m != nil {
		return Intent{
			CleanQuery:        strings.TrimSpace(m[3]),
			Types:             []PlaceType{PlaceLandmark, PlacePOI, PlaceNeighborhood},
			IsProximitySearch: true,
		}
	}

	if m := locationPattern.FindStringSubmatch(q); m != nil {
		return Intent{
			CleanQuery: strings.TrimSpace(m[2]),
			Types:      []PlaceType{PlaceNeighborhood, PlaceCity},
		}
	}

	normalized := Normalize(q)
	if containsAny(normalized, landmarkKeywords) {
		return Intent{CleanQuery: q, Types: []PlaceType{PlaceLandmark, PlacePOI}}
	}
	if containsAny(normalized, neighborhoodKeywords) {
		return Intent{CleanQuery: q, Types: []PlaceType{PlaceNeighborhood, PlaceCity}}
	}

	return Intent{CleanQuery: q}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
