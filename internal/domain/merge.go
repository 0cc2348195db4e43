package domain

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxSuggestions caps a merged suggestion list.
const MaxSuggestions = 15

type priorityTable struct {
	byType map[PlaceType]int
	other  int
}

var (
	proximityPriority = priorityTable{
		byType: map[PlaceType]int{
			PlacePOI:          100,
			PlaceLandmark:     95,
			PlaceNeighborhood: 80,
			PlaceCity:         70,
			PlaceAirport:      50,
		},
		other: 60,
	}
	neighborhoodPriority = priorityTable{
		byType: map[PlaceType]int{
			PlaceNeighborhood: 100,
			PlaceCity:         90,
			PlaceLandmark:     70,
			PlacePOI:          65,
			PlaceAirport:      50,
		},
		other: 60,
	}
	defaultPriority = priorityTable{
		byType: map[PlaceType]int{
			PlaceCity:         100,
			PlaceLandmark:     80,
			PlaceNeighborhood: 70,
			PlacePOI:          60,
			PlaceAirport:      50,
		},
		other: 0,
	}
)

func (p priorityTable) of(t PlaceType) int {
	if v, ok := p.byType[t]; ok {
		return v
	}
	return p.other
}

func priorityFor(intent Intent) priorityTable {
	switch {
	case intent.IsProximitySearch || intent.HasType(PlacePOI) || intent.HasType(PlaceLandmark):
		return proximityPriority
	case intent.HasType(PlaceNeighborhood):
		return neighborhoodPriority
	default:
		return defaultPriority
	}
}

// DedupKey identifies the same place across sources. The id is ignored on
// purpose: sources namespace ids differently.
func DedupKey(s Suggestion) string {
	key := Normalize(s.Name) + "-" + Normalize(s.City) + "-" + Normalize(s.Country)
	return strings.Join(strings.Fields(key), "")
}

// Merge deduplicates local and external results (local wins), orders them by
// the intent's type priority and caps the list at MaxSuggestions.
func Merge(external, local []Suggestion, intent Intent) []Suggestion {
	seen := make(map[string]struct{}, len(local)+len(external))
	merged := make([]Suggestion, 0, len(local)+len(external))

	for _, list := range [][]Suggestion{local, external} {
		for _, s := range list {
			key := DedupKey(s)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, s)
		}
	}

	table := priorityFor(intent)
	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		pa, pb := table.of(a.Type), table.of(b.Type)
		if pa != pb {
			return pa > pb
		}
		ea, eb := a.Emoji != "", b.Emoji != ""
		if ea != eb {
			return ea
		}
		return utf8.RuneCountInString(a.Name) < utf8.RuneCountInString(b.Name)
	})

	if len(merged) > MaxSuggestions {
		merged = merged[:MaxSuggestions]
	}
	return merged
}
