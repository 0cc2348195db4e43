package domain

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MinQueryLength is the shortest query (in runes) worth searching for.
const MinQueryLength = 2

const (
	// CityLimit caps city search results
	CityLimit = 10
	// DistrictLimit caps neighborhood/district search results
	DistrictLimit = 8
	// TransferLimit caps transfer location results
	TransferLimit = 12

	// CityTypeBonus is added to every matching entry of type city
	CityTypeBonus = 5.0
	// PopularityWeight multiplies an entry's popularity (0-10)
	PopularityWeight = 2.0
)

// Field selects which attribute of a suggestion a rule looks at.
type Field int

const (
	FieldName Field = iota
	FieldCity
	FieldCountry
	FieldID
	FieldCode // IATA or other short code
	FieldAliases
)

// MatchKind is how a normalized field value is compared to the query.
type MatchKind int

const (
	MatchExact       MatchKind = iota
	MatchPrefix                // value starts with query
	MatchContains              // value contains query
	MatchContainedBy           // query contains value
	MatchOverlap               // either contains the other
)

// Rule awards Score when Field matches the query according to Match.
type Rule struct {
	Field Field
	Match MatchKind
	Score float64
}

// ScoreTable is an ordered rule list: the first matching rule wins.
type ScoreTable struct {
	Name             string
	Rules            []Rule
	CityBonus        float64
	PopularityWeight float64
	Limit            int

	// ScoreOnly keeps equal scores in input order instead of breaking ties
	// by popularity and name.
	ScoreOnly bool
}

// CityTable scores the curated city dataset.
var CityTable = ScoreTable{
	Name: "cities",
	Rules: []Rule{
		{FieldName, MatchExact, 100},
		{FieldID, MatchExact, 90},
		{FieldCode, MatchExact, 90},
		{FieldName, MatchPrefix, 80},
		{FieldCity, MatchPrefix, 75},
		{FieldAliases, MatchOverlap, 70},
		{FieldName, MatchContains, 60},
		{FieldCity, MatchContains, 55},
		{FieldCountry, MatchContains, 30},
	},
	CityBonus:        CityTypeBonus,
	PopularityWeight: PopularityWeight,
	Limit:            CityLimit,
}

// DistrictTable scores neighborhoods. A query matching only the parent city
// is a weak signal here, the city itself is a better answer.
var DistrictTable = ScoreTable{
	Name: "districts",
	Rules: []Rule{
		{FieldName, MatchExact, 100},
		{FieldName, MatchPrefix, 85},
		{FieldAliases, MatchOverlap, 70},
		{FieldName, MatchContains, 65},
		{FieldCity, MatchPrefix, 50},
		{FieldCity, MatchContains, 45},
		{FieldCountry, MatchContains, 20},
	},
	CityBonus:        CityTypeBonus,
	PopularityWeight: PopularityWeight,
	Limit:            DistrictLimit,
}

// AirportTable scores transfer pickup airports.
var AirportTable = ScoreTable{
	Name: "airports",
	Rules: []Rule{
		{FieldCode, MatchExact, 100},
		{FieldCode, MatchPrefix, 95},
		{FieldName, MatchContains, 85},
		{FieldCity, MatchOverlap, 75},
		{FieldCode, MatchContainedBy, 90},
	},
	Limit:     TransferLimit,
	ScoreOnly: true,
}

// LandmarkTable scores hotels and landmarks used as transfer drop-offs.
var LandmarkTable = ScoreTable{
	Name: "landmarks",
	Rules: []Rule{
		{FieldName, MatchExact, 85},
		{FieldName, MatchPrefix, 78},
		{FieldName, MatchContains, 65},
		{FieldCity, MatchContains, 55},
	},
	Limit:     TransferLimit,
	ScoreOnly: true,
}

// TransferCityTable scores cities in the transfer search.
var TransferCityTable = ScoreTable{
	Name: "transfer-cities",
	Rules: []Rule{
		{FieldName, MatchExact, 80},
		{FieldName, MatchPrefix, 70},
		{FieldName, MatchContains, 60},
		{FieldCountry, MatchContains, 40},
	},
	Limit:     TransferLimit,
	ScoreOnly: true,
}

// Scored is a suggestion with its match score.
type Scored struct {
	Suggestion Suggestion
	Score      float64
}

// Source pairs a dataset with the table used to score it.
type Source struct {
	Entries []Suggestion
	Table   ScoreTable
}

// Rank scores entries against query with table and returns the best
// table.Limit matches. Queries shorter than MinQueryLength match nothing.
func Rank(query string, entries []Suggestion, table ScoreTable) []Scored {
	return RankSources(query, table.Limit, Source{Entries: entries, Table: table})
}

// RankSources scores several datasets, each with its own table, and ranks
// the union. limit <= 0 keeps every match. Ties are broken by popularity and
// name unless every table is ScoreOnly, in which case sources and entries
// keep their order.
func RankSources(query string, limit int, sources ...Source) []Scored {
	q := Normalize(query)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return []Scored{}
	}

	results := make([]Scored, 0, 16)
	for _, src := range sources {
		for _, entry := range src.Entries {
			if score := Score(q, entry, src.Table); score > 0 {
				results = append(results, Scored{Suggestion: entry, Score: score})
			}
		}
	}

	sortScored(results, tieBreak(sources))

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Score returns the score of entry for an already normalized query, 0 when
// no rule matches.
func Score(normalizedQuery string, entry Suggestion, table ScoreTable) float64 {
	base := 0.0
	for _, rule := range table.Rules {
		if matchField(normalizedQuery, fieldValues(entry, rule.Field), rule.Match) {
			base = rule.Score
			break
		}
	}
	if base == 0 {
		return 0
	}

	if entry.Type == PlaceCity {
		base += table.CityBonus
	}
	base += table.PopularityWeight * float64(entry.Popularity)
	return base
}

func fieldValues(s Suggestion, f Field) []string {
	switch f {
	case FieldName:
		return []string{s.Name}
	case FieldCity:
		return []string{s.City}
	case FieldCountry:
		return []string{s.Country}
	case FieldID:
		return []string{s.ID}
	case FieldCode:
		return []string{s.Code}
	case FieldAliases:
		return s.Aliases
	}
	return nil
}

func matchField(q string, values []string, kind MatchKind) bool {
	for _, raw := range values {
		v := Normalize(raw)
		if v == "" {
			continue
		}
		if matchValue(q, v, kind) {
			return true
		}
	}
	return false
}

func matchValue(q, v string, kind MatchKind) bool {
	switch kind {
	case MatchExact:
		return v == q
	case MatchPrefix:
		return strings.HasPrefix(v, q)
	case MatchContains:
		return strings.Contains(v, q)
	case MatchContainedBy:
		return strings.Contains(q, v)
	case MatchOverlap:
		return strings.Contains(v, q) || strings.Contains(q, v)
	}
	return false
}

func tieBreak(sources []Source) bool {
	for _, src := range sources {
		if !src.Table.ScoreOnly {
			return true
		}
	}
	return false
}

// sortScored orders by score, then, when tieBreak is set, by popularity and
// name.
func sortScored(results []Scored, tieBreak bool) {
	// a Collator is not safe for concurrent use
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !tieBreak {
			return false
		}
		if a.Suggestion.Popularity != b.Suggestion.Popularity {
			return a.Suggestion.Popularity > b.Suggestion.Popularity
		}
		return col.CompareString(a.Suggestion.Name, b.Suggestion.Name) < 0
	})
}

// Suggestions strips the scores.
func Suggestions(scored []Scored) []Suggestion {
	out := make([]Suggestion, len(scored))
	for i, s := range scored {
		out[i] = s.Suggestion
	}
	return out
}
