// Package gazetteer loads the curated destination dataset from the embedded
// YAML, an override file, or a SQL database.
package gazetteer

import (
	"context"

	"github.com/MrSnakeDoc/wander/internal/domain"
)

// Dataset names, used as metric labels and in /infra.
const (
	KindCities    = "cities"
	KindDistricts = "districts"
	KindAirports  = "airports"
	KindLandmarks = "landmarks"
	KindPopular   = "popular"
)

// Dataset is an immutable snapshot of the gazetteer. Callers must not mutate
// the slices once the dataset has been published.
type Dataset struct {
	Cities    []domain.Suggestion
	Districts []domain.Suggestion
	Airports  []domain.Suggestion
	Landmarks []domain.Suggestion
	Popular   []domain.Suggestion
}

// Source produces a fresh Dataset on every call.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
	Name() string
}

// Counts returns the number of entries per dataset.
func (d *Dataset) Counts() map[string]int {
	if d == nil {
		return map[string]int{}
	}
	return map[string]int{
		KindCities:    len(d.Cities),
		KindDistricts: len(d.Districts),
		KindAirports:  len(d.Airports),
		KindLandmarks: len(d.Landmarks),
		KindPopular:   len(d.Popular),
	}
}

// Len is the number of searchable places (popular entries are references).
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Cities) + len(d.Districts) + len(d.Airports) + len(d.Landmarks)
}
