package gazetteer

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/wander/internal/domain"
)

// Mapper converts gazetteer records to domain suggestions
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// MapFile builds a Dataset from a parsed gazetteer file. Ids must be unique
// across all kinds and every popular id must resolve.
func (m *Mapper) MapFile(f File) (*Dataset, error) {
	ds := &Dataset{}
	seen := make(map[string]domain.Suggestion)

	add := func(kind string, recs []PlaceRecord, build func(PlaceRecord) (domain.Suggestion, error)) ([]domain.Suggestion, error) {
		out := make([]domain.Suggestion, 0, len(recs))
		for i, rec := range recs {
			if strings.TrimSpace(rec.Name) == "" {
				return nil, fmt.Errorf("%s[%d]: name is required", kind, i)
			}
			s, err := build(rec)
			if err != nil {
				return nil, fmt.Errorf("%s[%d] %q: %w", kind, i, rec.Name, err)
			}
			if _, dup := seen[s.ID]; dup {
				return nil, fmt.Errorf("%s[%d]: duplicate id %q", kind, i, s.ID)
			}
			seen[s.ID] = s
			out = append(out, s)
		}
		return out, nil
	}

	var err error
	if ds.Cities, err = add(KindCities, f.Cities, mapCity); err != nil {
		return nil, err
	}
	if ds.Districts, err = add(KindDistricts, f.Districts, mapDistrict); err != nil {
		return nil, err
	}
	if ds.Airports, err = add(KindAirports, f.Airports, mapAirport); err != nil {
		return nil, err
	}
	if ds.Landmarks, err = add(KindLandmarks, f.Landmarks, mapLandmark); err != nil {
		return nil, err
	}

	if ds.Len() == 0 {
		return nil, fmt.Errorf("no places found in gazetteer")
	}

	ds.Popular = make([]domain.Suggestion, 0, len(f.Popular))
	for _, id := range f.Popular {
		s, ok := seen[id]
		if !ok {
			return nil, fmt.Errorf("popular: unknown id %q", id)
		}
		ds.Popular = append(ds.Popular, s)
	}

	return ds, nil
}

func mapCity(rec PlaceRecord) (domain.Suggestion, error) {
	if rec.City == "" {
		rec.City = rec.Name
	}
	if rec.ID == "" {
		rec.ID = "city-" + domain.Slug(rec.Name)
	}
	return build(rec, domain.PlaceCity), nil
}

func mapDistrict(rec PlaceRecord) (domain.Suggestion, error) {
	if rec.City == "" {
		return domain.Suggestion{}, fmt.Errorf("city is required")
	}
	if rec.ID == "" {
		rec.ID = "district-" + domain.Slug(rec.City) + "-" + domain.Slug(rec.Name)
	}
	return build(rec, domain.PlaceNeighborhood), nil
}

func mapAirport(rec PlaceRecord) (domain.Suggestion, error) {
	rec.Code = strings.ToUpper(strings.TrimSpace(rec.Code))
	if rec.Code == "" {
		return domain.Suggestion{}, fmt.Errorf("code is required")
	}
	if rec.ID == "" {
		rec.ID = "airport-" + rec.Code
	}
	return build(rec, domain.PlaceAirport), nil
}

func mapLandmark(rec PlaceRecord) (domain.Suggestion, error) {
	t := domain.PlaceLandmark
	if rec.Type != "" {
		t = domain.PlaceType(rec.Type)
		if !t.Valid() {
			return domain.Suggestion{}, fmt.Errorf("unknown type %q", rec.Type)
		}
	}
	if rec.ID == "" {
		rec.ID = "landmark-" + domain.Slug(rec.Name)
	}
	return build(rec, t), nil
}

func build(rec PlaceRecord, t domain.PlaceType) domain.Suggestion {
	cc := strings.ToUpper(rec.CountryCode)
	if cc == "" {
		cc = domain.CountryCode(rec.Country)
	}
	emoji := rec.Emoji
	if emoji == "" {
		emoji = domain.EmojiFor(t, rec.Name, rec.City, cc)
	}
	return domain.Suggestion{
		ID:          rec.ID,
		Name:        rec.Name,
		City:        rec.City,
		Country:     rec.Country,
		CountryCode: cc,
		Continent:   domain.ContinentOf(cc),
		Location:    domain.Location{Lat: rec.Lat, Lng: rec.Lng},
		Type:        t,
		Code:        rec.Code,
		Emoji:       emoji,
		Flag:        domain.Flag(cc),
		Popularity:  rec.Popularity,
		Aliases:     rec.Aliases,
	}
}
