package gazetteer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/wander/internal/domain"
)

func TestMapperMapFile(t *testing.T) {
	f := File{
		Cities: []PlaceRecord{
			{Name: "São Paulo", Country: "Brazil", Lat: -23.55, Lng: -46.63, Popularity: 6, Aliases: []string{"Sampa"}},
		},
		Districts: []PlaceRecord{
			{Name: "Le Marais", City: "Paris", Country: "France", Popularity: 8},
		},
		Airports: []PlaceRecord{
			{Code: "cdg", Name: "Paris Charles de Gaulle Airport", City: "Paris", Country: "France"},
		},
		Landmarks: []PlaceRecord{
			{Name: "Eiffel Tower", City: "Paris", Country: "France", Emoji: "🗼"},
			{Name: "The Ritz Paris", City: "Paris", Country: "France", Type: "poi"},
		},
		Popular: []string{"airport-CDG", "city-sao-paulo"},
	}

	ds, err := NewMapper().MapFile(f)
	require.NoError(t, err)

	city := ds.Cities[0]
	assert.Equal(t, "city-sao-paulo", city.ID)
	assert.Equal(t, "São Paulo", city.City, "cities are their own city")
	assert.Equal(t, "BR", city.CountryCode)
	assert.Equal(t, domain.SouthAmerica, city.Continent)
	assert.Equal(t, "🇧🇷", city.Flag)
	assert.Equal(t, domain.PlaceCity, city.Type)
	assert.NotEmpty(t, city.Emoji)

	assert.Equal(t, "district-paris-le-marais", ds.Districts[0].ID)
	assert.Equal(t, domain.PlaceNeighborhood, ds.Districts[0].Type)

	airport := ds.Airports[0]
	assert.Equal(t, "airport-CDG", airport.ID)
	assert.Equal(t, "CDG", airport.Code)
	assert.Equal(t, domain.PlaceAirport, airport.Type)

	assert.Equal(t, "landmark-eiffel-tower", ds.Landmarks[0].ID)
	assert.Equal(t, "🗼", ds.Landmarks[0].Emoji)
	assert.Equal(t, domain.PlacePOI, ds.Landmarks[1].Type)

	require.Len(t, ds.Popular, 2)
	assert.Equal(t, "airport-CDG", ds.Popular[0].ID)
	assert.Equal(t, city, ds.Popular[1])

	assert.Equal(t, 5, ds.Len())
	assert.Equal(t, map[string]int{
		KindCities: 1, KindDistricts: 1, KindAirports: 1, KindLandmarks: 2, KindPopular: 2,
	}, ds.Counts())
}

func TestMapperErrors(t *testing.T) {
	tests := []struct {
		name string
		file File
	}{
		{"empty", File{}},
		{"missing name", File{Cities: []PlaceRecord{{Country: "France"}}}},
		{"district without city", File{Districts: []PlaceRecord{{Name: "Soho"}}}},
		{"airport without code", File{Airports: []PlaceRecord{{Name: "Somewhere Airport"}}}},
		{"unknown landmark type", File{Landmarks: []PlaceRecord{{Name: "Big Ben", Type: "clock"}}}},
		{"duplicate id", File{Cities: []PlaceRecord{{Name: "Paris"}, {Name: "París"}}}},
		{"unknown popular id", File{Cities: []PlaceRecord{{Name: "Paris"}}, Popular: []string{"city-rome"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMapper().MapFile(tt.file)
			assert.Error(t, err)
		})
	}
}

func TestMapperUnknownCountry(t *testing.T) {
	ds, err := NewMapper().MapFile(File{Cities: []PlaceRecord{{Name: "Atlantis", Country: "Oceanus"}}})
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownCountryCode, ds.Cities[0].CountryCode)
	assert.Equal(t, domain.DefaultContinent, ds.Cities[0].Continent)
	assert.Empty(t, ds.Cities[0].Flag)
}
