package domain

// PlaceType is the kind of place a suggestion points to.
type PlaceType string

const (
	PlaceCity         PlaceType = "city"
	PlaceLandmark     PlaceType = "landmark"
	PlaceAirport      PlaceType = "airport"
	PlaceNeighborhood PlaceType = "neighborhood"
	PlacePOI          PlaceType = "poi"
)

// Valid reports whether t is one of the known place types.
func (t PlaceType) Valid() bool {
	switch t {
	case PlaceCity, PlaceLandmark, PlaceAirport, PlaceNeighborhood, PlacePOI:
		return true
	}
	return false
}

// Continent groups countries for display purposes.
type Continent string

const (
	NorthAmerica Continent = "North America"
	SouthAmerica Continent = "South America"
	Europe       Continent = "Europe"
	Asia         Continent = "Asia"
	Africa       Continent = "Africa"
	Oceania      Continent = "Oceania"
	MiddleEast   Continent = "Middle East"
	Caribbean    Continent = "Caribbean"
)

// Location is a WGS84 coordinate. The zero value means "unknown".
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Suggestion is a single destination returned to callers
type Suggestion struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	CountryCode string    `json:"countryCode"`
	Continent   Continent `json:"continent"`
	Location    Location  `json:"location"`
	Type        PlaceType `json:"type"`
	Code        string    `json:"code,omitempty"` // IATA or short code
	Emoji       string    `json:"emoji,omitempty"`
	Flag        string    `json:"flag,omitempty"`
	Popularity  int       `json:"popularity,omitempty"` // 0-10
	Aliases     []string  `json:"aliases,omitempty"`
}
