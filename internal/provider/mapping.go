package provider

import (
	"strings"

	"github.com/MrSnakeDoc/wander/internal/domain"
)

type placesResponse struct {
	Data []placeRecord `json:"data"`
}

// placeRecord is one entry of the places API. Field names vary between API
// versions, so several aliases are accepted.
type placeRecord struct {
	PlaceID          string   `json:"placeId"`
	ID               string   `json:"id"`
	DisplayName      string   `json:"displayName"`
	Name             string   `json:"name"`
	TextForSearch    string   `json:"textForSearch"`
	FormattedAddress string   `json:"formattedAddress"`
	CityName         string   `json:"cityName"`
	CountryCode      string   `json:"countryCode"`
	CountryName      string   `json:"countryName"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	Type             string   `json:"type"`
	Types            []string `json:"types"`
}

// typeRules is checked in order against the lowercased provider type tags.
var typeRules = []struct {
	keywords []string
	t        domain.PlaceType
}{
	{[]string{"city", "town"}, domain.PlaceCity},
	{[]string{"airport"}, domain.PlaceAirport},
	{[]string{"neighborhood", "neighbourhood", "district"}, domain.PlaceNeighborhood},
	{[]string{"poi", "point_of_interest"}, domain.PlacePOI},
	{[]string{"landmark", "monument"}, domain.PlaceLandmark},
}

// MapType maps free-form provider type tags to a place type; unknown tags map
// to city.
func MapType(tags ...string) domain.PlaceType {
	joined := strings.ToLower(strings.Join(tags, " "))
	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(joined, kw) {
				return rule.t
			}
		}
	}
	return domain.PlaceCity
}

// splitAddress returns the first and last comma-separated segments.
func splitAddress(addr string) (city, country string) {
	var parts []string
	for _, p := range strings.Split(addr, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], parts[len(parts)-1]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func (r placeRecord) suggestion() (domain.Suggestion, bool) {
	addrCity, addrCountry := splitAddress(firstNonEmpty(r.FormattedAddress, r.TextForSearch))

	name := firstNonEmpty(r.DisplayName, r.Name, addrCity)
	if name == "" {
		return domain.Suggestion{}, false
	}

	t := MapType(append([]string{r.Type}, r.Types...)...)

	city := firstNonEmpty(r.CityName, addrCity)
	if t == domain.PlaceCity && city == "" {
		city = name
	}
	country := firstNonEmpty(r.CountryName, addrCountry)

	cc := strings.ToUpper(strings.TrimSpace(r.CountryCode))
	if len(cc) != 2 {
		cc = domain.CountryCode(country)
	}

	id := firstNonEmpty(r.PlaceID, r.ID)
	if id == "" {
		id = domain.Slug(name + " " + city)
	}

	return domain.Suggestion{
		ID:          "liteapi-" + id,
		Name:        name,
		City:        city,
		Country:     country,
		CountryCode: cc,
		Continent:   domain.ContinentOf(cc),
		Location:    domain.Location{Lat: r.Latitude, Lng: r.Longitude},
		Type:        t,
		Emoji:       domain.EmojiFor(t, name, city, cc),
		Flag:        domain.Flag(cc),
	}, true
}
