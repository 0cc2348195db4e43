package domain

import "strings"

type keywordEmoji struct {
	keyword string
	emoji   string
}

// nameEmojis is checked in order against the normalized place name.
var nameEmojis = []keywordEmoji{
	{"tower", "🗼"},
	{"museum", "🏛️"},
	{"cathedral", "⛪"},
	{"church", "⛪"},
	{"basilica", "⛪"},
	{"mosque", "🕌"},
	{"temple", "🛕"},
	{"shrine", "⛩️"},
	{"palace", "🏰"},
	{"castle", "🏰"},
	{"statue", "🗽"},
	{"bridge", "🌉"},
	{"park", "🌳"},
	{"garden", "🌷"},
	{"beach", "🏖️"},
	{"stadium", "🏟️"},
	{"market", "🛍️"},
	{"zoo", "🦁"},
	{"airport", "✈️"},
	{"station", "🚉"},
	{"harbor", "⚓"},
	{"port", "⚓"},
}

// cityEmojis holds a representative glyph for well-known cities.
var cityEmojis = map[string]string{
	"paris":          "🗼",
	"new york":       "🗽",
	"london":         "🎡",
	"tokyo":          "🗾",
	"rome":           "🏛️",
	"barcelona":      "⛪",
	"dubai":          "🏙️",
	"sydney":         "🌉",
	"rio de janeiro": "🏖️",
	"cancun":         "🏝️",
	"las vegas":      "🎰",
	"san francisco":  "🌉",
	"amsterdam":      "🚲",
	"venice":         "🛶",
	"cairo":          "🏜️",
	"istanbul":       "🕌",
	"bangkok":        "🛕",
	"kyoto":          "⛩️",
	"honolulu":       "🌺",
	"miami":          "🌴",
}

var typeEmojis = map[PlaceType]string{
	PlaceCity:         "🏙️",
	PlaceAirport:      "✈️",
	PlaceNeighborhood: "🏘️",
	PlaceLandmark:     "🏛️",
	PlacePOI:          "📍",
}

// EmojiFor picks a decorative glyph: name keyword first, then the city
// table or the country flag for cities, then a per-type default.
func EmojiFor(t PlaceType, name, city, countryCode string) string {
	n := Normalize(name)
	if t != PlaceCity {
		for _, ke := range nameEmojis {
			if strings.Contains(n, ke.keyword) {
				return ke.emoji
			}
		}
	}

	if t == PlaceCity {
		if e, ok := cityEmojis[n]; ok {
			return e
		}
		if e, ok := cityEmojis[Normalize(city)]; ok {
			return e
		}
		if f := Flag(countryCode); f != "" {
			return f
		}
	}

	if e, ok := typeEmojis[t]; ok {
		return e
	}
	return typeEmojis[PlaceCity]
}
