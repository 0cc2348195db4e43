package gazetteer

// PlaceRecord is one entry of the gazetteer YAML. Only name is mandatory;
// the mapper derives ids, country codes and emojis when they are omitted.
type PlaceRecord struct {
	ID          string   `yaml:"id"`
	Code        string   `yaml:"code"`
	Name        string   `yaml:"name"`
	City        string   `yaml:"city"`
	Country     string   `yaml:"country"`
	CountryCode string   `yaml:"countryCode"`
	Lat         float64  `yaml:"lat"`
	Lng         float64  `yaml:"lng"`
	Type        string   `yaml:"type"`
	Emoji       string   `yaml:"emoji"`
	Popularity  int      `yaml:"popularity"`
	Aliases     []string `yaml:"aliases"`
}

// File is the root structure of gazetteer.yaml
type File struct {
	Cities    []PlaceRecord `yaml:"cities"`
	Districts []PlaceRecord `yaml:"districts"`
	Airports  []PlaceRecord `yaml:"airports"`
	Landmarks []PlaceRecord `yaml:"landmarks"`
	// Popular lists suggestion ids in display order.
	Popular []string `yaml:"popular"`
}
