package domain

import "testing"

func testCities() []Suggestion {
	return []Suggestion{
		{ID: "paris", Name: "Paris", City: "Paris", Country: "France", CountryCode: "FR", Type: PlaceCity, Popularity: 10},
		{ID: "paris-hilton", Name: "Paris Hilton Hotel", City: "Las Vegas", Country: "United States", Type: PlacePOI},
		{ID: "parma", Name: "Parma", City: "Parma", Country: "Italy", Type: PlaceCity, Popularity: 3},
		{ID: "sao-paulo", Name: "São Paulo", City: "São Paulo", Country: "Brazil", Type: PlaceCity, Popularity: 8, Aliases: []string{"Sampa"}},
		{ID: "lisbon", Name: "Lisbon", City: "Lisbon", Country: "Portugal", Type: PlaceCity, Popularity: 7, Aliases: []string{"Lisboa"}},
		{ID: "nyc", Name: "New York", City: "New York", Country: "United States", Type: PlaceCity, Popularity: 10},
	}
}

func TestRankMinimumLength(t *testing.T) {
	for _, q := range []string{"", "a", " p ", "é"} {
		if got := Rank(q, testCities(), CityTable); len(got) != 0 {
			t.Errorf("Rank(%q) returned %d results, want 0", q, len(got))
		}
	}
}

func TestRankExactMatchFirst(t *testing.T) {
	got := Rank("Paris", testCities(), CityTable)
	if len(got) == 0 {
		t.Fatal("Rank() returned no results")
	}
	if got[0].Suggestion.ID != "paris" {
		t.Errorf("top result = %s, want paris", got[0].Suggestion.ID)
	}
}

func TestRankPrefixWithBonuses(t *testing.T) {
	got := Rank("par", testCities(), CityTable)
	if len(got) < 1 {
		t.Fatal("Rank() returned no results")
	}

	found := -1
	for i, s := range got {
		if s.Suggestion.ID == "paris" {
			found = i
			if s.Score != 80+CityTypeBonus+PopularityWeight*10 {
				t.Errorf("paris score = %v, want 105", s.Score)
			}
		}
	}
	if found < 0 || found > 2 {
		t.Errorf("paris rank = %d, want within top 3", found)
	}
}

func TestRankAccentInsensitive(t *testing.T) {
	got := Rank("sao paulo", testCities(), CityTable)
	if len(got) == 0 || got[0].Suggestion.ID != "sao-paulo" {
		t.Fatalf("Rank(sao paulo) = %+v, want sao-paulo first", got)
	}
}

func TestRankAlias(t *testing.T) {
	got := Rank("lisboa", testCities(), CityTable)
	if len(got) != 1 || got[0].Suggestion.ID != "lisbon" {
		t.Fatalf("Rank(lisboa) = %+v, want only lisbon", got)
	}
	if want := 70 + CityTypeBonus + PopularityWeight*7; got[0].Score != want {
		t.Errorf("alias score = %v, want %v", got[0].Score, want)
	}
}

func TestRankCodeMatch(t *testing.T) {
	got := Rank("nyc", testCities(), CityTable)
	if len(got) != 1 || got[0].Suggestion.ID != "nyc" {
		t.Fatalf("Rank(nyc) = %+v, want nyc", got)
	}
	if want := 90 + CityTypeBonus + PopularityWeight*10; got[0].Score != want {
		t.Errorf("code score = %v, want %v", got[0].Score, want)
	}
}

func TestRankCountryIsWeakest(t *testing.T) {
	got := Rank("united states", testCities(), CityTable)
	if len(got) != 2 {
		t.Fatalf("Rank(united states) returned %d results, want 2", len(got))
	}
	// both match on country only, bonuses decide
	if got[0].Suggestion.ID != "nyc" {
		t.Errorf("top result = %s, want nyc", got[0].Suggestion.ID)
	}
}

func TestRankNoMatch(t *testing.T) {
	got := Rank("zzzz", testCities(), CityTable)
	if got == nil || len(got) != 0 {
		t.Errorf("Rank(zzzz) = %v, want empty non-nil slice", got)
	}
}

func TestRankTruncates(t *testing.T) {
	entries := make([]Suggestion, 0, 30)
	for i := 0; i < 30; i++ {
		entries = append(entries, Suggestion{
			ID:   "san-" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Name: "San " + string(rune('A'+i%26)) + string(rune('a'+i/26)),
			Type: PlaceNeighborhood,
		})
	}

	if got := Rank("san", entries, CityTable); len(got) != CityLimit {
		t.Errorf("city Rank() returned %d, want %d", len(got), CityLimit)
	}
	if got := Rank("san", entries, DistrictTable); len(got) != DistrictLimit {
		t.Errorf("district Rank() returned %d, want %d", len(got), DistrictLimit)
	}
}

func TestRankTieBreaks(t *testing.T) {
	entries := []Suggestion{
		{ID: "b", Name: "Bravo Bay", Type: PlaceNeighborhood, Popularity: 1},
		{ID: "a", Name: "alpha bay", Type: PlaceNeighborhood, Popularity: 1},
		{ID: "c", Name: "Charlie Bay", Type: PlaceNeighborhood, Popularity: 1},
	}
	// all contain "bay" with the same popularity: alphabetical, case-insensitive
	got := Rank("bay", entries, DistrictTable)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].Suggestion.ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].Suggestion.ID, id)
		}
	}
}

func TestRankSourcesTransfer(t *testing.T) {
	airports := []Suggestion{
		{ID: "airport-cdg", Code: "CDG", Name: "Paris Charles de Gaulle Airport", City: "Paris", Country: "France", Type: PlaceAirport},
		{ID: "airport-ory", Code: "ORY", Name: "Paris Orly Airport", City: "Paris", Country: "France", Type: PlaceAirport},
	}
	landmarks := []Suggestion{
		{ID: "landmark-eiffel", Name: "Eiffel Tower", City: "Paris", Country: "France", Type: PlaceLandmark},
	}

	got := RankSources("cdg", TransferLimit,
		Source{Entries: airports, Table: AirportTable},
		Source{Entries: landmarks, Table: LandmarkTable},
	)
	if len(got) != 1 || got[0].Suggestion.Code != "CDG" || got[0].Score != 100 {
		t.Fatalf("RankSources(cdg) = %+v, want CDG scored 100", got)
	}

	got = RankSources("paris", TransferLimit,
		Source{Entries: airports, Table: AirportTable},
		Source{Entries: landmarks, Table: LandmarkTable},
	)
	if len(got) != 3 {
		t.Fatalf("RankSources(paris) returned %d, want 3", len(got))
	}
	if got[0].Suggestion.Type != PlaceAirport || got[2].Suggestion.Type != PlaceLandmark {
		t.Errorf("unexpected order: %+v", got)
	}
}

func TestAirportCodeRulesIgnoreID(t *testing.T) {
	heliport := Suggestion{ID: "airport-XYZ", Code: "XYZ", Name: "Heliport Central", City: "Nowhere", Type: PlaceAirport}

	for _, q := range []string{"ai", "air", "airp", "airport"} {
		if got := Score(Normalize(q), heliport, AirportTable); got != 0 {
			t.Errorf("Score(%q) = %v, want 0", q, got)
		}
	}
	if got := Score(Normalize("xy"), heliport, AirportTable); got != 95 {
		t.Errorf("code prefix score = %v, want 95", got)
	}

	airports := []Suggestion{
		heliport,
		{ID: "airport-LHR", Code: "LHR", Name: "Heathrow", City: "London", Type: PlaceAirport},
	}
	cities := []Suggestion{
		{ID: "city-dubai", Name: "Dubai", City: "Dubai", Country: "United Arab Emirates", Type: PlaceCity},
	}
	got := RankSources("ai", TransferLimit,
		Source{Entries: airports, Table: AirportTable},
		Source{Entries: cities, Table: TransferCityTable},
	)
	if len(got) != 1 || got[0].Suggestion.ID != "city-dubai" {
		t.Fatalf("RankSources(ai) = %+v, want only city-dubai", got)
	}
}

func TestRankSourcesScoreOnlyKeepsInputOrder(t *testing.T) {
	// equal scores: airports before landmarks, each in dataset order,
	// regardless of popularity or name
	airports := []Suggestion{
		{ID: "airport-ZZZ", Code: "ZZZ", Name: "Zulu Field", City: "Rome", Type: PlaceAirport},
		{ID: "airport-AAA", Code: "AAA", Name: "Alpha Field", City: "Rome", Type: PlaceAirport, Popularity: 9},
	}
	landmarks := []Suggestion{
		{ID: "landmark-b", Name: "Bravo Fountain", City: "Rome", Type: PlaceLandmark, Popularity: 10},
	}
	// city overlap scores 75 for airports, city contains 55 for the landmark
	got := RankSources("rome", TransferLimit,
		Source{Entries: airports, Table: AirportTable},
		Source{Entries: landmarks, Table: LandmarkTable},
	)
	want := []string{"airport-ZZZ", "airport-AAA", "landmark-b"}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].Suggestion.ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].Suggestion.ID, id)
		}
	}
}
