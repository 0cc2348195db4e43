package gazetteer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/wander/internal/domain"
)

func TestEmbeddedLoader(t *testing.T) {
	ds, err := NewEmbeddedLoader().Load(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, ds.Cities)
	assert.NotEmpty(t, ds.Districts)
	assert.NotEmpty(t, ds.Airports)
	assert.NotEmpty(t, ds.Landmarks)
	require.Len(t, ds.Popular, 15)
	assert.Equal(t, "city-paris", ds.Popular[0].ID)
	assert.Equal(t, "airport-JFK", ds.Airports[0].ID)

	for _, s := range ds.Cities {
		assert.Equal(t, domain.PlaceCity, s.Type, s.ID)
		assert.NotEqual(t, domain.UnknownCountryCode, s.CountryCode, "%s has an unresolved country", s.ID)
	}
	for _, s := range ds.Airports {
		assert.Len(t, s.Code, 3, s.ID)
	}
	for _, s := range ds.Landmarks {
		assert.True(t, s.Type.Valid(), s.ID)
	}
}

func TestFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gazetteer.yaml")
	content := `cities:
  - name: Lisbon
    country: Portugal
    lat: 38.72
    lng: -9.14
    popularity: 8
    aliases: [Lisboa]
popular:
  - city-lisbon
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Cities, 1)
	assert.Equal(t, "city-lisbon", ds.Cities[0].ID)
	assert.Equal(t, []string{"Lisboa"}, ds.Cities[0].Aliases)
	assert.Equal(t, "PT", ds.Cities[0].CountryCode)
	require.Len(t, ds.Popular, 1)
}

func TestFileLoaderErrors(t *testing.T) {
	_, err := NewFileLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load(context.Background())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cities: [name: {"), 0o644))
	_, err = NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
}
