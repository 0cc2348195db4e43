package gazetteer

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*SQLStore, *sqlx.DB) {
	t.Helper()
	db, err := Connect(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db, DriverSQLite))
	// migrating twice is a no-op
	require.NoError(t, Migrate(db, DriverSQLite))
	return NewSQLStore(db), db
}

func TestSQLStoreRoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	want, err := NewEmbeddedLoader().Load(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Replace(ctx, want))
	got, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.Counts(), got.Counts())
	assert.Equal(t, want.Cities, got.Cities)
	assert.Equal(t, want.Districts, got.Districts)
	assert.Equal(t, want.Airports, got.Airports)
	assert.Equal(t, want.Landmarks, got.Landmarks)
	assert.Equal(t, want.Popular, got.Popular)
}

func TestSQLStoreReplaceOverwrites(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	full, err := NewEmbeddedLoader().Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Replace(ctx, full))

	small := &Dataset{Cities: full.Cities[:2], Popular: full.Cities[1:2]}
	require.NoError(t, store.Replace(ctx, small))

	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM places"))
	assert.Equal(t, 2, n)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, small.Cities, got.Cities)
	assert.Equal(t, small.Popular, got.Popular)
	assert.Empty(t, got.Airports)
}

func TestSQLStoreEmpty(t *testing.T) {
	store, _ := setupStore(t)
	_, err := store.Load(context.Background())
	assert.Error(t, err)
}

func TestConnectUnsupportedDriver(t *testing.T) {
	_, err := Connect(context.Background(), "mysql", "root@/db")
	assert.Error(t, err)
}
