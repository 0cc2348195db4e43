package gazetteer

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MrSnakeDoc/wander/internal/domain"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

const (
	kindCity     = "city"
	kindDistrict = "district"
	kindAirport  = "airport"
	kindLandmark = "landmark"

	aliasSep     = "|"
	insertChunk  = 100
	selectPlaces = `SELECT kind, id, position, name, city, country, country_code, continent, code,
       place_type, lat, lng, emoji, popularity, popular_rank, aliases
FROM places
ORDER BY kind, position`
	insertPlace = `INSERT INTO places (kind, id, position, name, city, country, country_code, continent, code,
       place_type, lat, lng, emoji, popularity, popular_rank, aliases)
VALUES (:kind, :id, :position, :name, :city, :country, :country_code, :continent, :code,
       :place_type, :lat, :lng, :emoji, :popularity, :popular_rank, :aliases)`
)

type placeRow struct {
	Kind        string        `db:"kind"`
	ID          string        `db:"id"`
	Position    int           `db:"position"`
	Name        string        `db:"name"`
	City        string        `db:"city"`
	Country     string        `db:"country"`
	CountryCode string        `db:"country_code"`
	Continent   string        `db:"continent"`
	Code        string        `db:"code"`
	PlaceType   string        `db:"place_type"`
	Lat         float64       `db:"lat"`
	Lng         float64       `db:"lng"`
	Emoji       string        `db:"emoji"`
	Popularity  int           `db:"popularity"`
	PopularRank sql.NullInt64 `db:"popular_rank"`
	Aliases     string        `db:"aliases"`
}

// Connect opens a sqlx handle for one of the supported drivers.
func Connect(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported gazetteer driver %q", driver)
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to gazetteer database: %w", err)
	}

	// every new connection to an in-memory sqlite database is a new database
	if driver == DriverSQLite && strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// SQLStore keeps the gazetteer in the places table.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Name() string { return "sql" }

// Load reads every place, preserving the stored order within each kind.
func (s *SQLStore) Load(ctx context.Context) (*Dataset, error) {
	var rows []placeRow
	if err := s.db.SelectContext(ctx, &rows, selectPlaces); err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no places found in gazetteer database")
	}

	ds := &Dataset{}
	type ranked struct {
		rank int64
		s    domain.Suggestion
	}
	var popular []ranked

	for _, r := range rows {
		sug := r.suggestion()
		switch r.Kind {
		case kindCity:
			ds.Cities = append(ds.Cities, sug)
		case kindDistrict:
			ds.Districts = append(ds.Districts, sug)
		case kindAirport:
			ds.Airports = append(ds.Airports, sug)
		case kindLandmark:
			ds.Landmarks = append(ds.Landmarks, sug)
		default:
			return nil, fmt.Errorf("place %q has unknown kind %q", r.ID, r.Kind)
		}
		if r.PopularRank.Valid {
			popular = append(popular, ranked{rank: r.PopularRank.Int64, s: sug})
		}
	}

	slices.SortFunc(popular, func(a, b ranked) int { return cmp.Compare(a.rank, b.rank) })
	ds.Popular = make([]domain.Suggestion, 0, len(popular))
	for _, p := range popular {
		ds.Popular = append(ds.Popular, p.s)
	}

	return ds, nil
}

// Replace swaps the whole table content for ds in one transaction.
func (s *SQLStore) Replace(ctx context.Context, ds *Dataset) error {
	rows := toRows(ds)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM places"); err != nil {
		return fmt.Errorf("failed to clear places: %w", err)
	}

	for start := 0; start < len(rows); start += insertChunk {
		end := min(start+insertChunk, len(rows))
		if _, err := tx.NamedExecContext(ctx, insertPlace, rows[start:end]); err != nil {
			return fmt.Errorf("failed to insert places: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit places: %w", err)
	}
	return nil
}

func toRows(ds *Dataset) []placeRow {
	rank := make(map[string]int64, len(ds.Popular))
	for i, p := range ds.Popular {
		rank[p.ID] = int64(i)
	}

	rows := make([]placeRow, 0, ds.Len())
	add := func(kind string, list []domain.Suggestion) {
		for i, s := range list {
			r := placeRow{
				Kind:        kind,
				ID:          s.ID,
				Position:    i,
				Name:        s.Name,
				City:        s.City,
				Country:     s.Country,
				CountryCode: s.CountryCode,
				Continent:   string(s.Continent),
				Code:        s.Code,
				PlaceType:   string(s.Type),
				Lat:         s.Location.Lat,
				Lng:         s.Location.Lng,
				Emoji:       s.Emoji,
				Popularity:  s.Popularity,
				Aliases:     strings.Join(s.Aliases, aliasSep),
			}
			if n, ok := rank[s.ID]; ok {
				r.PopularRank = sql.NullInt64{Int64: n, Valid: true}
			}
			rows = append(rows, r)
		}
	}
	add(kindCity, ds.Cities)
	add(kindDistrict, ds.Districts)
	add(kindAirport, ds.Airports)
	add(kindLandmark, ds.Landmarks)
	return rows
}

func (r placeRow) suggestion() domain.Suggestion {
	var aliases []string
	if r.Aliases != "" {
		aliases = strings.Split(r.Aliases, aliasSep)
	}
	return domain.Suggestion{
		ID:          r.ID,
		Name:        r.Name,
		City:        r.City,
		Country:     r.Country,
		CountryCode: r.CountryCode,
		Continent:   domain.Continent(r.Continent),
		Location:    domain.Location{Lat: r.Lat, Lng: r.Lng},
		Type:        domain.PlaceType(r.PlaceType),
		Code:        r.Code,
		Emoji:       r.Emoji,
		Flag:        domain.Flag(r.CountryCode),
		Popularity:  r.Popularity,
		Aliases:     aliases,
	}
}
