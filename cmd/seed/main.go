// Command seed imports a gazetteer YAML file (the embedded one by default)
// into the SQL places table, replacing its content.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/MrSnakeDoc/wander/internal/config"
	"github.com/MrSnakeDoc/wander/internal/gazetteer"
)

func main() {
	file := flag.String("file", "", "Gazetteer YAML to import (default: embedded data)")
	migrateFirst := flag.Bool("migrate", true, "Apply schema migrations before seeding")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db := config.LoadDatabase()
	if db.DSN == "" {
		logger.Fatal("WANDER_GAZETTEER_DSN is not set")
	}

	f, err := readFile(*file)
	if err != nil {
		logger.Fatal("Failed to read gazetteer", zap.Error(err))
	}
	ds, err := gazetteer.NewMapper().MapFile(f)
	if err != nil {
		logger.Fatal("Invalid gazetteer", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := gazetteer.Connect(ctx, db.Driver, db.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = conn.Close() }()
	logger.Info("Connected to database", zap.String("driver", db.Driver))

	if *migrateFirst {
		if err := gazetteer.Migrate(conn, db.Driver); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	if err := gazetteer.NewSQLStore(conn).Replace(ctx, ds); err != nil {
		logger.Fatal("Failed to seed places", zap.Error(err))
	}

	counts := ds.Counts()
	logger.Info("Seed completed",
		zap.Int("cities", counts[gazetteer.KindCities]),
		zap.Int("districts", counts[gazetteer.KindDistricts]),
		zap.Int("airports", counts[gazetteer.KindAirports]),
		zap.Int("landmarks", counts[gazetteer.KindLandmarks]),
		zap.Int("popular", counts[gazetteer.KindPopular]))
}

func readFile(path string) (gazetteer.File, error) {
	if path == "" {
		return gazetteer.EmbeddedFile()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return gazetteer.File{}, err
	}
	return gazetteer.Parse(data)
}
