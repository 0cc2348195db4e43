// Command migrate applies the embedded gazetteer schema migrations.
//
//	WANDER_GAZETTEER_DSN=wander.db migrate -command up
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	"github.com/MrSnakeDoc/wander/internal/config"
	"github.com/MrSnakeDoc/wander/internal/gazetteer"
)

func main() {
	command := flag.String("command", "up", "Migration command: up, down, or version")
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

	conn, err := gazetteer.Connect(context.Background(), db.Driver, db.DSN)
	if err != nil {
		logger.Fatal("Failed to connect", zap.Error(err))
	}

	m, err := gazetteer.NewMigrator(conn, db.Driver)
	if err != nil {
		logger.Fatal("Failed to create migration instance", zap.Error(err))
	}
	defer func() { _, _ = m.Close() }()

	switch *command {
	case "up":
		logger.Info("Running migrations UP", zap.String("driver", db.Driver))
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("Migration up failed", zap.Error(err))
		}
	case "down":
		logger.Info("Running migrations DOWN", zap.String("driver", db.Driver))
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("Migration down failed", zap.Error(err))
		}
	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logger.Fatal("Failed to get version", zap.Error(err))
		}
		logger.Info("Migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	default:
		logger.Fatal("Unknown command", zap.String("command", *command))
	}

	logger.Info("Migration command completed successfully")
}
