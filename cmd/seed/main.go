// Command seed loads the default rates, the rush-hour special rate and the
// baseline settings into the configured database. It is idempotent.
package main

import (
	"log"

	"github.com/idiarso/parkingLot-sub000/internal/config"
	"github.com/idiarso/parkingLot-sub000/internal/migration"
	"github.com/idiarso/parkingLot-sub000/internal/observability"
	"github.com/idiarso/parkingLot-sub000/internal/seed"
	"github.com/idiarso/parkingLot-sub000/pkg/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	conn, err := db.Open(cfg, logger)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	if err := migration.RunMigrations(conn); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := seed.EnsureDefaults(conn); err != nil {
		log.Fatalf("seed: %v", err)
	}

	logger.Info("seed complete")
}
