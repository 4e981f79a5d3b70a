package main

import (
	"context"
	"database/sql"
	"flag"

	_ "github.com/lib/pq"

	"github.com/greenbasket/greenbasket-backend/pkg/config"
	"github.com/greenbasket/greenbasket-backend/pkg/logger"
	"github.com/greenbasket/greenbasket-backend/pkg/migrate"
)

func main() {
	status := flag.Bool("status", false, "print migration status instead of applying")
	flag.Parse()

	log := logger.Init("info")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	sqlDB, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer sqlDB.Close()

	ctx := context.Background()
	if *status {
		if err := migrate.Status(ctx, sqlDB); err != nil {
			log.Fatal().Err(err).Msg("migration status")
		}
		return
	}

	if err := migrate.Up(ctx, sqlDB); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}
	log.Info().Msg("migrations applied")
}
