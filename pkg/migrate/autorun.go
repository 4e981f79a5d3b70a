package migrate

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/greenbasket/greenbasket-backend/pkg/db"
	"github.com/greenbasket/greenbasket-backend/pkg/env"
)

// MaybeRunDev applies migrations at startup in dev when enabled. Prod
// deploys run the migrate binary explicitly.
func MaybeRunDev(ctx context.Context, client *db.Client, enabled bool, log zerolog.Logger) error {
	if !enabled || !env.Current().IsDev() {
		return nil
	}
	sqlDB, err := client.Gorm().DB()
	if err != nil {
		return err
	}
	log.Info().Msg("running dev auto-migrations")
	return Up(ctx, sqlDB)
}
