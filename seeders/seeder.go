package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"room-inventory/pkg/config"
)

// Run fills an empty database with the admin account and a demo building.
// Every step is idempotent so it is safe to run on each deploy.
func Run(ctx context.Context, db *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("seeding started")

	if err := seedAdmin(ctx, db, cfg.Seed, logger); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := seedStructure(ctx, db, logger); err != nil {
		return fmt.Errorf("seed structure: %w", err)
	}

	logger.Info("seeding finished")
	return nil
}
