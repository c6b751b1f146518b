package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"room-inventory/pkg/database/migrations"
)

const migrationsDir = "."

type MigrateCommand string

const (
	MigrateUp     MigrateCommand = "up"
	MigrateDown   MigrateCommand = "down"
	MigrateStatus MigrateCommand = "status"
	MigrateReset  MigrateCommand = "reset"
)

// Migrate runs an embedded goose command against the pool's database.
func Migrate(ctx context.Context, pool *pgxpool.Pool, command MigrateCommand) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	var err error
	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, db, migrationsDir)
	case MigrateDown:
		err = goose.DownContext(ctx, db, migrationsDir)
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, migrationsDir)
	case MigrateReset:
		err = goose.ResetContext(ctx, db, migrationsDir)
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
