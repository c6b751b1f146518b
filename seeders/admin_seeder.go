package seeders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"room-inventory/internal/entities"
	"room-inventory/pkg/config"
	"room-inventory/pkg/utils"
)

func seedAdmin(ctx context.Context, db *pgxpool.Pool, cfg config.SeedConfig, logger *zap.Logger) error {
	var existing string
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", cfg.AdminEmail).Scan(&existing)
	if err == nil {
		logger.Info("admin already exists, skipping", zap.String("email", cfg.AdminEmail))
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin: %w", err)
	}

	hashedPassword, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID string
	err = tx.QueryRow(ctx,
		"INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id",
		cfg.AdminEmail, hashedPassword,
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO profiles (id, username, role) VALUES ($1, $2, $3)",
		userID, cfg.AdminUsername, entities.RoleAdmin,
	)
	if err != nil {
		return fmt.Errorf("insert admin profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	logger.Info("admin created", zap.String("email", cfg.AdminEmail))
	return nil
}
