package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"room-inventory/internal/entities"
	apperrors "room-inventory/pkg/errors"
)

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, translatePgError(err, "scan user")
	}
	return &u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (*entities.User, error) {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at`
	created, err := scanUser(tx.QueryRow(ctx, query, strings.ToLower(user.Email), user.PasswordHash))
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			r.logger.Error("failed to insert user", zap.Error(err))
		}
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return scanUser(r.storage.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`, strings.ToLower(email)))
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return scanUser(r.storage.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE id = $1`, id))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := r.storage.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
