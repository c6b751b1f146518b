package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"room-inventory/internal/entities"
	apperrors "room-inventory/pkg/errors"
)

type ProfileRepositoryInterface interface {
	CreateProfile(ctx context.Context, tx pgx.Tx, profile entities.Profile) (*entities.Profile, error)
	FindProfile(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
	FindProfilesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entities.Profile, error)
	UpdateProfile(ctx context.Context, profile entities.Profile) (*entities.Profile, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL *string) (*entities.Profile, error)
}

type ProfileRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewProfileRepository(storage *pgxpool.Pool, logger *zap.Logger) ProfileRepositoryInterface {
	return &ProfileRepository{storage: storage, logger: logger}
}

const profileReturning = `RETURNING id, username, avatar_url, role, updated_at`

func scanProfile(row pgx.Row) (*entities.Profile, error) {
	var p entities.Profile
	if err := row.Scan(&p.ID, &p.Username, &p.AvatarURL, &p.Role, &p.UpdatedAt); err != nil {
		err = translatePgError(err, "scan profile")
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) CreateProfile(ctx context.Context, tx pgx.Tx, profile entities.Profile) (*entities.Profile, error) {
	query := `
		INSERT INTO profiles (id, username, avatar_url, role)
		VALUES ($1, $2, $3, $4)
		` + profileReturning
	return scanProfile(tx.QueryRow(ctx, query, profile.ID, profile.Username, profile.AvatarURL, profile.Role))
}

func (r *ProfileRepository) FindProfile(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	return scanProfile(r.storage.QueryRow(ctx,
		`SELECT id, username, avatar_url, role, updated_at FROM profiles WHERE id = $1`, id))
}

// FindProfilesByIDs returns the profiles that exist; missing ids are simply absent from the map.
func (r *ProfileRepository) FindProfilesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entities.Profile, error) {
	result := make(map[uuid.UUID]entities.Profile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.storage.Query(ctx,
		`SELECT id, username, avatar_url, role, updated_at FROM profiles WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("find profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		result[p.ID] = *p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return result, nil
}

func (r *ProfileRepository) UpdateProfile(ctx context.Context, profile entities.Profile) (*entities.Profile, error) {
	query := `
		UPDATE profiles SET username = $1, role = $2, updated_at = now()
		WHERE id = $3
		` + profileReturning
	return scanProfile(r.storage.QueryRow(ctx, query, profile.Username, profile.Role, profile.ID))
}

func (r *ProfileRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL *string) (*entities.Profile, error) {
	query := `
		UPDATE profiles SET avatar_url = $1, updated_at = now()
		WHERE id = $2
		` + profileReturning
	return scanProfile(r.storage.QueryRow(ctx, query, avatarURL, id))
}
