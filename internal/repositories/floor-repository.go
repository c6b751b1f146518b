package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"room-inventory/internal/entities"
	apperrors "room-inventory/pkg/errors"
)

type FloorRepositoryInterface interface {
	CreateFloor(ctx context.Context, floor entities.Floor) (*entities.Floor, error)
	FindFloor(ctx context.Context, id uuid.UUID) (*entities.Floor, error)
	ListFloorsWithRooms(ctx context.Context) ([]entities.Floor, error)
}

type FloorRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewFloorRepository(storage *pgxpool.Pool, logger *zap.Logger) FloorRepositoryInterface {
	return &FloorRepository{storage: storage, logger: logger}
}

func (r *FloorRepository) CreateFloor(ctx context.Context, floor entities.Floor) (*entities.Floor, error) {
	query := `
		INSERT INTO floors (name, floor_number)
		VALUES ($1, $2)
		RETURNING id, name, floor_number, created_at`
	var f entities.Floor
	err := r.storage.QueryRow(ctx, query, floor.Name, floor.FloorNumber).Scan(&f.ID, &f.Name, &f.FloorNumber, &f.CreatedAt)
	if err != nil {
		return nil, translatePgError(err, "insert floor")
	}
	return &f, nil
}

func (r *FloorRepository) FindFloor(ctx context.Context, id uuid.UUID) (*entities.Floor, error) {
	var f entities.Floor
	err := r.storage.QueryRow(ctx, `SELECT id, name, floor_number, created_at FROM floors WHERE id = $1`, id).
		Scan(&f.ID, &f.Name, &f.FloorNumber, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrFloorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find floor: %w", err)
	}
	return &f, nil
}

// ListFloorsWithRooms returns floors ordered by floor_number, each with its rooms ordered by room_number.
func (r *FloorRepository) ListFloorsWithRooms(ctx context.Context) ([]entities.Floor, error) {
	query := `
		SELECT f.id, f.name, f.floor_number, f.created_at,
		       r.id, r.room_number, r.floor_number, r.status, r.previous_status, r.created_at, r.updated_at
		FROM floors f
		LEFT JOIN rooms r ON r.floor_id = f.id
		ORDER BY f.floor_number ASC, r.room_number ASC`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list floors: %w", err)
	}
	defer rows.Close()

	floors := make([]entities.Floor, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			f           entities.Floor
			roomID      *uuid.UUID
			roomNumber  *string
			floorNumber *int
			status      *entities.RoomStatus
			prevStatus  *entities.RoomStatus
			createdAt   *time.Time
			updatedAt   *time.Time
		)
		if err := rows.Scan(
			&f.ID, &f.Name, &f.FloorNumber, &f.CreatedAt,
			&roomID, &roomNumber, &floorNumber, &status, &prevStatus, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan floor: %w", err)
		}

		pos, seen := index[f.ID]
		if !seen {
			f.Rooms = []entities.Room{}
			floors = append(floors, f)
			pos = len(floors) - 1
			index[f.ID] = pos
		}
		if roomID == nil {
			continue
		}
		room := entities.Room{
			ID:             *roomID,
			FloorID:        f.ID,
			RoomNumber:     *roomNumber,
			FloorNumber:    *floorNumber,
			Status:         *status,
			PreviousStatus: prevStatus,
		}
		room.CreatedAt = *createdAt
		room.UpdatedAt = *updatedAt
		floors[pos].Rooms = append(floors[pos].Rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate floors: %w", err)
	}
	return floors, nil
}
