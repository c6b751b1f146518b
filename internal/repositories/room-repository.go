package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"room-inventory/internal/entities"
	apperrors "room-inventory/pkg/errors"
)

var roomColumns = []string{
	"r.id", "r.room_number", "r.floor_id", "r.floor_number", "r.status", "r.previous_status", "r.created_at", "r.updated_at",
	"f.id", "f.name", "f.floor_number", "f.created_at",
}

type RoomRepositoryInterface interface {
	CreateRoom(ctx context.Context, room entities.Room) (*entities.Room, error)
	FindRoom(ctx context.Context, id uuid.UUID) (*entities.Room, error)
	FindByRoomNumber(ctx context.Context, roomNumber string, floorNumber *int) ([]entities.Room, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.RoomStatus) (*entities.Room, error)
}

type RoomRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRoomRepository(storage *pgxpool.Pool, logger *zap.Logger) RoomRepositoryInterface {
	return &RoomRepository{storage: storage, logger: logger}
}

func scanRoom(row pgx.Row) (*entities.Room, error) {
	var (
		room  entities.Room
		floor entities.Floor
	)
	err := row.Scan(
		&room.ID, &room.RoomNumber, &room.FloorID, &room.FloorNumber, &room.Status, &room.PreviousStatus,
		&room.CreatedAt, &room.UpdatedAt,
		&floor.ID, &floor.Name, &floor.FloorNumber, &floor.CreatedAt,
	)
	if err != nil {
		return nil, translatePgError(err, "scan room")
	}
	room.Floor = &floor
	return &room, nil
}

func (r *RoomRepository) selectRooms() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(roomColumns...).
		From("rooms AS r").
		Join("floors AS f ON f.id = r.floor_id")
}

// CreateRoom copies floor_number from the parent floor.
func (r *RoomRepository) CreateRoom(ctx context.Context, room entities.Room) (*entities.Room, error) {
	query := `
		INSERT INTO rooms (room_number, floor_id, floor_number, status)
		SELECT $1, f.id, f.floor_number, $3
		FROM floors f
		WHERE f.id = $2
		RETURNING id`
	var id uuid.UUID
	err := r.storage.QueryRow(ctx, query, room.RoomNumber, room.FloorID, room.Status).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrFloorNotFound
	}
	if err != nil {
		return nil, translatePgError(err, "insert room")
	}
	return r.FindRoom(ctx, id)
}

func (r *RoomRepository) FindRoom(ctx context.Context, id uuid.UUID) (*entities.Room, error) {
	query, args, err := r.selectRooms().Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build room query: %w", err)
	}
	room, err := scanRoom(r.storage.QueryRow(ctx, query, args...))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrRoomNotFound
	}
	return room, err
}

// FindByRoomNumber may return several rooms because room numbers are only unique per floor.
func (r *RoomRepository) FindByRoomNumber(ctx context.Context, roomNumber string, floorNumber *int) ([]entities.Room, error) {
	builder := r.selectRooms().Where(sq.Eq{"r.room_number": roomNumber}).OrderBy("f.floor_number ASC")
	if floorNumber != nil {
		builder = builder.Where(sq.Eq{"f.floor_number": *floorNumber})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build room query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find rooms by number: %w", err)
	}
	defer rows.Close()

	var rooms []entities.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil, apperrors.ErrRoomNotFound
	}
	return rooms, nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.RoomStatus) (*entities.Room, error) {
	result, err := r.storage.Exec(ctx, `
		UPDATE rooms
		SET previous_status = status, status = $1, updated_at = now()
		WHERE id = $2`, status, id)
	if err != nil {
		r.logger.Error("failed to update room status", zap.Error(err), zap.String("roomID", id.String()))
		return nil, fmt.Errorf("update room status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrRoomNotFound
	}
	return r.FindRoom(ctx, id)
}
