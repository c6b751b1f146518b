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
	db "room-inventory/internal/infrastructure/bd"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/types"
)

const itemTable = "items"

var itemColumns = []string{
	"i.id", "i.name", "i.description", "i.quantity", "i.maintenance_quantity", "i.replacement_quantity",
	"i.room_id", "i.created_by", "i.created_at", "i.updated_at",
}

// Filter and sort fields accepted from the query string.
var itemMap = map[string]string{
	"id":                   "i.id",
	"name":                 "i.name",
	"quantity":             "i.quantity",
	"maintenance_quantity": "i.maintenance_quantity",
	"replacement_quantity": "i.replacement_quantity",
	"created_by":           "i.created_by",
	"created_at":           "i.created_at",
	"updated_at":           "i.updated_at",
}

type ItemRepositoryInterface interface {
	ListByRoom(ctx context.Context, roomID uuid.UUID, filter types.Filter) ([]entities.Item, uint64, error)
	ListIDsByRoom(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error)
	FindInRoom(ctx context.Context, roomID, itemID uuid.UUID) (*entities.Item, error)
	CreateItem(ctx context.Context, tx pgx.Tx, item entities.Item) (*entities.Item, error)
	UpdateItem(ctx context.Context, tx pgx.Tx, item entities.Item) (*entities.Item, error)
	DeleteItem(ctx context.Context, tx pgx.Tx, roomID, itemID uuid.UUID) error
}

type ItemRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewItemRepository(storage *pgxpool.Pool, logger *zap.Logger) ItemRepositoryInterface {
	return &ItemRepository{storage: storage, logger: logger}
}

func scanItem(row pgx.Row) (*entities.Item, error) {
	var i entities.Item
	err := row.Scan(
		&i.ID, &i.Name, &i.Description, &i.Quantity, &i.MaintenanceQuantity, &i.ReplacementQuantity,
		&i.RoomID, &i.CreatedBy, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, translatePgError(err, "scan item")
	}
	return &i, nil
}

func (r *ItemRepository) ListByRoom(ctx context.Context, roomID uuid.UUID, filter types.Filter) ([]entities.Item, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	countBuilder := psql.Select("COUNT(i.id)").From(itemTable + " AS i").Where(sq.Eq{"i.room_id": roomID})
	countBuilder = db.ApplySearch(countBuilder, filter.Search, "i.name", "i.description")
	countBuilder = db.ApplyListParams(countBuilder, countFilter, itemMap)

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build item count query: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}
	if total == 0 {
		return []entities.Item{}, 0, nil
	}

	builder := psql.Select(itemColumns...).From(itemTable + " AS i").Where(sq.Eq{"i.room_id": roomID})
	builder = db.ApplySearch(builder, filter.Search, "i.name", "i.description")
	builder = db.ApplyListParams(builder, filter, itemMap)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("i.created_at DESC", "i.id")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build item list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Item, 0, filter.Limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items: %w", err)
	}
	return items, total, nil
}

func (r *ItemRepository) ListIDsByRoom(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.storage.Query(ctx, `SELECT id FROM items WHERE room_id = $1`, roomID)
	if err != nil {
		return nil, fmt.Errorf("list item ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("collect item ids: %w", err)
	}
	return ids, nil
}

func (r *ItemRepository) FindInRoom(ctx context.Context, roomID, itemID uuid.UUID) (*entities.Item, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(itemColumns...).From(itemTable + " AS i").
		Where(sq.Eq{"i.id": itemID, "i.room_id": roomID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item find query: %w", err)
	}
	item, err := scanItem(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *ItemRepository) CreateItem(ctx context.Context, tx pgx.Tx, item entities.Item) (*entities.Item, error) {
	query := `
		INSERT INTO items (name, description, quantity, maintenance_quantity, replacement_quantity, room_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, quantity, maintenance_quantity, replacement_quantity,
		          room_id, created_by, created_at, updated_at`
	created, err := scanItem(tx.QueryRow(ctx, query,
		item.Name, item.Description, item.Quantity, item.MaintenanceQuantity, item.ReplacementQuantity,
		item.RoomID, item.CreatedBy,
	))
	if err != nil {
		r.logger.Error("failed to insert item", zap.Error(err), zap.String("roomID", item.RoomID.String()))
		return nil, err
	}
	return created, nil
}

func (r *ItemRepository) UpdateItem(ctx context.Context, tx pgx.Tx, item entities.Item) (*entities.Item, error) {
	query := `
		UPDATE items
		SET name = $1, description = $2, quantity = $3, maintenance_quantity = $4, replacement_quantity = $5,
		    updated_at = now()
		WHERE id = $6 AND room_id = $7
		RETURNING id, name, description, quantity, maintenance_quantity, replacement_quantity,
		          room_id, created_by, created_at, updated_at`
	updated, err := scanItem(tx.QueryRow(ctx, query,
		item.Name, item.Description, item.Quantity, item.MaintenanceQuantity, item.ReplacementQuantity,
		item.ID, item.RoomID,
	))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrItemNotFound
	}
	if err != nil {
		r.logger.Error("failed to update item", zap.Error(err), zap.String("itemID", item.ID.String()))
		return nil, err
	}
	return updated, nil
}

func (r *ItemRepository) DeleteItem(ctx context.Context, tx pgx.Tx, roomID, itemID uuid.UUID) error {
	result, err := tx.Exec(ctx, `DELETE FROM items WHERE id = $1 AND room_id = $2`, itemID, roomID)
	if err != nil {
		r.logger.Error("failed to delete item", zap.Error(err), zap.String("itemID", itemID.String()))
		return fmt.Errorf("delete item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrItemNotFound
	}
	return nil
}
