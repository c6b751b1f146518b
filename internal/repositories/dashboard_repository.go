package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"room-inventory/pkg/types"
)

type DashboardRepositoryInterface interface {
	GetTotals(ctx context.Context, scope sq.Sqlizer) (*types.InventoryTotals, error)
	GetFloorTotals(ctx context.Context, scope sq.Sqlizer) ([]types.FloorTotals, error)
	GetAlerts(ctx context.Context, scope sq.Sqlizer, lowStockThreshold int) (*types.DashboardAlerts, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

// applyScope narrows a query that joins items i, rooms r and floors f.
func applyScope(b sq.SelectBuilder, scope sq.Sqlizer) sq.SelectBuilder {
	if scope != nil {
		return b.Where(scope)
	}
	return b
}

func (r *DashboardRepository) GetTotals(ctx context.Context, scope sq.Sqlizer) (*types.InventoryTotals, error) {
	base := sq.Select(
		"COUNT(i.id)",
		"COALESCE(SUM(i.quantity), 0)",
		"COALESCE(SUM(i.maintenance_quantity), 0)",
		"COALESCE(SUM(i.replacement_quantity), 0)",
	).From("items i").
		Join("rooms r ON r.id = i.room_id").
		Join("floors f ON f.id = r.floor_id")
	base = applyScope(base, scope)

	query, args, err := base.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	totals := &types.InventoryTotals{}
	err = r.storage.QueryRow(ctx, query, args...).Scan(
		&totals.ItemCount, &totals.Quantity, &totals.MaintenanceQuantity, &totals.ReplacementQuantity,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory totals: %w", err)
	}
	return totals, nil
}

// GetFloorTotals includes floors without rooms or items, with zero totals.
func (r *DashboardRepository) GetFloorTotals(ctx context.Context, scope sq.Sqlizer) ([]types.FloorTotals, error) {
	base := sq.Select(
		"f.id", "f.name", "f.floor_number",
		"COUNT(DISTINCT r.id)",
		"COUNT(i.id)",
		"COALESCE(SUM(i.quantity), 0)",
		"COALESCE(SUM(i.maintenance_quantity), 0)",
		"COALESCE(SUM(i.replacement_quantity), 0)",
	).From("floors f").
		LeftJoin("rooms r ON r.floor_id = f.id").
		LeftJoin("items i ON i.room_id = r.id").
		GroupBy("f.id", "f.name", "f.floor_number").
		OrderBy("f.floor_number ASC")
	base = applyScope(base, scope)

	query, args, err := base.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("floor totals: %w", err)
	}
	defer rows.Close()

	result := make([]types.FloorTotals, 0)
	for rows.Next() {
		var ft types.FloorTotals
		if err := rows.Scan(
			&ft.FloorID, &ft.FloorName, &ft.FloorNumber, &ft.RoomCount,
			&ft.ItemCount, &ft.Quantity, &ft.MaintenanceQuantity, &ft.ReplacementQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan floor totals: %w", err)
		}
		result = append(result, ft)
	}
	return result, rows.Err()
}

// GetAlerts counts items whose usable quantity is at or below the threshold.
func (r *DashboardRepository) GetAlerts(ctx context.Context, scope sq.Sqlizer, lowStockThreshold int) (*types.DashboardAlerts, error) {
	lowStock := sq.Select("COUNT(i.id)").
		From("items i").
		Join("rooms r ON r.id = i.room_id").
		Join("floors f ON f.id = r.floor_id").
		Where(sq.Expr("(i.quantity - i.maintenance_quantity - i.replacement_quantity) <= ?", lowStockThreshold))
	lowStock = applyScope(lowStock, scope)

	query, args, err := lowStock.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	alerts := &types.DashboardAlerts{LowStockThreshold: lowStockThreshold}
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&alerts.LowStockCount); err != nil {
		return nil, fmt.Errorf("low stock count: %w", err)
	}

	maintenance := sq.Select("COUNT(r.id)").
		From("rooms r").
		Join("floors f ON f.id = r.floor_id").
		Where(sq.Eq{"r.status": "maintenance"})
	maintenance = applyScope(maintenance, scope)

	query, args, err = maintenance.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&alerts.RoomsUnderMaintenance); err != nil {
		return nil, fmt.Errorf("rooms under maintenance: %w", err)
	}
	return alerts, nil
}
