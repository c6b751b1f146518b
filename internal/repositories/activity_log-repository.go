package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"room-inventory/internal/entities"
)

type ActivityLogRepositoryInterface interface {
	Append(ctx context.Context, tx pgx.Tx, log entities.ActivityLog) (*entities.ActivityLog, error)
	ListByEntityType(ctx context.Context, entityType entities.EntityType) ([]entities.ActivityLog, error)
}

// ActivityLogRepository only ever inserts and reads; the table rejects updates and deletes.
type ActivityLogRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewActivityLogRepository(storage *pgxpool.Pool, logger *zap.Logger) ActivityLogRepositoryInterface {
	return &ActivityLogRepository{storage: storage, logger: logger}
}

func (r *ActivityLogRepository) scanLog(row pgx.Row) (*entities.ActivityLog, error) {
	var (
		l   entities.ActivityLog
		raw []byte
	)
	if err := row.Scan(&l.ID, &l.Seq, &l.EntityType, &l.EntityID, &l.Action, &raw, &l.UserID, &l.CreatedAt); err != nil {
		return nil, translatePgError(err, "scan activity log")
	}
	details, err := entities.DecodeLogDetails(l.Action, raw)
	if err != nil {
		// An unreadable payload must not hide the rest of the history.
		r.logger.Warn("activity log has undecodable details", zap.String("logID", l.ID.String()), zap.Error(err))
	}
	l.Details = details
	return &l, nil
}

func (r *ActivityLogRepository) Append(ctx context.Context, tx pgx.Tx, log entities.ActivityLog) (*entities.ActivityLog, error) {
	var details *string
	if log.Details != nil {
		raw, err := json.Marshal(log.Details)
		if err != nil {
			return nil, fmt.Errorf("encode activity log details: %w", err)
		}
		s := string(raw)
		details = &s
	}

	query := `
		INSERT INTO activity_logs (entity_type, entity_id, action, details, user_id)
		VALUES ($1, $2, $3, $4::jsonb, $5)
		RETURNING id, seq, entity_type, entity_id, action, details, user_id, created_at`
	created, err := r.scanLog(tx.QueryRow(ctx, query, log.EntityType, log.EntityID, log.Action, details, log.UserID))
	if err != nil {
		r.logger.Error("failed to append activity log",
			zap.Error(err),
			zap.String("entityID", log.EntityID.String()),
			zap.String("action", string(log.Action)),
		)
		return nil, err
	}
	return created, nil
}

func (r *ActivityLogRepository) ListByEntityType(ctx context.Context, entityType entities.EntityType) ([]entities.ActivityLog, error) {
	query := `
		SELECT id, seq, entity_type, entity_id, action, details, user_id, created_at
		FROM activity_logs
		WHERE entity_type = $1
		ORDER BY created_at DESC, seq DESC`

	rows, err := r.storage.Query(ctx, query, entityType)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	logs := make([]entities.ActivityLog, 0)
	for rows.Next() {
		l, err := r.scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity logs: %w", err)
	}
	return logs, nil
}
