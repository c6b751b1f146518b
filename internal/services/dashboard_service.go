package services

import (
	"context"
	"net/http"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"room-inventory/internal/dto"
	"room-inventory/internal/repositories"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/types"
)

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, floorID *uuid.UUID) (*dto.DashboardDTO, error)
}

type DashboardService struct {
	repo              repositories.DashboardRepositoryInterface
	lowStockThreshold int
	logger            *zap.Logger
}

func NewDashboardService(repo repositories.DashboardRepositoryInterface, lowStockThreshold int, logger *zap.Logger) DashboardServiceInterface {
	return &DashboardService{repo: repo, lowStockThreshold: lowStockThreshold, logger: logger}
}

// GetDashboard aggregates inventory counters, optionally for a single floor.
// The aggregate queries are independent and run concurrently.
func (s *DashboardService) GetDashboard(ctx context.Context, floorID *uuid.UUID) (*dto.DashboardDTO, error) {
	var scope sq.Sqlizer
	if floorID != nil {
		scope = sq.Eq{"f.id": *floorID}
	}

	var (
		wg     sync.WaitGroup
		totals *types.InventoryTotals
		floors []types.FloorTotals
		alerts *types.DashboardAlerts

		errs []error
		mu   sync.Mutex
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	addTask(func() (err error) { totals, err = s.repo.GetTotals(ctx, scope); return })
	addTask(func() (err error) { floors, err = s.repo.GetFloorTotals(ctx, scope); return })
	addTask(func() (err error) { alerts, err = s.repo.GetAlerts(ctx, scope, s.lowStockThreshold); return })

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("dashboard aggregation failed", zap.Errors("errors", errs))
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "failed to load dashboard", errs[0], nil)
	}

	if floors == nil {
		floors = []types.FloorTotals{}
	}
	return &dto.DashboardDTO{Totals: *totals, Floors: floors, Alerts: *alerts}, nil
}
