package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/types"
)

type stubDashboardRepo struct {
	mu        sync.Mutex
	scopes    []sq.Sqlizer
	threshold int
	failAlert error
}

func (r *stubDashboardRepo) record(scope sq.Sqlizer) {
	r.mu.Lock()
	r.scopes = append(r.scopes, scope)
	r.mu.Unlock()
}

func (r *stubDashboardRepo) GetTotals(ctx context.Context, scope sq.Sqlizer) (*types.InventoryTotals, error) {
	r.record(scope)
	return &types.InventoryTotals{ItemCount: 2, Quantity: 10, MaintenanceQuantity: 3, ReplacementQuantity: 1}, nil
}

func (r *stubDashboardRepo) GetFloorTotals(ctx context.Context, scope sq.Sqlizer) ([]types.FloorTotals, error) {
	r.record(scope)
	return nil, nil
}

func (r *stubDashboardRepo) GetAlerts(ctx context.Context, scope sq.Sqlizer, threshold int) (*types.DashboardAlerts, error) {
	r.record(scope)
	r.mu.Lock()
	r.threshold = threshold
	r.mu.Unlock()
	if r.failAlert != nil {
		return nil, r.failAlert
	}
	return &types.DashboardAlerts{LowStockCount: 1, LowStockThreshold: threshold}, nil
}

func TestDashboardCombinesAggregates(t *testing.T) {
	repo := &stubDashboardRepo{}
	svc := NewDashboardService(repo, 3, zap.NewNop())

	result, err := svc.GetDashboard(context.Background(), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 10, result.Totals.Quantity)
	assert.EqualValues(t, 3, result.Totals.MaintenanceQuantity)
	assert.NotNil(t, result.Floors)
	assert.Equal(t, 3, result.Alerts.LowStockThreshold)
	assert.Equal(t, 3, repo.threshold)
	for _, scope := range repo.scopes {
		assert.Nil(t, scope)
	}
}

func TestDashboardScopesToFloor(t *testing.T) {
	repo := &stubDashboardRepo{}
	floorID := uuid.New()

	_, err := NewDashboardService(repo, 1, zap.NewNop()).GetDashboard(context.Background(), &floorID)
	require.NoError(t, err)
	require.Len(t, repo.scopes, 3)
	for _, scope := range repo.scopes {
		assert.Equal(t, sq.Eq{"f.id": floorID}, scope)
	}
}

func TestDashboardFailsWhenAnyQueryFails(t *testing.T) {
	repo := &stubDashboardRepo{failAlert: errors.New("boom")}

	_, err := NewDashboardService(repo, 1, zap.NewNop()).GetDashboard(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatus(err))
}
