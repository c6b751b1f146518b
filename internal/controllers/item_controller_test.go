package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"room-inventory/internal/dto"
	"room-inventory/pkg/customvalidator"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/notify"
	"room-inventory/pkg/types"
	"room-inventory/pkg/utils"
)

type stubInventory struct {
	result  bool
	outcome notify.Notification
	created *dto.CreateItemDTO
	items   []dto.ItemDTO
}

func (s *stubInventory) CreateItem(ctx context.Context, _ uuid.UUID, fields dto.CreateItemDTO) bool {
	s.created = &fields
	notify.Record(ctx, s.outcome)
	return s.result
}

func (s *stubInventory) UpdateItem(ctx context.Context, _, _ uuid.UUID, _ dto.UpdateItemDTO) bool {
	notify.Record(ctx, s.outcome)
	return s.result
}

func (s *stubInventory) DeleteItem(ctx context.Context, _, _ uuid.UUID) bool {
	notify.Record(ctx, s.outcome)
	return s.result
}

func (s *stubInventory) ListRoomItems(context.Context, uuid.UUID, types.Filter) ([]dto.ItemDTO, uint64, error) {
	return s.items, uint64(len(s.items)), nil
}

func (s *stubInventory) FindItem(context.Context, uuid.UUID, uuid.UUID) (*dto.ItemDTO, error) {
	return nil, apperrors.ErrItemNotFound
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	v := validator.New()
	require.NoError(t, customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)
	return e
}

func serve(t *testing.T, ctrl *ItemController, method, path, body string) (*httptest.ResponseRecorder, utils.HTTPResponse) {
	t.Helper()
	e := newTestEcho(t)
	e.GET("/rooms/:roomID/items", ctrl.GetItems)
	e.POST("/rooms/:roomID/items", ctrl.CreateItem)
	e.GET("/rooms/:roomID/items/:itemID", ctrl.FindItem)
	e.PUT("/rooms/:roomID/items/:itemID", ctrl.UpdateItem)
	e.DELETE("/rooms/:roomID/items/:itemID", ctrl.DeleteItem)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp utils.HTTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestItemController_Mutations(t *testing.T) {
	roomID := uuid.New()
	itemID := uuid.New()
	itemPath := "/rooms/" + roomID.String() + "/items/" + itemID.String()

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		result   bool
		outcome  notify.Notification
		wantCode int
	}{
		{
			name:     "create succeeds with 201",
			method:   http.MethodPost,
			path:     "/rooms/" + roomID.String() + "/items",
			body:     `{"name":"Chair","quantity":4}`,
			result:   true,
			outcome:  notify.Success("Item created", "Chair was added"),
			wantCode: http.StatusCreated,
		},
		{
			name:     "update forbidden",
			method:   http.MethodPut,
			path:     itemPath,
			body:     `{"quantity":2}`,
			outcome:  notify.FromError("Update failed", apperrors.ErrForbidden),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "delete missing item",
			method:   http.MethodDelete,
			path:     itemPath,
			outcome:  notify.FromError("Delete failed", apperrors.ErrItemNotFound),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "delete succeeds",
			method:   http.MethodDelete,
			path:     itemPath,
			result:   true,
			outcome:  notify.Success("Item deleted", "Chair was removed"),
			wantCode: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubInventory{result: tc.result, outcome: tc.outcome}
			rec, resp := serve(t, NewItemController(svc, zap.NewNop()), tc.method, tc.path, tc.body)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.result, resp.Status)
			assert.Equal(t, tc.outcome.Message, resp.Message)

			body, ok := resp.Body.(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tc.result, body["success"])
		})
	}
}

func TestItemController_CreateValidation(t *testing.T) {
	svc := &stubInventory{result: true}
	rec, resp := serve(t, NewItemController(svc, zap.NewNop()),
		http.MethodPost, "/rooms/"+uuid.NewString()+"/items", `{"name":"  ","quantity":0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Status)
	assert.Nil(t, svc.created, "service must not run for an invalid payload")
}

func TestItemController_BadRoomID(t *testing.T) {
	rec, _ := serve(t, NewItemController(&stubInventory{}, zap.NewNop()), http.MethodGet, "/rooms/not-a-uuid/items", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemController_FindNotFound(t *testing.T) {
	rec, resp := serve(t, NewItemController(&stubInventory{}, zap.NewNop()),
		http.MethodGet, "/rooms/"+uuid.NewString()+"/items/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Status)
}

func TestItemController_ListPaginated(t *testing.T) {
	svc := &stubInventory{items: []dto.ItemDTO{{ID: uuid.New(), Name: "Desk", Quantity: 2}}}
	rec, resp := serve(t, NewItemController(svc, zap.NewNop()),
		http.MethodGet, "/rooms/"+uuid.NewString()+"/items?withPagination=true", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body, ok := resp.Body.(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, body["list"], 1)
	assert.Contains(t, body, "pagination")
}
