package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"room-inventory/internal/authz"
	"room-inventory/internal/dto"
	"room-inventory/internal/entities"
	"room-inventory/internal/events"
	"room-inventory/internal/repositories"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/eventbus"
	"room-inventory/pkg/metrics"
	"room-inventory/pkg/notify"
	"room-inventory/pkg/querycache"
	"room-inventory/pkg/types"
)

// EventPublisher is satisfied by *eventbus.Bus.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

// InventoryServiceInterface mutations never return errors: they report true on success
// and describe any failure through a notification.
type InventoryServiceInterface interface {
	CreateItem(ctx context.Context, roomID uuid.UUID, fields dto.CreateItemDTO) bool
	UpdateItem(ctx context.Context, roomID, itemID uuid.UUID, fields dto.UpdateItemDTO) bool
	DeleteItem(ctx context.Context, roomID, itemID uuid.UUID) bool
	ListRoomItems(ctx context.Context, roomID uuid.UUID, filter types.Filter) ([]dto.ItemDTO, uint64, error)
	FindItem(ctx context.Context, roomID, itemID uuid.UUID) (*dto.ItemDTO, error)
}

type InventoryService struct {
	txManager repositories.TxManagerInterface
	itemRepo  repositories.ItemRepositoryInterface
	roomRepo  repositories.RoomRepositoryInterface
	logRepo   repositories.ActivityLogRepositoryInterface
	cache     *querycache.Cache
	bus       EventPublisher
	notifier  notify.Notifier
	logger    *zap.Logger
}

func NewInventoryService(
	txManager repositories.TxManagerInterface,
	itemRepo repositories.ItemRepositoryInterface,
	roomRepo repositories.RoomRepositoryInterface,
	logRepo repositories.ActivityLogRepositoryInterface,
	cache *querycache.Cache,
	bus EventPublisher,
	notifier notify.Notifier,
	logger *zap.Logger,
) InventoryServiceInterface {
	return &InventoryService{
		txManager: txManager,
		itemRepo:  itemRepo,
		roomRepo:  roomRepo,
		logRepo:   logRepo,
		cache:     cache,
		bus:       bus,
		notifier:  notifier,
		logger:    logger,
	}
}

func itemEntityToDTO(item entities.Item) dto.ItemDTO {
	return dto.ItemDTO{
		ID:                  item.ID,
		Name:                item.Name,
		Description:         item.Description,
		Quantity:            item.Quantity,
		MaintenanceQuantity: item.MaintenanceQuantity,
		ReplacementQuantity: item.ReplacementQuantity,
		RoomID:              item.RoomID,
		CreatedBy:           item.CreatedBy,
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
}

func validateItem(item entities.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return apperrors.NewInvalidInputError("item name is required")
	}
	if item.Quantity < 1 {
		return apperrors.NewInvalidInputError("quantity must be at least 1")
	}
	if item.MaintenanceQuantity < 0 {
		return apperrors.NewInvalidInputError("maintenance quantity cannot be negative")
	}
	if item.ReplacementQuantity < 0 {
		return apperrors.NewInvalidInputError("replacement quantity cannot be negative")
	}
	return nil
}

// validateItemPatch checks the fields present in an update before anything is read.
func validateItemPatch(fields dto.UpdateItemDTO) error {
	if fields.Name.Valid && strings.TrimSpace(fields.Name.String) == "" {
		return apperrors.NewInvalidInputError("item name is required")
	}
	if fields.Quantity.Valid && fields.Quantity.Int < 1 {
		return apperrors.NewInvalidInputError("quantity must be at least 1")
	}
	if fields.MaintenanceQuantity.Valid && fields.MaintenanceQuantity.Int < 0 {
		return apperrors.NewInvalidInputError("maintenance quantity cannot be negative")
	}
	if fields.ReplacementQuantity.Valid && fields.ReplacementQuantity.Int < 0 {
		return apperrors.NewInvalidInputError("replacement quantity cannot be negative")
	}
	return nil
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *InventoryService) CreateItem(ctx context.Context, roomID uuid.UUID, fields dto.CreateItemDTO) (ok bool) {
	const title = "Add item"
	defer s.recoverMutation(ctx, entities.ActionCreated, title, &ok)

	session := authz.FromContext(ctx)
	if !authz.CanMutateItems(session) {
		return s.fail(ctx, entities.ActionCreated, title, apperrors.ErrForbidden)
	}

	item := entities.Item{
		Name:                strings.TrimSpace(fields.Name),
		Description:         optionalText(fields.Description.Ptr()),
		Quantity:            fields.Quantity,
		MaintenanceQuantity: fields.MaintenanceQuantity.Int,
		ReplacementQuantity: fields.ReplacementQuantity.Int,
		RoomID:              roomID,
		CreatedBy:           &session.UserID,
	}
	if err := validateItem(item); err != nil {
		return s.fail(ctx, entities.ActionCreated, title, err)
	}

	if _, err := s.roomRepo.FindRoom(ctx, roomID); err != nil {
		return s.fail(ctx, entities.ActionCreated, title, err)
	}

	var created *entities.Item
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = s.itemRepo.CreateItem(ctx, tx, item)
		if err != nil {
			return err
		}
		details := entities.ItemCreatedDetails{ItemSnapshot: created.Snapshot()}
		_, err = s.logRepo.Append(ctx, tx, entities.NewItemLog(created.ID, details, &session.UserID))
		return err
	})
	if err != nil {
		return s.fail(ctx, entities.ActionCreated, title, err)
	}

	s.succeed(ctx, *created, entities.ActionCreated, session.UserID,
		notify.Success(title, fmt.Sprintf("%s was added", created.Name)))
	return true
}

func (s *InventoryService) UpdateItem(ctx context.Context, roomID, itemID uuid.UUID, fields dto.UpdateItemDTO) (ok bool) {
	const title = "Update item"
	defer s.recoverMutation(ctx, entities.ActionUpdated, title, &ok)

	session := authz.FromContext(ctx)
	if !authz.CanMutateItems(session) {
		return s.fail(ctx, entities.ActionUpdated, title, apperrors.ErrForbidden)
	}

	if err := validateItemPatch(fields); err != nil {
		return s.fail(ctx, entities.ActionUpdated, title, err)
	}

	current, err := s.itemRepo.FindInRoom(ctx, roomID, itemID)
	if err != nil {
		return s.fail(ctx, entities.ActionUpdated, title, err)
	}

	changed := *current
	if fields.Name.Valid {
		changed.Name = strings.TrimSpace(fields.Name.String)
	}
	if fields.Description.Valid {
		changed.Description = optionalText(fields.Description.Ptr())
	}
	if fields.Quantity.Valid {
		changed.Quantity = fields.Quantity.Int
	}
	if fields.MaintenanceQuantity.Valid {
		changed.MaintenanceQuantity = fields.MaintenanceQuantity.Int
	}
	if fields.ReplacementQuantity.Valid {
		changed.ReplacementQuantity = fields.ReplacementQuantity.Int
	}
	if err := validateItem(changed); err != nil {
		return s.fail(ctx, entities.ActionUpdated, title, err)
	}

	previous := current.Snapshot()
	var updated *entities.Item
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		updated, err = s.itemRepo.UpdateItem(ctx, tx, changed)
		if err != nil {
			return err
		}
		details := entities.ItemUpdatedDetails{ItemSnapshot: updated.Snapshot(), Previous: &previous}
		_, err = s.logRepo.Append(ctx, tx, entities.NewItemLog(updated.ID, details, &session.UserID))
		return err
	})
	if err != nil {
		return s.fail(ctx, entities.ActionUpdated, title, err)
	}

	s.succeed(ctx, *updated, entities.ActionUpdated, session.UserID,
		notify.Success(title, fmt.Sprintf("%s was updated", updated.Name)))
	return true
}

// DeleteItem records the item's last state before removing the row; the log is the
// only place the snapshot survives.
func (s *InventoryService) DeleteItem(ctx context.Context, roomID, itemID uuid.UUID) (ok bool) {
	const title = "Delete item"
	defer s.recoverMutation(ctx, entities.ActionDeleted, title, &ok)

	session := authz.FromContext(ctx)
	if !authz.CanMutateItems(session) {
		return s.fail(ctx, entities.ActionDeleted, title, apperrors.ErrForbidden)
	}

	current, err := s.itemRepo.FindInRoom(ctx, roomID, itemID)
	if err != nil {
		return s.fail(ctx, entities.ActionDeleted, title, err)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		details := entities.ItemDeletedDetails{ItemSnapshot: current.Snapshot()}
		if _, err := s.logRepo.Append(ctx, tx, entities.NewItemLog(current.ID, details, &session.UserID)); err != nil {
			return err
		}
		return s.itemRepo.DeleteItem(ctx, tx, roomID, itemID)
	})
	if err != nil {
		return s.fail(ctx, entities.ActionDeleted, title, err)
	}

	s.succeed(ctx, *current, entities.ActionDeleted, session.UserID,
		notify.Success(title, fmt.Sprintf("%s was deleted", current.Name)))
	return true
}

func (s *InventoryService) succeed(ctx context.Context, item entities.Item, action entities.LogAction, actor uuid.UUID, n notify.Notification) {
	metrics.ObserveMutation(string(action), true)
	s.logger.Info("item mutated",
		zap.String("action", string(action)),
		zap.String("itemID", item.ID.String()),
		zap.String("roomID", item.RoomID.String()),
		zap.String("userID", actor.String()),
	)
	s.bus.Publish(ctx, events.ItemChanged{
		RoomID:   item.RoomID,
		ItemID:   item.ID,
		Action:   action,
		Snapshot: item.Snapshot(),
		ActorID:  actor,
	})
	s.report(ctx, n)
}

func (s *InventoryService) fail(ctx context.Context, action entities.LogAction, title string, err error) bool {
	metrics.ObserveMutation(string(action), false)
	fields := []zap.Field{zap.String("action", string(action)), zap.Error(err)}
	if apperrors.HTTPStatus(err) == http.StatusInternalServerError {
		s.logger.Error("item mutation failed", fields...)
	} else {
		s.logger.Warn("item mutation rejected", fields...)
	}
	s.report(ctx, notify.FromError(title, err))
	return false
}

func (s *InventoryService) recoverMutation(ctx context.Context, action entities.LogAction, title string, ok *bool) {
	if p := recover(); p != nil {
		*ok = s.fail(ctx, action, title, fmt.Errorf("panic: %v", p))
	}
}

func (s *InventoryService) report(ctx context.Context, n notify.Notification) {
	notify.Record(ctx, n)
	if s.notifier != nil {
		s.notifier.Notify(ctx, n)
	}
}

// isPlainListing reports whether filter asks for the room's default listing, which is what gets cached.
func isPlainListing(filter types.Filter) bool {
	return filter.Search == "" && len(filter.Filter) == 0 && len(filter.Sort) == 0 && filter.Offset == 0
}

func (s *InventoryService) ListRoomItems(ctx context.Context, roomID uuid.UUID, filter types.Filter) ([]dto.ItemDTO, uint64, error) {
	if !isPlainListing(filter) {
		items, total, err := s.itemRepo.ListByRoom(ctx, roomID, filter)
		if err != nil {
			return nil, 0, err
		}
		result := make([]dto.ItemDTO, 0, len(items))
		for _, item := range items {
			result = append(result, itemEntityToDTO(item))
		}
		return result, total, nil
	}

	all, err := querycache.Fetch(ctx, s.cache, ItemsKey(roomID), func(ctx context.Context) ([]dto.ItemDTO, error) {
		if _, err := s.roomRepo.FindRoom(ctx, roomID); err != nil {
			return nil, err
		}
		items, _, err := s.itemRepo.ListByRoom(ctx, roomID, types.Filter{})
		if err != nil {
			return nil, err
		}
		result := make([]dto.ItemDTO, 0, len(items))
		for _, item := range items {
			result = append(result, itemEntityToDTO(item))
		}
		return result, nil
	})
	if err != nil {
		return nil, 0, err
	}

	total := uint64(len(all))
	if filter.WithPagination && filter.Limit > 0 && len(all) > filter.Limit {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

func (s *InventoryService) FindItem(ctx context.Context, roomID, itemID uuid.UUID) (*dto.ItemDTO, error) {
	item, err := s.itemRepo.FindInRoom(ctx, roomID, itemID)
	if err != nil {
		return nil, err
	}
	result := itemEntityToDTO(*item)
	return &result, nil
}
