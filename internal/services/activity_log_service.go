package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"room-inventory/internal/dto"
	"room-inventory/internal/entities"
	"room-inventory/internal/repositories"
	"room-inventory/pkg/querycache"
)

type ActivityLogServiceInterface interface {
	GetRoomActivity(ctx context.Context, roomID uuid.UUID) ([]dto.ActivityLogDTO, error)
}

type ActivityLogService struct {
	itemRepo    repositories.ItemRepositoryInterface
	roomRepo    repositories.RoomRepositoryInterface
	logRepo     repositories.ActivityLogRepositoryInterface
	profileRepo repositories.ProfileRepositoryInterface
	cache       *querycache.Cache
	logger      *zap.Logger
}

func NewActivityLogService(
	itemRepo repositories.ItemRepositoryInterface,
	roomRepo repositories.RoomRepositoryInterface,
	logRepo repositories.ActivityLogRepositoryInterface,
	profileRepo repositories.ProfileRepositoryInterface,
	cache *querycache.Cache,
	logger *zap.Logger,
) ActivityLogServiceInterface {
	return &ActivityLogService{
		itemRepo:    itemRepo,
		roomRepo:    roomRepo,
		logRepo:     logRepo,
		profileRepo: profileRepo,
		cache:       cache,
		logger:      logger,
	}
}

// SummarizeLog renders the one-line description shown in the activity feed.
func SummarizeLog(details entities.LogDetails) string {
	if details == nil {
		return ""
	}
	s := details.Snapshot()
	return fmt.Sprintf("Item: %s, Quantity: %d, Needs Maintenance: %d, Needs Replacement: %d",
		s.Name, s.Quantity, s.MaintenanceQuantity, s.ReplacementQuantity)
}

// GetRoomActivity returns the room's reconciled log, newest first.
func (s *ActivityLogService) GetRoomActivity(ctx context.Context, roomID uuid.UUID) ([]dto.ActivityLogDTO, error) {
	if _, err := s.roomRepo.FindRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return querycache.Fetch(ctx, s.cache, ActivityLogsKey(roomID), func(ctx context.Context) ([]dto.ActivityLogDTO, error) {
		return s.loadRoomActivity(ctx, roomID)
	})
}

func (s *ActivityLogService) loadRoomActivity(ctx context.Context, roomID uuid.UUID) ([]dto.ActivityLogDTO, error) {
	itemIDs, err := s.itemRepo.ListIDsByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.ListByEntityType(ctx, entities.EntityTypeItem)
	if err != nil {
		return nil, err
	}

	relevant := ReconcileRoomLogs(roomID, itemIDs, logs)
	profiles := s.resolveProfiles(ctx, relevant)

	result := make([]dto.ActivityLogDTO, 0, len(relevant))
	for _, l := range relevant {
		entry := dto.ActivityLogDTO{
			ID:         l.ID,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Action:     l.Action,
			Details:    l.Details,
			Summary:    SummarizeLog(l.Details),
			UserID:     l.UserID,
			CreatedAt:  l.CreatedAt,
		}
		if l.UserID != nil {
			if p, ok := profiles[*l.UserID]; ok {
				entry.Profile = &dto.ProfileSummaryDTO{ID: p.ID, Username: p.Username, AvatarURL: p.AvatarURL}
			}
		}
		result = append(result, entry)
	}
	return result, nil
}

// resolveProfiles never fails: unresolvable actors are simply absent from the map.
func (s *ActivityLogService) resolveProfiles(ctx context.Context, logs []entities.ActivityLog) map[uuid.UUID]entities.Profile {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, l := range logs {
		if l.UserID == nil {
			continue
		}
		if _, ok := seen[*l.UserID]; !ok {
			seen[*l.UserID] = struct{}{}
			ids = append(ids, *l.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	profiles, err := s.profileRepo.FindProfilesByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("could not resolve activity log profiles", zap.Int("count", len(ids)), zap.Error(err))
		return nil
	}
	return profiles
}
