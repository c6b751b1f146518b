package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"room-inventory/internal/authz"
	"room-inventory/internal/dto"
	"room-inventory/internal/entities"
	"room-inventory/internal/repositories"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/querycache"
)

// StructureServiceInterface manages the building layout: floors and the rooms on them.
type StructureServiceInterface interface {
	ListFloors(ctx context.Context) ([]dto.FloorDTO, error)
	CreateFloor(ctx context.Context, payload dto.CreateFloorDTO) (*dto.FloorDTO, error)
	CreateRoom(ctx context.Context, payload dto.CreateRoomDTO) (*dto.RoomDTO, error)
	FindRoomByNumber(ctx context.Context, roomNumber string, floorNumber *int) (*dto.RoomDTO, error)
	FindRoom(ctx context.Context, roomID uuid.UUID) (*dto.RoomDTO, error)
	UpdateRoomStatus(ctx context.Context, roomID uuid.UUID, payload dto.UpdateRoomStatusDTO) (*dto.RoomDTO, error)
}

type StructureService struct {
	floorRepo repositories.FloorRepositoryInterface
	roomRepo  repositories.RoomRepositoryInterface
	cache     *querycache.Cache
	logger    *zap.Logger
}

func NewStructureService(
	floorRepo repositories.FloorRepositoryInterface,
	roomRepo repositories.RoomRepositoryInterface,
	cache *querycache.Cache,
	logger *zap.Logger,
) StructureServiceInterface {
	return &StructureService{
		floorRepo: floorRepo,
		roomRepo:  roomRepo,
		cache:     cache,
		logger:    logger,
	}
}

func roomEntityToDTO(room entities.Room) dto.RoomDTO {
	result := dto.RoomDTO{
		ID:             room.ID,
		RoomNumber:     room.RoomNumber,
		FloorID:        room.FloorID,
		FloorNumber:    room.FloorNumber,
		Status:         room.Status,
		PreviousStatus: room.PreviousStatus,
		CreatedAt:      room.CreatedAt,
		UpdatedAt:      room.UpdatedAt,
	}
	if room.Floor != nil {
		result.Floor = &dto.ShortFloorDTO{
			ID:          room.Floor.ID,
			Name:        room.Floor.Name,
			FloorNumber: room.Floor.FloorNumber,
		}
	}
	return result
}

func floorEntityToDTO(floor entities.Floor) dto.FloorDTO {
	rooms := make([]dto.RoomDTO, 0, len(floor.Rooms))
	for _, room := range floor.Rooms {
		rooms = append(rooms, roomEntityToDTO(room))
	}
	return dto.FloorDTO{
		ID:          floor.ID,
		Name:        floor.Name,
		FloorNumber: floor.FloorNumber,
		CreatedAt:   floor.CreatedAt,
		Rooms:       rooms,
	}
}

func (s *StructureService) ListFloors(ctx context.Context) ([]dto.FloorDTO, error) {
	return querycache.Fetch(ctx, s.cache, FloorsKey(), func(ctx context.Context) ([]dto.FloorDTO, error) {
		floors, err := s.floorRepo.ListFloorsWithRooms(ctx)
		if err != nil {
			return nil, err
		}
		result := make([]dto.FloorDTO, 0, len(floors))
		for _, floor := range floors {
			result = append(result, floorEntityToDTO(floor))
		}
		return result, nil
	})
}

func (s *StructureService) CreateFloor(ctx context.Context, payload dto.CreateFloorDTO) (*dto.FloorDTO, error) {
	if !authz.CanManageStructure(authz.FromContext(ctx)) {
		return nil, apperrors.ErrForbidden
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewInvalidInputError("floor name is required")
	}

	floor, err := s.floorRepo.CreateFloor(ctx, entities.Floor{Name: name, FloorNumber: payload.FloorNumber})
	if err != nil {
		return nil, err
	}
	s.logger.Info("floor created", zap.String("floorID", floor.ID.String()), zap.Int("floorNumber", floor.FloorNumber))
	s.cache.Invalidate(ctx, FloorsKey())

	result := floorEntityToDTO(*floor)
	return &result, nil
}

func (s *StructureService) CreateRoom(ctx context.Context, payload dto.CreateRoomDTO) (*dto.RoomDTO, error) {
	if !authz.CanManageStructure(authz.FromContext(ctx)) {
		return nil, apperrors.ErrForbidden
	}

	number := strings.TrimSpace(payload.RoomNumber)
	if number == "" {
		return nil, apperrors.NewInvalidInputError("room number is required")
	}

	room, err := s.roomRepo.CreateRoom(ctx, entities.Room{
		RoomNumber: number,
		FloorID:    payload.FloorID,
		Status:     entities.RoomStatusActive,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("room created", zap.String("roomID", room.ID.String()), zap.String("roomNumber", room.RoomNumber))
	s.cache.Invalidate(ctx, FloorsKey())

	result := roomEntityToDTO(*room)
	return &result, nil
}

// FindRoomByNumber resolves a room number to a single room. Numbers repeat across
// floors, so an ambiguous number without floorNumber is rejected.
func (s *StructureService) FindRoomByNumber(ctx context.Context, roomNumber string, floorNumber *int) (*dto.RoomDTO, error) {
	roomNumber = strings.TrimSpace(roomNumber)
	if roomNumber == "" {
		return nil, apperrors.NewInvalidInputError("room number is required")
	}

	rooms, err := s.roomRepo.FindByRoomNumber(ctx, roomNumber, floorNumber)
	if err != nil {
		return nil, err
	}
	if len(rooms) > 1 {
		floors := make([]string, 0, len(rooms))
		for _, room := range rooms {
			floors = append(floors, fmt.Sprint(room.FloorNumber))
		}
		return nil, apperrors.NewInvalidInputError(
			"room %s exists on floors %s, specify the floor", roomNumber, strings.Join(floors, ", "))
	}

	result := roomEntityToDTO(rooms[0])
	return &result, nil
}

func (s *StructureService) FindRoom(ctx context.Context, roomID uuid.UUID) (*dto.RoomDTO, error) {
	room, err := s.roomRepo.FindRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	result := roomEntityToDTO(*room)
	return &result, nil
}

func (s *StructureService) UpdateRoomStatus(ctx context.Context, roomID uuid.UUID, payload dto.UpdateRoomStatusDTO) (*dto.RoomDTO, error) {
	if !authz.CanManageStructure(authz.FromContext(ctx)) {
		return nil, apperrors.ErrForbidden
	}

	status := entities.RoomStatus(payload.Status)
	if !status.Valid() {
		return nil, apperrors.NewInvalidInputError("unknown room status %q", payload.Status)
	}

	room, err := s.roomRepo.UpdateStatus(ctx, roomID, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info("room status changed",
		zap.String("roomID", room.ID.String()),
		zap.String("status", string(room.Status)),
	)
	s.cache.Invalidate(ctx, FloorsKey())

	result := roomEntityToDTO(*room)
	return &result, nil
}
