package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"room-inventory/internal/events"
	"room-inventory/pkg/notify"
	"room-inventory/pkg/querycache"
	"room-inventory/pkg/utils"
	"room-inventory/pkg/websocket"
)

// WebSocketNotificationService pushes notifications, activity summaries and
// cache invalidations to connected clients.
type WebSocketNotificationService struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewWebSocketNotificationService(hub *websocket.Hub, logger *zap.Logger) *WebSocketNotificationService {
	return &WebSocketNotificationService{hub: hub, logger: logger}
}

// Notify sends n to the user the request belongs to. Anonymous contexts are ignored.
func (s *WebSocketNotificationService) Notify(ctx context.Context, n notify.Notification) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return
	}
	if err := s.hub.SendToUser(userID, websocket.TypeNotification, n); err != nil {
		s.logger.Warn("failed to push notification", zap.String("userID", userID.String()), zap.Error(err))
	}
}

func (s *WebSocketNotificationService) BroadcastRoomActivity(activity events.RoomActivity, except ...uuid.UUID) error {
	s.logger.Debug("broadcasting room activity",
		zap.String("roomID", activity.RoomID.String()),
		zap.Int("changes", activity.Changes),
	)
	return s.hub.Broadcast(websocket.TypeRoomActivity, activity, except...)
}

// BroadcastInvalidation tells every client to refetch the query behind key.
// It has the querycache.Subscriber signature.
func (s *WebSocketNotificationService) BroadcastInvalidation(_ context.Context, key querycache.Key) {
	payload := websocket.QueryInvalidatedPayload{Query: key.Name, Param: key.Param}
	if err := s.hub.Broadcast(websocket.TypeQueryInvalidated, payload); err != nil {
		s.logger.Warn("failed to broadcast invalidation", zap.String("key", key.String()), zap.Error(err))
	}
}
