package controllers

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"room-inventory/pkg/middleware"
	"room-inventory/pkg/utils"
	appwebsocket "room-inventory/pkg/websocket"
)

type WebSocketController struct {
	hub      *appwebsocket.Hub
	auth     *middleware.AuthMiddleware
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWebSocketController accepts connections from allowedOrigins, or from any origin when it is empty.
func NewWebSocketController(hub *appwebsocket.Hub, auth *middleware.AuthMiddleware, allowedOrigins []string, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		hub:  hub,
		auth: auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: logger,
	}
}

// ServeWs authenticates with ?token= because browsers cannot set headers on a websocket handshake.
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	if token == "" {
		return ctx.String(http.StatusUnauthorized, "missing token")
	}

	authCtx, err := c.auth.Authenticate(ctx.Request().Context(), token)
	if err != nil {
		return ctx.String(http.StatusUnauthorized, "invalid token")
	}
	userID, err := utils.GetUserIDFromCtx(authCtx)
	if err != nil {
		return ctx.String(http.StatusUnauthorized, "invalid token")
	}

	conn, err := c.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(c.hub, conn, userID)
	c.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("websocket client connected", zap.String("userID", userID.String()))
	return nil
}
