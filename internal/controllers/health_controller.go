package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Pinger is satisfied by *pgxpool.Pool. Other clients can be wrapped with PingFunc.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthController struct {
	checks map[string]Pinger
	logger *zap.Logger
}

func NewHealthController(checks map[string]Pinger, logger *zap.Logger) *HealthController {
	return &HealthController{checks: checks, logger: logger}
}

// Health reports 503 when any dependency does not answer within two seconds.
func (c *HealthController) Health(ctx echo.Context) error {
	reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	report := make(map[string]string, len(c.checks))
	for name, check := range c.checks {
		if err := check.Ping(reqCtx); err != nil {
			c.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			report[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		report[name] = "up"
	}
	return ctx.JSON(status, map[string]interface{}{"status": status == http.StatusOK, "dependencies": report})
}
