package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"room-inventory/internal/routes"
	"room-inventory/pkg/config"
	"room-inventory/pkg/customvalidator"
	"room-inventory/pkg/database/postgresql"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/eventbus"
	appmiddleware "room-inventory/pkg/middleware"
	"room-inventory/pkg/service"
	"room-inventory/pkg/utils"
	"room-inventory/pkg/websocket"
)

const shutdownTimeout = 10 * time.Second

// NewEcho builds the HTTP engine with recovery, CORS and the request validator installed.
func NewEcho(cfg *config.Config, logger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "internal server error", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.RequestID())
	e.Use(appmiddleware.InjectLogger(logger))
	e.Use(appmiddleware.RequestLogger(logger))

	allowed := make(map[string]struct{}, len(cfg.Server.AllowedOrigins))
	for _, o := range cfg.Server.AllowedOrigins {
		allowed[o] = struct{}{}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			_, ok := allowed[origin]
			return ok, nil
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	absPath, err := filepath.Abs(cfg.Server.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	e.Static("/uploads", absPath)

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		return nil, fmt.Errorf("register validations: %w", err)
	}
	e.Validator = utils.NewValidator(v)

	return e, nil
}

// ConnectRedis opens a client and fails fast when the server does not answer.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Address, err)
	}
	return client, nil
}

// Run serves the API until ctx is cancelled, then drains in-flight requests and background work.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	e, err := NewEcho(cfg, logger)
	if err != nil {
		return err
	}

	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := websocket.NewHub(logger)
	go hub.Run(hubCtx)

	bus := eventbus.New(logger)
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	drain := routes.InitRouter(e, routes.Dependencies{
		DB:     pool,
		Redis:  redisClient,
		JWT:    jwtSvc,
		Hub:    hub,
		Bus:    bus,
		Config: cfg,
		Logger: logger,
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("server started", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	drain()
	stopHub()
	logger.Info("server stopped")
	return nil
}
