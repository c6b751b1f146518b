package routes

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"room-inventory/internal/controllers"
	"room-inventory/internal/listeners"
	"room-inventory/internal/repositories"
	"room-inventory/internal/services"
	"room-inventory/pkg/config"
	"room-inventory/pkg/eventbus"
	"room-inventory/pkg/filestorage"
	"room-inventory/pkg/middleware"
	"room-inventory/pkg/notify"
	"room-inventory/pkg/querycache"
	"room-inventory/pkg/service"
	"room-inventory/pkg/websocket"
)

const cachePrefix = "room-inventory"

type Dependencies struct {
	DB     *pgxpool.Pool
	Redis  *redis.Client
	JWT    service.JWTService
	Hub    *websocket.Hub
	Bus    *eventbus.Bus
	Config *config.Config
	Logger *zap.Logger
}

// InitRouter wires repositories, services and controllers and registers every route on e.
// The returned function flushes pending realtime work and should run on shutdown.
func InitRouter(e *echo.Echo, deps Dependencies) func() {
	logger := deps.Logger
	cfg := deps.Config
	logger.Info("InitRouter: registering routes")

	// repositories
	txManager := repositories.NewTxManager(deps.DB)
	cacheRepo := repositories.NewRedisCacheRepository(deps.Redis, cachePrefix)
	userRepo := repositories.NewUserRepository(deps.DB, logger)
	profileRepo := repositories.NewProfileRepository(deps.DB, logger)
	floorRepo := repositories.NewFloorRepository(deps.DB, logger)
	roomRepo := repositories.NewRoomRepository(deps.DB, logger)
	itemRepo := repositories.NewItemRepository(deps.DB, logger)
	logRepo := repositories.NewActivityLogRepository(deps.DB, logger)
	dashboardRepo := repositories.NewDashboardRepository(deps.DB, logger)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Server.UploadDir)
	if err != nil {
		logger.Fatal("failed to create file storage", zap.Error(err))
	}

	// realtime
	queryCache := querycache.New(cacheRepo, cfg.Cache.QueryTTL, logger)
	wsNotifier := services.NewWebSocketNotificationService(deps.Hub, logger)
	queryCache.SubscribeAll(wsNotifier.BroadcastInvalidation)

	listeners.NewInvalidationListener(queryCache, logger).Register(deps.Bus)
	activityListener := listeners.NewActivityListener(wsNotifier, 0, logger)
	activityListener.Register(deps.Bus)

	// services
	sessionService := services.NewSessionService(profileRepo, cacheRepo, logger, cfg.Cache.SessionTTL)
	authService := services.NewAuthService(txManager, userRepo, profileRepo, cacheRepo, deps.JWT, logger, cfg.Auth)
	profileService := services.NewProfileService(userRepo, profileRepo, sessionService, fileStorage, logger)
	structureService := services.NewStructureService(floorRepo, roomRepo, queryCache, logger)
	inventoryService := services.NewInventoryService(
		txManager, itemRepo, roomRepo, logRepo, queryCache, deps.Bus, notify.Multi(wsNotifier), logger,
	)
	activityService := services.NewActivityLogService(itemRepo, roomRepo, logRepo, profileRepo, queryCache, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, cfg.Inventory.LowStockThreshold, logger)
	reportService := services.NewReportService(roomRepo, itemRepo, activityService, logger)

	authMW := middleware.NewAuthMiddleware(deps.JWT, sessionService, logger)

	// controllers
	health := controllers.NewHealthController(map[string]controllers.Pinger{
		"postgres": deps.DB,
		"redis":    controllers.PingFunc(func(ctx context.Context) error { return deps.Redis.Ping(ctx).Err() }),
	}, logger)

	e.GET("/health", health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/ws", controllers.NewWebSocketController(deps.Hub, authMW, cfg.Server.AllowedOrigins, logger).ServeWs)

	api := e.Group("/api")
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, controllers.NewAuthController(authService, deps.JWT, logger), authMW)
	runAccountRouter(secureGroup, controllers.NewAccountController(profileService, logger))
	runStructureRouter(secureGroup, controllers.NewStructureController(structureService, logger))
	runItemRouter(secureGroup,
		controllers.NewItemController(inventoryService, logger),
		controllers.NewActivityLogController(activityService, logger),
	)
	runReportRouter(secureGroup,
		controllers.NewDashboardController(dashboardService, logger),
		controllers.NewReportController(reportService, logger),
	)

	logger.Info("InitRouter: routes registered")
	return func() {
		deps.Bus.Wait()
		activityListener.Flush()
	}
}
