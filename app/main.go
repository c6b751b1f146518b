package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"room-inventory/internal/server"
	"room-inventory/pkg/config"
	applogger "room-inventory/pkg/logger"
)

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
