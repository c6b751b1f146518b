package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"room-inventory/pkg/config"
	"room-inventory/pkg/database/postgresql"
	applogger "room-inventory/pkg/logger"
)

// app carries what every subcommand needs. It is filled in PersistentPreRun.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "inventoryctl",
		Short:         "Room inventory server and maintenance tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg = config.New()
			if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
				a.cfg.Log.Level = lvl
			}
			a.logger = applogger.NewLogger(a.cfg.Log)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().String("log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	rootCmd.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newSeedCmd(a),
		newReportCmd(a),
	)
	return rootCmd
}

func (a *app) connect(ctx context.Context) (*pgxpool.Pool, error) {
	return postgresql.ConnectDB(ctx, a.cfg.Postgres.DSN, a.logger)
}
