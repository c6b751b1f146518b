package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"room-inventory/internal/server"
	"room-inventory/pkg/database/postgresql"
)

func newServeCmd(a *app) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if migrate {
				pool, err := a.connect(ctx)
				if err != nil {
					return err
				}
				err = postgresql.Migrate(ctx, pool, postgresql.MigrateUp)
				pool.Close()
				if err != nil {
					return err
				}
			}
			return server.Run(ctx, a.cfg, a.logger)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}
