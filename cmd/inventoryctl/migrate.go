package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"room-inventory/pkg/database/postgresql"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	for _, c := range []struct {
		command postgresql.MigrateCommand
		short   string
	}{
		{postgresql.MigrateUp, "Apply all pending migrations"},
		{postgresql.MigrateDown, "Roll back the latest migration"},
		{postgresql.MigrateStatus, "Print the migration status"},
		{postgresql.MigrateReset, "Roll back every migration"},
	} {
		command := c.command
		cmd.AddCommand(&cobra.Command{
			Use:   string(command),
			Short: c.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				pool, err := a.connect(cmd.Context())
				if err != nil {
					return err
				}
				defer pool.Close()

				if err := postgresql.Migrate(cmd.Context(), pool, command); err != nil {
					return err
				}
				a.logger.Info("migrate done", zap.String("command", string(command)))
				return nil
			},
		})
	}
	return cmd
}
