package main

import (
	"github.com/spf13/cobra"

	"room-inventory/seeders"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and the demo floors and rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			return seeders.Run(cmd.Context(), pool, a.cfg, a.logger)
		},
	}
}
