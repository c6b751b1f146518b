package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"room-inventory/internal/repositories"
	"room-inventory/internal/services"
	"room-inventory/pkg/querycache"
	"room-inventory/pkg/utils"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		outDir string
		asUser string
	)

	cmd := &cobra.Command{
		Use:   "report <room-id>",
		Short: "Export a room's items and activity to an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("room id %q: %w", args[0], err)
			}
			if asUser == "" {
				asUser = a.cfg.Seed.AdminEmail
			}

			ctx := cmd.Context()
			pool, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			userRepo := repositories.NewUserRepository(pool, a.logger)
			profileRepo := repositories.NewProfileRepository(pool, a.logger)
			roomRepo := repositories.NewRoomRepository(pool, a.logger)
			itemRepo := repositories.NewItemRepository(pool, a.logger)
			logRepo := repositories.NewActivityLogRepository(pool, a.logger)

			user, err := userRepo.FindUserByEmail(ctx, asUser)
			if err != nil {
				return fmt.Errorf("user %s: %w", asUser, err)
			}
			profile, err := profileRepo.FindProfile(ctx, user.ID)
			if err != nil {
				return fmt.Errorf("profile %s: %w", asUser, err)
			}
			ctx = utils.WithUser(ctx, user.ID, profile.Role)

			cache := querycache.New(querycache.NewMemoryStore(), a.cfg.Cache.QueryTTL, a.logger)
			activity := services.NewActivityLogService(itemRepo, roomRepo, logRepo, profileRepo, cache, a.logger)
			reports := services.NewReportService(roomRepo, itemRepo, activity, a.logger)

			tmp, err := os.CreateTemp(outDir, "report-*.xlsx")
			if err != nil {
				return err
			}
			defer os.Remove(tmp.Name())

			filename, err := reports.WriteRoomReport(ctx, roomID, tmp)
			if cerr := tmp.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}

			target := filepath.Join(outDir, filename)
			if err := os.Rename(tmp.Name(), target); err != nil {
				return err
			}
			a.logger.Info("report written", zap.String("path", target))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write the workbook to")
	cmd.Flags().StringVar(&asUser, "as", "", "email of the account to export as (defaults to SEED_ADMIN_EMAIL)")
	return cmd
}
