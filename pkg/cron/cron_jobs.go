package cron

import (
	"context"
	"database/sql"
	"time"

	"github.com/robfig/cron/v3"

	"kantong/internal/repositories"
	"kantong/pkg/utils"
)

func StartCronJobs(db *sql.DB) *cron.Cron {
	c := cron.New()

	// Daily at midnight: drop expired and revoked refresh tokens.
	_, err := c.AddFunc("0 0 * * *", func() {
		if err := PurgeStaleRefreshTokens(db); err != nil {
			utils.Logger.Errorf("Cron job failed to purge refresh tokens: %v", err)
		}
	})
	if err != nil {
		utils.Logger.Errorf("Failed to schedule refresh token purge job: %v", err)
	}

	c.Start()
	utils.Logger.Info("Cron jobs started (refresh token purge daily at midnight)")
	return c
}

func PurgeStaleRefreshTokens(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	removed, err := repositories.CleanupExpiredRefreshTokens(ctx, db)
	if err != nil {
		return err
	}
	if removed > 0 {
		utils.Logger.Infof("Purged %d stale refresh tokens", removed)
	}
	return nil
}
