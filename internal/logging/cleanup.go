package logging

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// PruneSystemLogs deletes system_logs older than retentionDays.
func PruneSystemLogs(db *gorm.DB, retentionDays int, now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -retentionDays)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

// StartCleanup schedules PruneSystemLogs on a standard cron expression.
// The returned scheduler must be stopped on shutdown.
func StartCleanup(db *gorm.DB, schedule string, retentionDays int) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		deleted, err := PruneSystemLogs(db, retentionDays, time.Now())
		if err != nil {
			slog.Error("log cleanup failed", "action", "log_cleanup", "error", err)
			return
		}
		if deleted > 0 {
			slog.Info("log cleanup completed", "deleted", deleted)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid log cleanup schedule %q: %w", schedule, err)
	}

	c.Start()
	slog.Info("log cleanup scheduled", "schedule", schedule, "retention_days", retentionDays)
	return c, nil
}
