package logging

import (
	"log/slog"
	"time"

	"github.com/nippo-app/nippo-backend/internal/models"
	"gorm.io/gorm"
)

// StartCleanup runs a daily goroutine that deletes system_logs older
// than 30 days, and expired or consumed login codes.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -30)
				result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
				if result.Error != nil {
					slog.Error("log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("log cleanup completed", "deleted", result.RowsAffected)
				}

				codes := db.Where("consumed = true OR expires_at < ?", time.Now()).Delete(&models.LoginCode{})
				if codes.Error != nil {
					slog.Error("login code cleanup failed", "error", codes.Error)
				} else if codes.RowsAffected > 0 {
					slog.Info("login code cleanup completed", "deleted", codes.RowsAffected)
				}
			case <-done:
				return
			}
		}
	}()
}
