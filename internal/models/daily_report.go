package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyReport is one user's submission for one calendar day. The
// composite unique index makes the submit path an atomic upsert; a
// duplicate insert for the same (user, day) resolves to an update at the
// database instead of racing a prior existence lookup.
//
// Rows are hard-deleted: a removed report leaves no history.
type DailyReport struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_reports_user_date" json:"user_id"`
	ReportDate  Date      `gorm:"not null;uniqueIndex:idx_daily_reports_user_date" json:"date"`
	TaskSummary *string   `gorm:"type:text" json:"task_summary"`
	HoursWorked *Hours    `gorm:"type:double precision" json:"hours_worked"`
	Notes       *string   `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
