package dto

import (
	"time"

	"github.com/nippo-app/nippo-backend/internal/models"
)

// AttendanceRecord is one row of the admin dashboard: clock-in and
// report fields joined per (user, day). Nullable columns stay nullable;
// the dash placeholder is a display concern.
type AttendanceRecord struct {
	UserEmail   string        `gorm:"column:user_email" json:"user_email"`
	Date        models.Date   `gorm:"column:work_date" json:"date"`
	ClockInTime *time.Time    `gorm:"column:clock_in_time" json:"clock_in_time"`
	TaskSummary *string       `gorm:"column:task_summary" json:"task_summary"`
	HoursWorked *models.Hours `gorm:"column:hours_worked" json:"hours_worked"`
}

type DashboardResponse struct {
	Records []AttendanceRecord `json:"records"`
	Total   int                `json:"total"`
}
