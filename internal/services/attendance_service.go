package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nippo-app/nippo-backend/internal/dto"
	"github.com/nippo-app/nippo-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceService struct {
	db *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// ClockIn records the first punch for (user, today). A repeat punch is a
// no-op; the stored row is returned either way.
func (s *AttendanceService) ClockIn(userID uuid.UUID, now time.Time) (*models.ClockIn, error) {
	record := models.ClockIn{
		ID:          uuid.New(),
		UserID:      userID,
		WorkDate:    models.NewDate(now),
		ClockedInAt: now,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "work_date"}},
		DoNothing: true,
	}).Create(&record).Error
	if err != nil {
		return nil, fmt.Errorf("failed to record clock-in: %w", err)
	}

	var stored models.ClockIn
	err = s.db.Where("user_id = ? AND work_date = ?", userID, record.WorkDate).First(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load clock-in: %w", err)
	}
	return &stored, nil
}

// dashboardQuery joins clock-ins with reports per (user, day). Either
// side may be missing, so the join is FULL OUTER with COALESCE on the
// day. Ordering matches the history view: newest day first, then email.
const dashboardQuery = `
SELECT u.email AS user_email,
       COALESCE(c.work_date, r.report_date) AS work_date,
       c.clocked_in_at AS clock_in_time,
       r.task_summary AS task_summary,
       r.hours_worked AS hours_worked
FROM clock_ins c
FULL OUTER JOIN daily_reports r
  ON r.user_id = c.user_id AND r.report_date = c.work_date
JOIN users u ON u.id = COALESCE(c.user_id, r.user_id)
WHERE u.deleted_at IS NULL
ORDER BY COALESCE(c.work_date, r.report_date) DESC, u.email ASC
`

// DashboardRows runs the aggregation behind the admin dashboard and
// returns its rows verbatim.
func (s *AttendanceService) DashboardRows() ([]dto.AttendanceRecord, error) {
	var rows []dto.AttendanceRecord
	if err := s.db.Raw(dashboardQuery).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("dashboard query failed: %w", err)
	}
	return rows, nil
}
