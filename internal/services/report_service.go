package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nippo-app/nippo-backend/internal/dto"
	"github.com/nippo-app/nippo-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrReportNotFound = errors.New("report not found")

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Submit upserts the report for (user, day). The composite unique index
// resolves concurrent submissions for the same day at the database, so
// two near-simultaneous submits end as one row with the later values
// instead of duplicating. The bool reports whether a new row was
// created, false when an existing day was updated in place.
func (s *ReportService) Submit(userID uuid.UUID, req dto.SubmitReportRequest) (*models.DailyReport, bool, error) {
	day, err := resolveDay(req.Date)
	if err != nil {
		return nil, false, err
	}

	hours := req.HoursWorked
	if hours == nil {
		zero := models.Hours(0)
		hours = &zero
	}

	report := models.DailyReport{
		ID:          uuid.New(),
		UserID:      userID,
		ReportDate:  day,
		TaskSummary: req.TaskSummary,
		HoursWorked: hours,
		Notes:       req.Notes,
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "report_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"task_summary", "hours_worked", "notes", "updated_at",
		}),
	}).Create(&report).Error
	if err != nil {
		return nil, false, fmt.Errorf("failed to save report: %w", err)
	}

	// Re-read so the caller sees the surviving row (the conflict path
	// keeps the original id and created_at).
	stored, err := s.Get(userID, day)
	if err != nil {
		return nil, false, err
	}
	return stored, stored.ID == report.ID, nil
}

// Get returns the report for one day, or ErrReportNotFound.
func (s *ReportService) Get(userID uuid.UUID, day models.Date) (*models.DailyReport, error) {
	var report models.DailyReport
	err := s.db.Where("user_id = ? AND report_date = ?", userID, day).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// List returns every report owned by the user. Ordering and month
// narrowing both happen in memory, over the fetched set.
func (s *ReportService) List(userID uuid.UUID) ([]models.DailyReport, error) {
	var reports []models.DailyReport
	err := s.db.Where("user_id = ?", userID).Find(&reports).Error
	return reports, err
}

// Delete removes the report for one day. A missing row is reported as
// ErrReportNotFound and nothing is written.
func (s *ReportService) Delete(userID uuid.UUID, day models.Date) error {
	report, err := s.Get(userID, day)
	if err != nil {
		return err
	}
	return s.db.Delete(report).Error
}

func resolveDay(raw string) (models.Date, error) {
	if raw == "" {
		return models.Today(), nil
	}
	return models.ParseDate(raw)
}

// ParseMonth parses a "YYYY-MM" selector.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}

// FilterToMonth narrows reports to those whose date falls in the given
// year and month. Pure; input order is preserved.
func FilterToMonth(reports []models.DailyReport, year int, month time.Month) []models.DailyReport {
	filtered := make([]models.DailyReport, 0, len(reports))
	for _, r := range reports {
		if r.ReportDate.Year() == year && r.ReportDate.Month() == month {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
