package dto

import "github.com/nippo-app/nippo-backend/internal/models"

// SubmitReportRequest carries one report submission. An empty date means
// the current day. Omitted hours default to 0 the way the original form
// initialized its field; an explicitly non-numeric value survives as the
// NaN sentinel (see models.Hours).
type SubmitReportRequest struct {
	Date        string        `json:"date"`
	TaskSummary *string       `json:"task_summary"`
	HoursWorked *models.Hours `json:"hours_worked"`
	Notes       *string       `json:"notes"`
}

type ReportListResponse struct {
	Reports []models.DailyReport `json:"reports"`
	Total   int                  `json:"total"`
	Month   string               `json:"month,omitempty"`
}
