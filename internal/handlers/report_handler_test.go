package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nippo-app/nippo-backend/internal/dto"
	"github.com/nippo-app/nippo-backend/internal/models"
	"github.com/nippo-app/nippo-backend/internal/services"
)

// stubReportStore keeps one report per day and mirrors the upsert
// semantics of the real store.
type stubReportStore struct {
	reports map[string]*models.DailyReport
	submits int
	deletes int
}

func newStubReportStore() *stubReportStore {
	return &stubReportStore{reports: make(map[string]*models.DailyReport)}
}

func (s *stubReportStore) Submit(userID uuid.UUID, req dto.SubmitReportRequest) (*models.DailyReport, bool, error) {
	s.submits++

	day := models.Today()
	if req.Date != "" {
		parsed, err := models.ParseDate(req.Date)
		if err != nil {
			return nil, false, err
		}
		day = parsed
	}

	hours := req.HoursWorked
	if hours == nil {
		zero := models.Hours(0)
		hours = &zero
	}

	if existing, ok := s.reports[day.String()]; ok {
		existing.TaskSummary = req.TaskSummary
		existing.HoursWorked = hours
		existing.Notes = req.Notes
		return existing, false, nil
	}

	report := &models.DailyReport{
		ID:          uuid.New(),
		UserID:      userID,
		ReportDate:  day,
		TaskSummary: req.TaskSummary,
		HoursWorked: hours,
		Notes:       req.Notes,
	}
	s.reports[day.String()] = report
	return report, true, nil
}

func (s *stubReportStore) Get(userID uuid.UUID, day models.Date) (*models.DailyReport, error) {
	if report, ok := s.reports[day.String()]; ok {
		return report, nil
	}
	return nil, services.ErrReportNotFound
}

func (s *stubReportStore) List(userID uuid.UUID) ([]models.DailyReport, error) {
	out := make([]models.DailyReport, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, *r)
	}
	return out, nil
}

func (s *stubReportStore) Delete(userID uuid.UUID, day models.Date) error {
	if _, ok := s.reports[day.String()]; !ok {
		return services.ErrReportNotFound
	}
	s.deletes++
	delete(s.reports, day.String())
	return nil
}

// withIdentity injects a signed-in identity the way the JWT middleware
// does, so handlers can be exercised without minting real tokens.
func withIdentity(userID uuid.UUID, email string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Token{
			Claims: jwt.MapClaims{
				"sub":   userID.String(),
				"email": email,
			},
			Valid: true,
		})
		return c.Next()
	}
}

func newReportTestApp(store ReportStore, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	handler := NewReportHandler(store)

	reports := app.Group("/api/reports", withIdentity(userID, "user@example.com"))
	reports.Post("/", handler.Submit)
	reports.Get("/", handler.List)
	reports.Get("/:date", handler.Get)
	reports.Delete("/:date", handler.Delete)
	return app
}

func submitJSON(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/reports/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestSubmitTwiceUpdatesInsteadOfDuplicating(t *testing.T) {
	t.Parallel()

	store := newStubReportStore()
	app := newReportTestApp(store, uuid.New())

	first := submitJSON(t, app, `{"date":"2024-02-01","task_summary":"draft","hours_worked":4,"notes":"first"}`)
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("first submit: status %d, want 201", first.StatusCode)
	}

	second := submitJSON(t, app, `{"date":"2024-02-01","task_summary":"final","hours_worked":8,"notes":"second"}`)
	if second.StatusCode != http.StatusOK {
		t.Fatalf("second submit: status %d, want 200", second.StatusCode)
	}

	if len(store.reports) != 1 {
		t.Fatalf("got %d rows, want 1", len(store.reports))
	}

	stored := store.reports["2024-02-01"]
	if *stored.TaskSummary != "final" || float64(*stored.HoursWorked) != 8 || *stored.Notes != "second" {
		t.Fatalf("second submit's values did not win: %+v", stored)
	}
}

func TestSubmitDefaultsOmittedHoursToZero(t *testing.T) {
	t.Parallel()

	store := newStubReportStore()
	app := newReportTestApp(store, uuid.New())

	resp := submitJSON(t, app, `{"date":"2024-02-01","task_summary":"work"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status %d", resp.StatusCode)
	}

	stored := store.reports["2024-02-01"]
	if stored.HoursWorked == nil || float64(*stored.HoursWorked) != 0 {
		t.Fatalf("omitted hours did not default to 0: %+v", stored.HoursWorked)
	}
}

func TestSubmitKeepsNonNumericHoursAsNaN(t *testing.T) {
	t.Parallel()

	store := newStubReportStore()
	app := newReportTestApp(store, uuid.New())

	resp := submitJSON(t, app, `{"date":"2024-02-01","hours_worked":"eight"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status %d", resp.StatusCode)
	}

	stored := store.reports["2024-02-01"]
	if stored.HoursWorked == nil || !stored.HoursWorked.IsNaN() {
		t.Fatalf("non-numeric hours were coerced: %+v", stored.HoursWorked)
	}
}

func TestSubmitRejectsMalformedDate(t *testing.T) {
	t.Parallel()

	store := newStubReportStore()
	app := newReportTestApp(store, uuid.New())

	resp := submitJSON(t, app, `{"date":"02/01/2024"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
	if store.submits != 0 {
		t.Fatal("store was called for a malformed date")
	}
}

func TestDeleteMissingReportIsNoOp(t *testing.T) {
	t.Parallel()

	store := newStubReportStore()
	app := newReportTestApp(store, uuid.New())

	req := httptest.NewRequest(http.MethodDelete, "/api/reports/2024-02-01", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d, want 404", resp.StatusCode)
	}
	if store.deletes != 0 {
		t.Fatal("delete was recorded for a missing report")
	}
}

func TestDeleteExistingReport(t *testing.T) {
	t.Parallel()

	store := newStubReportStore()
	app := newReportTestApp(store, uuid.New())

	submitJSON(t, app, `{"date":"2024-02-01","task_summary":"work"}`)

	req := httptest.NewRequest(http.MethodDelete, "/api/reports/2024-02-01", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	if len(store.reports) != 0 {
		t.Fatal("report survived deletion")
	}
}

func TestListFiltersToMonthDescending(t *testing.T) {
	t.Parallel()

	store := newStubReportStore()
	app := newReportTestApp(store, uuid.New())

	for _, day := range []string{"2024-01-15", "2024-02-01", "2024-02-29"} {
		submitJSON(t, app, fmt.Sprintf(`{"date":%q,"task_summary":"work"}`, day))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports/?month=2024-02", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var list dto.ReportListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 2 {
		t.Fatalf("got %d rows, want 2", list.Total)
	}
	if list.Reports[0].ReportDate.String() != "2024-02-29" {
		t.Fatalf("first row %s, want 2024-02-29", list.Reports[0].ReportDate)
	}
	if list.Reports[1].ReportDate.String() != "2024-02-01" {
		t.Fatalf("second row %s, want 2024-02-01", list.Reports[1].ReportDate)
	}
}

func TestListEmptyMonthReturnsEmptyList(t *testing.T) {
	t.Parallel()

	store := newStubReportStore()
	app := newReportTestApp(store, uuid.New())

	submitJSON(t, app, `{"date":"2024-01-15"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/?month=2024-03", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	var list dto.ReportListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 0 || len(list.Reports) != 0 {
		t.Fatalf("expected empty month, got %s", body)
	}
	if bytes.Contains(body, []byte(`"reports":null`)) {
		t.Fatal("empty month serialized as null instead of []")
	}
}

func TestEditRoundTripPreservesFields(t *testing.T) {
	t.Parallel()

	store := newStubReportStore()
	app := newReportTestApp(store, uuid.New())

	submitJSON(t, app, `{"date":"2024-02-01","task_summary":"design review","hours_worked":6.5,"notes":"ran long"}`)

	// Load the row the way the editor does.
	getReq := httptest.NewRequest(http.MethodGet, "/api/reports/2024-02-01", nil)
	getResp, err := app.Test(getReq)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	var loaded models.DailyReport
	if err := json.NewDecoder(getResp.Body).Decode(&loaded); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Resubmit the loaded values untouched.
	resubmit := dto.SubmitReportRequest{
		Date:        loaded.ReportDate.String(),
		TaskSummary: loaded.TaskSummary,
		HoursWorked: loaded.HoursWorked,
		Notes:       loaded.Notes,
	}
	body, _ := json.Marshal(resubmit)
	resp := submitJSON(t, app, string(body))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("resubmit status %d, want 200", resp.StatusCode)
	}

	stored := store.reports["2024-02-01"]
	if *stored.TaskSummary != "design review" || float64(*stored.HoursWorked) != 6.5 || *stored.Notes != "ran long" {
		t.Fatalf("round trip changed values: %+v", stored)
	}
	if len(store.reports) != 1 {
		t.Fatalf("round trip duplicated the row: %d rows", len(store.reports))
	}
}
