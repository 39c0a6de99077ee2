package handlers

import (
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nippo-app/nippo-backend/internal/dto"
	"github.com/nippo-app/nippo-backend/internal/identity"
	"github.com/nippo-app/nippo-backend/internal/models"
	"github.com/nippo-app/nippo-backend/internal/services"
)

// ReportStore is the slice of ReportService the handler needs.
type ReportStore interface {
	Submit(userID uuid.UUID, req dto.SubmitReportRequest) (*models.DailyReport, bool, error)
	Get(userID uuid.UUID, day models.Date) (*models.DailyReport, error)
	List(userID uuid.UUID) ([]models.DailyReport, error)
	Delete(userID uuid.UUID, day models.Date) error
}

type ReportHandler struct {
	store ReportStore
}

func NewReportHandler(store ReportStore) *ReportHandler {
	return &ReportHandler{store: store}
}

// Submit saves the report for the given day: 201 when the day had no
// report yet, 200 when an existing one was updated in place.
func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if req.Date != "" {
		if _, err := models.ParseDate(req.Date); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid date, expected YYYY-MM-DD",
			})
		}
	}

	report, created, err := h.store.Submit(userID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save report",
		})
	}

	status := fiber.StatusCreated
	if !created {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(report)
}

// List returns the user's reports newest first, narrowed to one month
// when ?month=YYYY-MM is given. The full set is fetched and the month
// filter applied in memory.
func (h *ReportHandler) List(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reports, err := h.store.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}

	if reports == nil {
		reports = []models.DailyReport{}
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].ReportDate.After(reports[j].ReportDate.Time)
	})

	month := c.Query("month")
	if month != "" {
		year, m, err := services.ParseMonth(month)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid month, expected YYYY-MM",
			})
		}
		reports = services.FilterToMonth(reports, year, m)
	}

	return c.JSON(dto.ReportListResponse{
		Reports: reports,
		Total:   len(reports),
		Month:   month,
	})
}

// Get returns one day's report so it can be loaded back into the editor.
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	day, err := models.ParseDate(c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid date, expected YYYY-MM-DD",
		})
	}

	report, err := h.store.Get(userID, day)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch report",
		})
	}

	return c.JSON(report)
}

// Delete removes one day's report. A day with no report is a no-op and
// answers 404 without touching the store.
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	day, err := models.ParseDate(c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid date, expected YYYY-MM-DD",
		})
	}

	if err := h.store.Delete(userID, day); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete report",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Report deleted successfully"})
}
