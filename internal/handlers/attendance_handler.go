package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nippo-app/nippo-backend/internal/dto"
	"github.com/nippo-app/nippo-backend/internal/identity"
	"github.com/nippo-app/nippo-backend/internal/models"
)

// AttendanceStore is the slice of AttendanceService the handlers need.
type AttendanceStore interface {
	ClockIn(userID uuid.UUID, now time.Time) (*models.ClockIn, error)
	DashboardRows() ([]dto.AttendanceRecord, error)
}

type AttendanceHandler struct {
	store AttendanceStore
}

func NewAttendanceHandler(store AttendanceStore) *AttendanceHandler {
	return &AttendanceHandler{store: store}
}

// ClockIn records today's punch; repeats return the original record.
func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	record, err := h.store.ClockIn(userID, time.Now().UTC())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to record clock-in",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// Dashboard returns the aggregated attendance rows. A query failure is
// logged and answered with an empty table; the dashboard never surfaces
// a data error to its viewer.
func (h *AttendanceHandler) Dashboard(c *fiber.Ctx) error {
	rows, err := h.store.DashboardRows()
	if err != nil {
		slog.Error("admin dashboard aggregation failed", "action", "admin_dashboard", "error", err)
		rows = nil
	}

	if rows == nil {
		rows = []dto.AttendanceRecord{}
	}

	return c.JSON(dto.DashboardResponse{
		Records: rows,
		Total:   len(rows),
	})
}
