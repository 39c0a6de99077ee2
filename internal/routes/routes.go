package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/nippo-app/nippo-backend/internal/config"
	"github.com/nippo-app/nippo-backend/internal/handlers"
	"github.com/nippo-app/nippo-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	reportHandler *handlers.ReportHandler,
	attendanceHandler *handlers.AttendanceHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit so the passcode mailer cannot
	// be used as a spam cannon: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/otp/request", authHandler.RequestCode)
	auth.Post("/otp/verify", authHandler.VerifyCode)
	auth.Post("/refresh", authHandler.Refresh)

	// Session gate + sign-out (JWT required)
	api.Get("/auth/session", middleware.JWTProtected(cfg), authHandler.Session)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Reports (JWT required)
	reports := api.Group("/reports", middleware.JWTProtected(cfg))
	reports.Post("/", reportHandler.Submit)
	reports.Get("/", reportHandler.List)
	reports.Get("/:date", reportHandler.Get)
	reports.Delete("/:date", reportHandler.Delete)

	// Attendance (JWT required)
	api.Post("/attendance/clock-in", middleware.JWTProtected(cfg), attendanceHandler.ClockIn)

	// Admin dashboard (JWT + exact-match admin email)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminOnly(cfg))
	admin.Get("/dashboard", attendanceHandler.Dashboard)
}
