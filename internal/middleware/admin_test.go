package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nippo-app/nippo-backend/internal/config"
)

const secretRow = `{"records":[{"user_email":"someone@example.com"}]}`

func newAdminTestApp(adminEmail string, claims jwt.MapClaims) *fiber.App {
	app := fiber.New()

	if claims != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user", &jwt.Token{Claims: claims, Valid: true})
			return c.Next()
		})
	}

	cfg := &config.Config{AdminEmail: adminEmail}
	app.Get("/api/admin/dashboard", AdminOnly(cfg), func(c *fiber.Ctx) error {
		c.Set("Content-Type", "application/json")
		return c.SendString(secretRow)
	})
	return app
}

func requestDashboard(t *testing.T, app *fiber.App) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAdminOnlyAllowsExactMatch(t *testing.T) {
	t.Parallel()

	app := newAdminTestApp("boss@example.com", jwt.MapClaims{"email": "boss@example.com"})
	status, body := requestDashboard(t, app)
	if status != http.StatusOK {
		t.Fatalf("status %d, want 200", status)
	}
	if !strings.Contains(body, "someone@example.com") {
		t.Fatalf("admin did not receive data: %s", body)
	}
}

func TestAdminOnlyRejectsOtherIdentities(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		adminEmail string
		claims     jwt.MapClaims
		wantStatus int
	}{
		{"different user", "boss@example.com", jwt.MapClaims{"email": "user@example.com"}, http.StatusForbidden},
		{"case differs", "boss@example.com", jwt.MapClaims{"email": "Boss@example.com"}, http.StatusForbidden},
		{"empty admin email matches nobody", "", jwt.MapClaims{"email": "user@example.com"}, http.StatusForbidden},
		{"no token at all", "boss@example.com", nil, http.StatusUnauthorized},
		{"token without email claim", "boss@example.com", jwt.MapClaims{"sub": "abc"}, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newAdminTestApp(tc.adminEmail, tc.claims)
			status, body := requestDashboard(t, app)
			if status != tc.wantStatus {
				t.Fatalf("status %d, want %d", status, tc.wantStatus)
			}
			// No partial rendering: not one row may leak past the gate.
			if strings.Contains(body, "someone@example.com") {
				t.Fatalf("dashboard data leaked to non-admin: %s", body)
			}
		})
	}
}
