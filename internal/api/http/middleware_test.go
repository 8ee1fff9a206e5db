package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesadeayuda/helpdesk/internal/auth"
	"github.com/mesadeayuda/helpdesk/internal/domain"
	"github.com/mesadeayuda/helpdesk/internal/observability"
)

func newTestApp(timeout time.Duration) *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), timeout)
	return app
}

func principalInjector(role domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := &domain.User{ID: "u1", Role: role, Status: domain.UserStatusActive}
		auth.StorePrincipal(c, &auth.Principal{User: user, Role: role})
		return c.Next()
	}
}

func decodeErrorCode(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	return payload.Error.Code
}

func TestRoleGuardForbidsRequesters(t *testing.T) {
	app := newTestApp(0)
	app.Get("/staff-only", principalInjector(domain.UserRoleRequester), auth.RequireStaff(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/staff-only", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeErrorCode(t, resp.Body))
}

func TestRoleGuardAdmitsStaffAndAdmin(t *testing.T) {
	for _, role := range []domain.UserRole{domain.UserRoleStaff, domain.UserRoleAdmin} {
		app := newTestApp(0)
		app.Get("/staff-only", principalInjector(role), auth.RequireStaff(), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusNoContent)
		})

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/staff-only", nil))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode, "role %s", role)
	}
}

func TestRoleGuardRequiresPrincipal(t *testing.T) {
	app := newTestApp(0)
	app.Get("/staff-only", auth.RequireStaff(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/staff-only", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, resp.Body))
}

func TestRequestTimeoutReachesHandlers(t *testing.T) {
	app := newTestApp(time.Second)
	app.Get("/deadline", func(c *fiber.Ctx) error {
		_, ok := c.UserContext().Deadline()
		return c.JSON(fiber.Map{"has_deadline": ok})
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/deadline", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload struct {
		HasDeadline bool `json:"has_deadline"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.True(t, payload.HasDeadline)
}
