package http_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	httpapi "github.com/auditoriapp/auditoria-api/internal/interfaces/http"
	"github.com/auditoriapp/auditoria-api/pkg/jwt"
)

const testJWTSecret = "secreto-de-test"

func newProtectedApp(t *testing.T, roles ...string) *fiber.App {
	t.Helper()
	app := fiber.New()
	handlers := []fiber.Handler{httpapi.AuthMiddleware(testJWTSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, httpapi.RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		actor := httpapi.GetActor(c)
		return c.JSON(fiber.Map{"user_id": actor.ID, "role": actor.Role})
	})
	app.Get("/protegido", handlers...)
	return app
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := newProtectedApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/protegido", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoIncorrecto(t *testing.T) {
	app := newProtectedApp(t)

	token, err := jwt.Generate(testJWTSecret, 1, entity.RoleAdmin, "test", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", token) // sin el prefijo Bearer
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FirmaAjena(t *testing.T) {
	app := newProtectedApp(t)

	token, err := jwt.Generate("otro-secreto", 1, entity.RoleAdmin, "test", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := newProtectedApp(t)

	token, err := jwt.Generate(testJWTSecret, 42, entity.RoleSupervisor, "test", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	app := newProtectedApp(t, entity.RoleAdmin, entity.RoleSupervisor)

	cases := []struct {
		role string
		want int
	}{
		{entity.RoleAdmin, fiber.StatusOK},
		{entity.RoleSupervisor, fiber.StatusOK},
		{entity.RoleAuditor, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		token, err := jwt.Generate(testJWTSecret, 1, tc.role, "test", 60)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protegido", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, "rol %s", tc.role)
	}
}
