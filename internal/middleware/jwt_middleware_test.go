package middleware_test

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"swiftstock/internal/database"
	"swiftstock/internal/middleware"
	"swiftstock/internal/repositories"
	"swiftstock/internal/services"
	"swiftstock/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func setupApp(t *testing.T) (*fiber.App, *services.AuthService) {
	t.Helper()
	dir := t.TempDir()
	provider := database.NewProvider(database.Config{Driver: "sqlite", DSN: filepath.Join(dir, "swiftstock.db")})
	t.Cleanup(func() { provider.Close() })
	db, err := provider.Acquire()
	require.NoError(t, err)

	auth := services.NewAuthService(
		repositories.NewGORMAccountRepository(db),
		database.NewSchema(db),
		session.NewFileStore(filepath.Join(dir, "session.toml")),
		services.AuthOptions{JWTSecret: "test_jwt_secret"},
	)
	require.NoError(t, auth.Bootstrap())

	app := fiber.New()
	app.Get("/whoami", middleware.AuthRequired(auth), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("email").(string))
	})
	return app, auth
}

func get(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthRequired(t *testing.T) {
	app, auth := setupApp(t)

	status, body := get(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "Authorization header is required")

	status, body = get(t, app, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "Bearer <token>")

	token, err := auth.IssueToken(services.DefaultAccountEmail)
	require.NoError(t, err)

	status, _ = get(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, status, "a token needs a matching login")

	require.True(t, auth.Login(services.DefaultAccountEmail, services.DefaultAccountPassword))
	status, body = get(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, services.DefaultAccountEmail, body)

	status, _ = get(t, app, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, status)
}
