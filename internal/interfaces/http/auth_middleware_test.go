package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Peminjaman-api/internal/application/auth"
	"github.com/jhoicas/Peminjaman-api/internal/infrastructure/cache"
	apphttp "github.com/jhoicas/Peminjaman-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Peminjaman-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = int64(7)
	testUsername  = "rina"
	testIssuer    = "peminjaman-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware y un handler
// que devuelve los locals cargados.
func buildTestApp(t *testing.T) (*fiber.App, *cache.MemoryStore) {
	t.Helper()
	revoker := cache.NewMemoryStore()
	uc := auth.NewAuthUseCase(nil, revoker, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(uc), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
		})
	})
	return app, revoker
}

func token(t *testing.T, expMin int) (string, *pkgjwt.Claims) {
	t.Helper()
	tok, claims, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, testIssuer, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok, claims
}

func doRequest(t *testing.T, app *fiber.App, setup func(*http.Request)) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if setup != nil {
		setup(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, string(body)
}

func bearer(tok string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_BearerCargaLocals(t *testing.T) {
	app, _ := buildTestApp(t)
	tok, _ := token(t, testExpMin)

	resp, body := doRequest(t, app, bearer(tok))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, testUserID, out.UserID)
	assert.Equal(t, testUsername, out.Username)
}

func TestAuthMiddleware_CookieTienePrioridad(t *testing.T) {
	app, _ := buildTestApp(t)
	tok, _ := token(t, testExpMin)

	resp, _ := doRequest(t, app, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.AuthCookie, Value: tok})
		r.Header.Set("Authorization", "Bearer basura")
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "la cookie válida se usa antes que el header")
}

func TestAuthMiddleware_SinToken_Retorna401(t *testing.T) {
	app, _ := buildTestApp(t)
	resp, body := doRequest(t, app, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "MISSING_TOKEN")

	resp, body = doRequest(t, app, func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") })
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app, _ := buildTestApp(t)
	tok, _ := token(t, -1)

	resp, body := doRequest(t, app, bearer(tok))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "TOKEN_EXPIRED")
}

func TestAuthMiddleware_TokenInvalido_Retorna403(t *testing.T) {
	app, _ := buildTestApp(t)
	resp, body := doRequest(t, app, bearer("token.invalido.aqui"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "INVALID_TOKEN")

	foreign, _, err := pkgjwt.Generate("otro-secret-completamente-distinto", testUserID, testUsername, testIssuer, testExpMin)
	require.NoError(t, err)
	resp, _ = doRequest(t, app, bearer(foreign))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_TokenRevocado_Retorna403(t *testing.T) {
	app, revoker := buildTestApp(t)
	tok, claims := token(t, testExpMin)
	require.NoError(t, revoker.Revoke(context.Background(), claims.ID, time.Hour))

	resp, body := doRequest(t, app, bearer(tok))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "INVALID_TOKEN")
}
