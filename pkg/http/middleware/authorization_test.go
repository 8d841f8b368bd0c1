package middleware

import (
	"net/http/httptest"
	"testing"

	httpx "github.com/expertly/expertly/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gofiber/fiber/v2"
)

// Session verification against redis is covered by integration tests;
// here we cover the token-shape rejections that never reach the store.
func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Use(TraceMiddleware())
	app.Use(AuthorizationMiddleware("secret", "user:token:", nil))
	app.Get("/guarded", okHandler)
	return app
}

func TestAuthorizationMiddlewareEmptyToken(t *testing.T) {
	app := newAuthApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	rep := decodeErr(t, resp.Body)
	assert.Equal(t, httpx.CodeUnauthorized, rep.Code)
}

func TestAuthorizationMiddlewareBadScheme(t *testing.T) {
	app := newAuthApp()

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthorizationMiddlewareGarbageToken(t *testing.T) {
	app := newAuthApp()

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
