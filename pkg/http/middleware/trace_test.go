package middleware

import (
	"net/http/httptest"
	"testing"

	httpx "github.com/expertly/expertly/pkg/http"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddlewareAssignsId(t *testing.T) {
	app := fiber.New()
	app.Use(TraceMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		assert.NotEmpty(t, httpx.TraceIdOf(c))
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(TraceHeader))
}

func TestTraceMiddlewareHonorsInboundId(t *testing.T) {
	app := fiber.New()
	app.Use(TraceMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(TraceHeader, "trace-123")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "trace-123", resp.Header.Get(TraceHeader))
}
