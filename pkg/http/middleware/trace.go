package middleware

import (
	"github.com/expertly/expertly/pkg/http"
	"github.com/expertly/expertly/pkg/id"
	"github.com/gofiber/fiber/v2"
)

// TraceHeader carries the request trace id back to the caller so a
// denied request can be correlated with its audit record.
const TraceHeader = "X-Trace-Id"

// TraceMiddleware assigns every request a trace id. An inbound
// X-Trace-Id is honored so the webapp can stitch retries together.
func TraceMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceId := c.Get(TraceHeader)
		if traceId == "" {
			traceId = id.ShortId()
		}

		c.Locals(http.TraceIdKey, traceId)
		c.Set(TraceHeader, traceId)

		return c.Next()
	}
}
