package middleware

import (
	"runtime/debug"

	"github.com/expertly/expertly/pkg/http"
	"github.com/expertly/expertly/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// ExceptionMiddleware recovers panics and converts them into the
// internal error envelope so no stack trace reaches the caller.
func ExceptionMiddleware(c *fiber.Ctx) error {
	defer func() {
		if err := recover(); err != nil {
			log.Errorf("panic: %v\n%s", err, debug.Stack())
			_ = http.WithRepErr(c, http.InternalError)
		}
	}()

	return c.Next()
}
