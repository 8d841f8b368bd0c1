package http

import (
	"github.com/gofiber/fiber/v2"
)

// ResponseErr is the unified error envelope. Authorization errors carry
// nothing beyond the taxonomy code and the trace id.
type ResponseErr struct {
	Code    string `json:"code"`
	ErrMsg  string `json:"errMsg"`
	TraceId string `json:"traceId,omitempty"`
	Path    string `json:"path,omitempty"`
}

// TraceIdKey is the fiber locals key under which the trace middleware
// stores the per-request trace id.
const TraceIdKey = "traceId"

// TraceIdOf returns the request's trace id, empty when the trace
// middleware is not installed.
func TraceIdOf(c *fiber.Ctx) string {
	if traceId, ok := c.Locals(TraceIdKey).(string); ok {
		return traceId
	}
	return ""
}

// WithRepErr returns the error envelope for a taxonomy entry.
func WithRepErr(c *fiber.Ctx, resp *Response) error {
	return c.Status(resp.Status).JSON(ResponseErr{
		Code:    resp.Code,
		ErrMsg:  resp.Msg,
		TraceId: TraceIdOf(c),
		Path:    c.Path(),
	})
}

// WithRepErrMsg returns the error envelope with an overridden message.
func WithRepErrMsg(c *fiber.Ctx, resp *Response, errMsg string) error {
	return c.Status(resp.Status).JSON(ResponseErr{
		Code:    resp.Code,
		ErrMsg:  errMsg,
		TraceId: TraceIdOf(c),
		Path:    c.Path(),
	})
}
