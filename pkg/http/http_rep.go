package http

import (
	"github.com/gofiber/fiber/v2"
)

// Response is the unified success envelope.
type Response struct {
	Status int    `json:"-"`
	Code   string `json:"code"`
	Msg    string `json:"msg"`
	Detail any    `json:"detail,omitempty"`
}

// WithRepJSON returns a success envelope with detail payload.
func WithRepJSON(c *fiber.Ctx, detail any) error {
	return c.Status(Success.Status).JSON(Response{
		Code:   Success.Code,
		Msg:    Success.Msg,
		Detail: detail,
	})
}

// WithRepMsg returns a custom code and message without detail.
func WithRepMsg(c *fiber.Ctx, resp *Response) error {
	return c.Status(resp.Status).JSON(Response{
		Code: resp.Code,
		Msg:  resp.Msg,
	})
}

// WithRepNotDetail returns a bare success envelope, used by mutations
// that have nothing to return.
func WithRepNotDetail(c *fiber.Ctx) error {
	return c.Status(Success.Status).JSON(Response{
		Code: Success.Code,
		Msg:  Success.Msg,
	})
}
