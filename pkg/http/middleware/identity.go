package middleware

import (
	"github.com/expertly/expertly/pkg/contract"
	"github.com/gofiber/fiber/v2"
)

// Fiber locals keys set by the session middleware and the guards.
const (
	ClaimsKey     = "claims"
	IdentityKey   = "identity"
	ExpertIdKey   = "expertId"
	ExpertRoleKey = "expertRole"
)

// Identity is the authenticated caller as verified by the session
// middleware. Guards read it from locals and never parse tokens
// themselves.
type Identity struct {
	UserId string
	Role   contract.PlatformRole
}

// IdentityOf returns the request identity, false when the session
// middleware did not authenticate the request.
func IdentityOf(c *fiber.Ctx) (*Identity, bool) {
	identity, ok := c.Locals(IdentityKey).(*Identity)
	if !ok || identity == nil || identity.UserId == "" {
		return nil, false
	}
	return identity, true
}
