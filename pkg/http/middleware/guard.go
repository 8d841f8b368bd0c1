package middleware

import (
	"context"
	"time"

	"github.com/expertly/expertly/pkg/contract"
	"github.com/expertly/expertly/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// AuditSink records authorization decisions. Implementations must be
// non-blocking from the guard's point of view: a failure to record never
// blocks or fails the decision itself.
type AuditSink interface {
	Record(decision contract.AuthzDecision)
}

// MembershipLookup resolves a caller's role within one expert tenant.
// found is false when no membership row exists for the pair; err is
// reserved for store failures.
type MembershipLookup interface {
	MemberRole(ctx context.Context, userId, expertId string) (role contract.ExpertMemberRole, found bool, err error)
}

func record(sink AuditSink, c *fiber.Ctx, decision contract.AuthzDecision) {
	if sink == nil {
		return
	}
	decision.TraceId = http.TraceIdOf(c)
	decision.Timestamp = time.Now()
	sink.Record(decision)
}
