// Copyright 2025 Expertly Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package middleware

import (
	"github.com/expertly/expertly/pkg/contract"
	"github.com/expertly/expertly/pkg/http"
	"github.com/expertly/expertly/pkg/log"
	"github.com/expertly/expertly/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

// ExpertRoleConfig declares a route's minimum role inside the expert
// tenant addressed by the request. Fixed at route-registration time.
type ExpertRoleConfig struct {
	// RequiredRole is the minimum expert member role. Empty means the
	// guard is a no-op.
	RequiredRole contract.ExpertMemberRole

	Lookup MembershipLookup
	Audit  AuditSink

	// PlatformBypass lets callers whose global role ranks admin or above
	// skip the membership lookup. Off by default; every bypass grant is
	// audited with its own reason.
	PlatformBypass bool

	// ParamName is the route parameter carrying the tenant id,
	// "expertId" when empty.
	ParamName string
}

// ExpertRoleMiddleware gates a tenant-scoped route on the caller's role
// within that tenant, independent of their global platform role. A
// failed lookup is a denial, never a retry and never fail-open.
func ExpertRoleMiddleware(cfg ExpertRoleConfig) fiber.Handler {
	paramName := cfg.ParamName
	if paramName == "" {
		paramName = ExpertIdKey
	}

	return func(c *fiber.Ctx) error {
		if cfg.RequiredRole == "" {
			return c.Next()
		}

		expertId := resolveExpertId(c, paramName)

		identity, ok := IdentityOf(c)
		if !ok {
			metrics.AuthzDecisionsTotal.WithLabelValues(contract.ScopeExpert, metrics.OutcomeDenied).Inc()
			record(cfg.Audit, c, contract.AuthzDecision{
				Scope:        contract.ExpertScope(expertId),
				RequiredRole: string(cfg.RequiredRole),
				Allowed:      false,
				Reason:       contract.ReasonUnauthenticated,
			})
			return http.WithRepErr(c, http.Unauthorized)
		}

		if expertId == "" {
			// a tenant-scoped route without a resolvable tenant id is a
			// route wiring bug, not an access-control outcome
			log.Errorw("expert guard could not resolve tenant id",
				"path", c.Path(), "param", paramName, "traceId", http.TraceIdOf(c))
			metrics.AuthzDecisionsTotal.WithLabelValues(contract.ScopeExpert, metrics.OutcomeDenied).Inc()
			record(cfg.Audit, c, contract.AuthzDecision{
				SubjectUserId: identity.UserId,
				Scope:         contract.ExpertScope(""),
				RequiredRole:  string(cfg.RequiredRole),
				ActualRole:    string(identity.Role),
				Allowed:       false,
				Reason:        contract.ReasonTenantNotResolved,
			})
			return http.WithRepErr(c, http.Forbidden)
		}

		if cfg.PlatformBypass && identity.Role.RankOf() >= contract.PlatformRoleAdmin.RankOf() {
			metrics.AuthzDecisionsTotal.WithLabelValues(contract.ScopeExpert, metrics.OutcomeGranted).Inc()
			record(cfg.Audit, c, contract.AuthzDecision{
				SubjectUserId: identity.UserId,
				Scope:         contract.ExpertScope(expertId),
				RequiredRole:  string(cfg.RequiredRole),
				ActualRole:    string(identity.Role),
				Allowed:       true,
				Reason:        contract.ReasonPlatformBypass,
			})
			c.Locals(ExpertIdKey, expertId)
			return c.Next()
		}

		role, found, err := cfg.Lookup.MemberRole(c.UserContext(), identity.UserId, expertId)
		if err != nil {
			// store unavailable: deny conservatively and escalate
			log.Errorw("expert membership lookup failed",
				"userId", identity.UserId, "expertId", expertId, "error", err, "traceId", http.TraceIdOf(c))
			metrics.AuthzLookupFailuresTotal.Inc()
			metrics.AuthzDecisionsTotal.WithLabelValues(contract.ScopeExpert, metrics.OutcomeDenied).Inc()
			record(cfg.Audit, c, contract.AuthzDecision{
				SubjectUserId: identity.UserId,
				Scope:         contract.ExpertScope(expertId),
				RequiredRole:  string(cfg.RequiredRole),
				ActualRole:    string(identity.Role),
				Allowed:       false,
				Reason:        contract.ReasonLookupFailure,
			})
			return http.WithRepErr(c, http.Forbidden)
		}

		if !found {
			metrics.AuthzDecisionsTotal.WithLabelValues(contract.ScopeExpert, metrics.OutcomeDenied).Inc()
			record(cfg.Audit, c, contract.AuthzDecision{
				SubjectUserId: identity.UserId,
				Scope:         contract.ExpertScope(expertId),
				RequiredRole:  string(cfg.RequiredRole),
				Allowed:       false,
				Reason:        contract.ReasonNoMembership,
			})
			return http.WithRepErr(c, http.Forbidden)
		}

		if !contract.IsExpertAllowed(role, cfg.RequiredRole) {
			metrics.AuthzDecisionsTotal.WithLabelValues(contract.ScopeExpert, metrics.OutcomeDenied).Inc()
			record(cfg.Audit, c, contract.AuthzDecision{
				SubjectUserId: identity.UserId,
				Scope:         contract.ExpertScope(expertId),
				RequiredRole:  string(cfg.RequiredRole),
				ActualRole:    string(role),
				Allowed:       false,
				Reason:        contract.ReasonInsufficientRole,
			})
			return http.WithRepErr(c, http.Forbidden)
		}

		metrics.AuthzDecisionsTotal.WithLabelValues(contract.ScopeExpert, metrics.OutcomeGranted).Inc()

		c.Locals(ExpertIdKey, expertId)
		c.Locals(ExpertRoleKey, role)
		return c.Next()
	}
}

// resolveExpertId extracts the tenant id, path param first, then query,
// then request body.
func resolveExpertId(c *fiber.Ctx, paramName string) string {
	if expertId := c.Params(paramName); expertId != "" {
		return expertId
	}

	if expertId := c.Query(paramName); expertId != "" {
		return expertId
	}

	var body map[string]interface{}
	if err := c.BodyParser(&body); err == nil {
		if expertId, ok := body[paramName].(string); ok && expertId != "" {
			return expertId
		}
	}

	return ""
}

// RequireExpertMember gates a route on basic tenant membership.
func RequireExpertMember(lookup MembershipLookup, audit AuditSink) fiber.Handler {
	return ExpertRoleMiddleware(ExpertRoleConfig{RequiredRole: contract.ExpertRoleMember, Lookup: lookup, Audit: audit})
}

// RequireExpertEditor gates a route on the editor tenant role.
func RequireExpertEditor(lookup MembershipLookup, audit AuditSink) fiber.Handler {
	return ExpertRoleMiddleware(ExpertRoleConfig{RequiredRole: contract.ExpertRoleEditor, Lookup: lookup, Audit: audit})
}

// RequireExpertOwner gates a route on the owner tenant role.
func RequireExpertOwner(lookup MembershipLookup, audit AuditSink) fiber.Handler {
	return ExpertRoleMiddleware(ExpertRoleConfig{RequiredRole: contract.ExpertRoleOwner, Lookup: lookup, Audit: audit})
}
