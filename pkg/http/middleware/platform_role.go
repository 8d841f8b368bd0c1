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
	"github.com/expertly/expertly/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

// PlatformRoleConfig declares a route's minimum global role. It is fixed
// at route-registration time and read-only afterwards.
type PlatformRoleConfig struct {
	// RequiredRole is the minimum platform role. Empty means the guard
	// is a no-op.
	RequiredRole contract.PlatformRole

	Audit AuditSink
}

// PlatformRoleMiddleware gates a route on the caller's global platform
// role. Denials never leak the required or actual role to the caller;
// both stay in the audit record.
func PlatformRoleMiddleware(cfg PlatformRoleConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.RequiredRole == "" {
			return c.Next()
		}

		identity, ok := IdentityOf(c)
		if !ok {
			// unauthenticated is a distinct outcome from insufficient role
			metrics.AuthzDecisionsTotal.WithLabelValues(contract.ScopePlatform, metrics.OutcomeDenied).Inc()
			record(cfg.Audit, c, contract.AuthzDecision{
				Scope:        contract.ScopePlatform,
				RequiredRole: string(cfg.RequiredRole),
				Allowed:      false,
				Reason:       contract.ReasonUnauthenticated,
			})
			return http.WithRepErr(c, http.Unauthorized)
		}

		if !contract.IsPlatformAllowed(identity.Role, cfg.RequiredRole) {
			metrics.AuthzDecisionsTotal.WithLabelValues(contract.ScopePlatform, metrics.OutcomeDenied).Inc()
			record(cfg.Audit, c, contract.AuthzDecision{
				SubjectUserId: identity.UserId,
				Scope:         contract.ScopePlatform,
				RequiredRole:  string(cfg.RequiredRole),
				ActualRole:    string(identity.Role),
				Allowed:       false,
				Reason:        contract.ReasonInsufficientRole,
			})
			return http.WithRepErr(c, http.Forbidden)
		}

		metrics.AuthzDecisionsTotal.WithLabelValues(contract.ScopePlatform, metrics.OutcomeGranted).Inc()

		// grants by admin-or-higher callers stay traceable
		if identity.Role.RankOf() >= contract.PlatformRoleAdmin.RankOf() {
			record(cfg.Audit, c, contract.AuthzDecision{
				SubjectUserId: identity.UserId,
				Scope:         contract.ScopePlatform,
				RequiredRole:  string(cfg.RequiredRole),
				ActualRole:    string(identity.Role),
				Allowed:       true,
				Reason:        contract.ReasonGranted,
			})
		}

		return c.Next()
	}
}

// RequireModerator gates a route on the moderator platform role.
func RequireModerator(audit AuditSink) fiber.Handler {
	return PlatformRoleMiddleware(PlatformRoleConfig{RequiredRole: contract.PlatformRoleModerator, Audit: audit})
}

// RequireAdmin gates a route on the admin platform role.
func RequireAdmin(audit AuditSink) fiber.Handler {
	return PlatformRoleMiddleware(PlatformRoleConfig{RequiredRole: contract.PlatformRoleAdmin, Audit: audit})
}

// RequireOwner gates a route on the owner platform role.
func RequireOwner(audit AuditSink) fiber.Handler {
	return PlatformRoleMiddleware(PlatformRoleConfig{RequiredRole: contract.PlatformRoleOwner, Audit: audit})
}
