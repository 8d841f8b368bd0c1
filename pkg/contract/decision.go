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

package contract

import (
	"fmt"
	"time"
)

// ScopePlatform marks a decision taken against the caller's global role.
const ScopePlatform = "platform"

// ScopeExpert is the label prefix of tenancy-scoped decisions, also
// used as the metrics scope label.
const ScopeExpert = "expert"

// ExpertScope builds the scope label for a tenancy-scoped decision.
func ExpertScope(expertId string) string {
	return fmt.Sprintf("%s:%s", ScopeExpert, expertId)
}

// Decision outcome reasons. These are recorded in the audit trail only,
// never returned to the caller.
const (
	ReasonGranted           = "granted"
	ReasonPlatformBypass    = "platform_bypass"
	ReasonUnauthenticated   = "unauthenticated"
	ReasonInsufficientRole  = "insufficient_role"
	ReasonNoMembership      = "no_membership"
	ReasonTenantNotResolved = "tenant_not_resolved"
	ReasonLookupFailure     = "lookup_failure"
)

// AuthzDecision is the per-request authorization outcome handed to the
// audit sink. It is ephemeral: the core never stores it itself.
type AuthzDecision struct {
	SubjectUserId string    `json:"subjectUserId"`
	Scope         string    `json:"scope"` // "platform" or "expert:<expertId>"
	RequiredRole  string    `json:"requiredRole"`
	ActualRole    string    `json:"actualRole"`
	Allowed       bool      `json:"allowed"`
	Reason        string    `json:"reason"`
	TraceId       string    `json:"traceId"`
	Timestamp     time.Time `json:"timestamp"`
}
