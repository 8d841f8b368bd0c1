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

// Package contract holds the wire-level enums shared by the API server,
// the bot and the webapp. Role values here are the v1 contract: they are
// persisted, embedded in tokens and compared by rank, so the sets are
// append-only.
package contract

// PlatformRole is a user's global privilege level across the whole platform.
type PlatformRole string

const (
	PlatformRoleUser      PlatformRole = "user"
	PlatformRoleModerator PlatformRole = "moderator"
	PlatformRoleAdmin     PlatformRole = "admin"
	PlatformRoleOwner     PlatformRole = "owner"
)

// ExpertMemberRole is a user's role inside a single expert tenant. A user
// may hold different roles in different experts, or none at all.
type ExpertMemberRole string

const (
	ExpertRoleMember ExpertMemberRole = "member"
	ExpertRoleEditor ExpertMemberRole = "editor"
	ExpertRoleOwner  ExpertMemberRole = "owner"
)

// UnknownRank sorts strictly below every known role. An unrecognized role
// value must never rank above a known one.
const UnknownRank = -1

var platformRank = map[PlatformRole]int{
	PlatformRoleUser:      0,
	PlatformRoleModerator: 1,
	PlatformRoleAdmin:     2,
	PlatformRoleOwner:     3,
}

var expertRank = map[ExpertMemberRole]int{
	ExpertRoleMember: 0,
	ExpertRoleEditor: 1,
	ExpertRoleOwner:  2,
}

// RankOf maps a platform role to its privilege rank. Unknown values rank
// below every known role.
func (r PlatformRole) RankOf() int {
	if rank, ok := platformRank[r]; ok {
		return rank
	}
	return UnknownRank
}

// Known reports whether r is one of the v1 platform role values.
func (r PlatformRole) Known() bool {
	_, ok := platformRank[r]
	return ok
}

// RankOf maps an expert member role to its privilege rank inside a tenant.
func (r ExpertMemberRole) RankOf() int {
	if rank, ok := expertRank[r]; ok {
		return rank
	}
	return UnknownRank
}

// Known reports whether r is one of the v1 expert member role values.
func (r ExpertMemberRole) Known() bool {
	_, ok := expertRank[r]
	return ok
}

// IsPlatformAllowed reports whether actual is at least as privileged as
// required. An unknown actual role never satisfies a known requirement.
// An unknown required role falls back to the lowest known requirement;
// required roles are declared at route-registration time, never taken
// from the request, so the fallback keeps a misdeclared route conservative
// instead of fail-open.
func IsPlatformAllowed(actual, required PlatformRole) bool {
	requiredRank := required.RankOf()
	if requiredRank == UnknownRank {
		requiredRank = platformRank[PlatformRoleUser]
	}
	return actual.RankOf() >= requiredRank
}

// IsExpertAllowed is the tenancy-scoped counterpart of IsPlatformAllowed.
func IsExpertAllowed(actual, required ExpertMemberRole) bool {
	requiredRank := required.RankOf()
	if requiredRank == UnknownRank {
		requiredRank = expertRank[ExpertRoleMember]
	}
	return actual.RankOf() >= requiredRank
}
