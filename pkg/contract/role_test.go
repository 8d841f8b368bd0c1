package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformRankOrdering(t *testing.T) {
	ordered := []PlatformRole{PlatformRoleUser, PlatformRoleModerator, PlatformRoleAdmin, PlatformRoleOwner}

	prev := UnknownRank
	for _, role := range ordered {
		assert.Greater(t, role.RankOf(), prev, "rank must strictly increase at %q", role)
		prev = role.RankOf()
	}
}

func TestPlatformRankUnknown(t *testing.T) {
	assert.Equal(t, UnknownRank, PlatformRole("").RankOf())
	assert.Equal(t, UnknownRank, PlatformRole("superuser").RankOf())
	assert.Equal(t, UnknownRank, PlatformRole("OWNER").RankOf(), "role values are case sensitive")
}

func TestIsPlatformAllowed(t *testing.T) {
	known := []PlatformRole{PlatformRoleUser, PlatformRoleModerator, PlatformRoleAdmin, PlatformRoleOwner}

	// isAllowed(a, b) == (rankOf(a) >= rankOf(b)) for every known pair,
	// which also covers reflexivity.
	for _, a := range known {
		for _, b := range known {
			assert.Equal(t, a.RankOf() >= b.RankOf(), IsPlatformAllowed(a, b), "a=%q b=%q", a, b)
		}
	}

	assert.False(t, IsPlatformAllowed(PlatformRoleUser, PlatformRoleOwner))
	assert.True(t, IsPlatformAllowed(PlatformRoleOwner, PlatformRoleUser))
	assert.True(t, IsPlatformAllowed(PlatformRoleAdmin, PlatformRoleModerator))
}

func TestIsPlatformAllowedUnknownActual(t *testing.T) {
	// An unrecognized actual role never clears any known requirement,
	// including the lowest one.
	for _, required := range []PlatformRole{PlatformRoleUser, PlatformRoleModerator, PlatformRoleAdmin, PlatformRoleOwner} {
		assert.False(t, IsPlatformAllowed(PlatformRole("banana"), required), "required=%q", required)
	}
}

func TestIsPlatformAllowedUnknownRequired(t *testing.T) {
	// A malformed required role degrades to the lowest known requirement
	// for recognized callers, and still rejects unrecognized callers.
	assert.True(t, IsPlatformAllowed(PlatformRoleUser, PlatformRole("typo")))
	assert.False(t, IsPlatformAllowed(PlatformRole("typo"), PlatformRole("typo")))
}

func TestExpertRankOrdering(t *testing.T) {
	ordered := []ExpertMemberRole{ExpertRoleMember, ExpertRoleEditor, ExpertRoleOwner}

	prev := UnknownRank
	for _, role := range ordered {
		assert.Greater(t, role.RankOf(), prev, "rank must strictly increase at %q", role)
		prev = role.RankOf()
	}
	assert.Equal(t, UnknownRank, ExpertMemberRole("viewer").RankOf())
}

func TestIsExpertAllowed(t *testing.T) {
	assert.True(t, IsExpertAllowed(ExpertRoleOwner, ExpertRoleEditor))
	assert.True(t, IsExpertAllowed(ExpertRoleEditor, ExpertRoleEditor))
	assert.False(t, IsExpertAllowed(ExpertRoleMember, ExpertRoleEditor))
	assert.False(t, IsExpertAllowed(ExpertMemberRole(""), ExpertRoleMember))
}

func TestExpertScope(t *testing.T) {
	assert.Equal(t, "expert:ex_123", ExpertScope("ex_123"))
}
