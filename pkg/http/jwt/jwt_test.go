package jwt

import (
	"testing"

	"github.com/expertly/expertly/pkg/contract"
	goJwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenAndParseToken(t *testing.T) {
	secretKey := "bf284d03-ba65-42d4-a9fe-0d2fbfe61060"

	aToken, rToken, err := GenToken("u_1", contract.PlatformRoleModerator, []byte(secretKey), 60, 7*24*60)
	require.NoError(t, err)
	require.NotEmpty(t, aToken)
	require.NotEmpty(t, rToken)

	claims, err := ParseToken(aToken, secretKey)
	require.NoError(t, err)
	assert.Equal(t, "u_1", claims.UserId)
	assert.Equal(t, contract.PlatformRoleModerator, claims.PlatformRole())
	assert.Equal(t, issUser, claims.Issuer)
}

func TestParseTokenWrongKey(t *testing.T) {
	aToken, _, err := GenToken("u_1", contract.PlatformRoleUser, []byte("key-one"), 60, 60)
	require.NoError(t, err)

	_, err = ParseToken(aToken, "key-two")
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	secretKey := "secret"
	aToken, _, err := GenToken("u_1", contract.PlatformRoleUser, []byte(secretKey), -1, 60)
	require.NoError(t, err)

	_, err = ParseToken(aToken, secretKey)
	assert.ErrorIs(t, err, goJwt.ErrTokenExpired)
}

func TestParseRefreshToken(t *testing.T) {
	secretKey := "secret"
	_, rToken, err := GenToken("u_42", contract.PlatformRoleUser, []byte(secretKey), 60, 60)
	require.NoError(t, err)

	userId, err := ParseRefreshToken(rToken, secretKey)
	require.NoError(t, err)
	assert.Equal(t, "u_42", userId)

	_, err = ParseRefreshToken(rToken, "other")
	assert.Error(t, err)
}

func TestUnknownRoleClaimRanksBelowEverything(t *testing.T) {
	secretKey := "secret"
	aToken, _, err := GenToken("u_1", contract.PlatformRole("root"), []byte(secretKey), 60, 60)
	require.NoError(t, err)

	claims, err := ParseToken(aToken, secretKey)
	require.NoError(t, err)
	assert.False(t, contract.IsPlatformAllowed(claims.PlatformRole(), contract.PlatformRoleUser))
}
