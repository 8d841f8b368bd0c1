package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/expertly/expertly/pkg/contract"
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the session token payload. Role is the platform role at
// issuance time; guards still re-check it against route requirements on
// every request.
type AuthClaims struct {
	UserId string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// PlatformRole returns the claim's role as the contract enum. Unknown
// values keep their raw string and rank below every known role.
func (a *AuthClaims) PlatformRole() contract.PlatformRole {
	return contract.PlatformRole(a.Role)
}

var issUser = "expertly"

// GenToken generates an access_token and a refresh_token pair.
func GenToken(userId string, role contract.PlatformRole, secretKey []byte, accessExpired, refreshExpired time.Duration) (aToken, rToken string, err error) {
	aClaims := &AuthClaims{
		UserId: userId,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issUser,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessExpired * time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	aToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, aClaims).SignedString(secretKey)
	if err != nil {
		return "", "", err
	}

	rClaims := jwt.RegisteredClaims{
		Issuer:    issUser,
		Subject:   userId,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(refreshExpired * time.Minute)),
	}
	rToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, rClaims).SignedString(secretKey)
	if err != nil {
		return "", "", err
	}

	return aToken, rToken, nil
}

// ParseToken verifies an access_token.
func ParseToken(aToken, secretKey string) (*AuthClaims, error) {
	claims := new(AuthClaims)
	token, err := jwt.ParseWithClaims(aToken, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, jwt.ErrTokenExpired
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// ParseRefreshToken verifies a refresh_token and returns the subject
// user id.
func ParseRefreshToken(rToken, secretKey string) (string, error) {
	var refreshClaims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(rToken, &refreshClaims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid refresh token")
	}

	if refreshClaims.ExpiresAt != nil && refreshClaims.ExpiresAt.Before(time.Now()) {
		return "", jwt.ErrTokenExpired
	}

	return refreshClaims.Subject, nil
}
