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
	"errors"
	"strings"

	"github.com/expertly/expertly/pkg/http"
	"github.com/expertly/expertly/pkg/http/jwt"
	"github.com/expertly/expertly/pkg/log"
	"github.com/gofiber/fiber/v2"
	goJwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// AuthorizationMiddleware verifies the session of an inbound request:
// Bearer token parse, signature check, then a redis existence check so a
// logged-out session is rejected before the token itself expires. On
// success the caller identity is stored in fiber locals for the guards.
//
// tokenKeyPrefix is the redis key prefix under which sessions live,
// e.g. "user:token:".
func AuthorizationMiddleware(secretKey, tokenKeyPrefix string, client *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aToken := c.Get("Authorization")
		if aToken == "" {
			return http.WithRepErr(c, http.TokenBeEmpty)
		}

		parts := strings.SplitN(aToken, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return http.WithRepErr(c, http.TokenFormatIncorrect)
		}

		claims, err := jwt.ParseToken(parts[1], secretKey)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return http.WithRepErr(c, http.TokenExpired)
			}
			log.Errorf("parse token failed: %v", err)
			return http.WithRepErr(c, http.InvalidToken)
		}

		// revoked session check
		tokenKey := tokenKeyPrefix + claims.UserId
		exists, err := client.Exists(c.UserContext(), tokenKey).Result()
		if err != nil {
			log.Errorf("redis check token exists failed: %v", err)
			return http.WithRepErr(c, http.InternalError)
		}
		if exists == 0 {
			return http.WithRepErr(c, http.TokenExpired)
		}

		ttl, err := client.TTL(c.UserContext(), tokenKey).Result()
		if err != nil {
			log.Errorf("redis check token TTL failed: %v", err)
			return http.WithRepErr(c, http.InternalError)
		}
		if ttl <= 0 {
			log.Warnf("token has expired in redis for user: %s", claims.UserId)
			return http.WithRepErr(c, http.TokenExpired)
		}

		c.Locals(ClaimsKey, claims)
		c.Locals(IdentityKey, &Identity{
			UserId: claims.UserId,
			Role:   claims.PlatformRole(),
		})
		return c.Next()
	}
}
