// Copyright 2026 Earth Care Network Team
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
	"context"
	"errors"
	"strings"

	"github.com/earthcare/network/pkg/http"
	"github.com/earthcare/network/pkg/http/jwt"
	"github.com/earthcare/network/pkg/log"
	"github.com/gofiber/fiber/v2"
	goJwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// ClaimsKey locals key holding the parsed *jwt.AuthClaims.
const ClaimsKey = "claims"

// AuthorizationMiddleware 认证中间件
// secretKey: 用于验证 JWT 的密钥
// sessionKeyPrefix: Redis 会话键前缀
// This function is used as the middleware of fiber.
func AuthorizationMiddleware(secretKey, sessionKeyPrefix string, client *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aToken := c.Get("Authorization")
		if aToken == "" {
			return http.WithRepErrStatus(c, fiber.StatusUnauthorized, http.TokenBeEmpty, c.Path())
		}

		parts := strings.SplitN(aToken, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return http.WithRepErrStatus(c, fiber.StatusUnauthorized, http.AuthorizationEmpty, c.Path())
		}

		claims, err := jwt.ParseToken(parts[1], secretKey)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return http.WithRepErrStatus(c, fiber.StatusUnauthorized, http.TokenExpired, c.Path())
			}
			log.Errorf("parse token failed: %v", err)
			return http.WithRepErrStatus(c, fiber.StatusUnauthorized, http.InvalidToken, c.Path())
		}

		// 检查 Redis 会话是否存在
		sessionKey := sessionKeyPrefix + claims.UserId
		exists, err := client.Exists(context.Background(), sessionKey).Result()
		if err != nil {
			log.Errorf("redis check session exists failed: %v", err)
			return http.WithRepErrStatus(c, fiber.StatusInternalServerError, http.InternalError, c.Path())
		}
		if exists == 0 {
			return http.WithRepErrStatus(c, fiber.StatusUnauthorized, http.TokenExpired, c.Path())
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromCtx returns the authenticated claims set by AuthorizationMiddleware,
// or nil when the request is anonymous.
func ClaimsFromCtx(c *fiber.Ctx) *jwt.AuthClaims {
	claims, _ := c.Locals(ClaimsKey).(*jwt.AuthClaims)
	return claims
}
