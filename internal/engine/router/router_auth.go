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

package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/earthcare/network/internal/engine/consts"
	"github.com/earthcare/network/internal/engine/model"
	httpx "github.com/earthcare/network/pkg/http"
	"github.com/earthcare/network/pkg/http/middleware"
	"github.com/earthcare/network/pkg/log"
)

func (rt *Router) authRouter(r fiber.Router) {
	authGroup := r.Group("/auth")
	{
		// 注册
		authGroup.Post("/register", rt.register)

		// 登录
		authGroup.Post("/login", rt.login)

		// 注销
		auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.Http.Auth.RedisKeyPrefix, rt.redis)
		authGroup.Post("/logout", auth, rt.logout)

		// 当前用户
		authGroup.Get("/me", auth, rt.me)
	}
}

// register 用户注册
func (rt *Router) register(c *fiber.Ctx) error {
	var req model.RegisterReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse register request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}
	if req.Username == "" || req.Password == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.UsernameAndPasswordIsRequired, c.Path())
	}

	user, err := rt.authService.Register(&req)
	if err != nil {
		return repError(c, err, httpx.UserNotExist, httpx.UserAlreadyExist)
	}

	c.Locals(consts.DETAIL, user)
	return nil
}

// login 用户登录
func (rt *Router) login(c *fiber.Ctx) error {
	var req model.LoginReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("parse login request failed: %v", err)
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.RequestParameterParsingFailed, c.Path())
	}
	if req.Username == "" || req.Password == "" {
		return httpx.WithRepErrStatus(c, fiber.StatusBadRequest, httpx.UsernameAndPasswordIsRequired, c.Path())
	}

	resp, err := rt.authService.Login(c.UserContext(), &req)
	if err != nil {
		return repError(c, err, httpx.UserNotExist, httpx.UserAlreadyExist)
	}

	c.Locals(consts.DETAIL, resp)
	return nil
}

// logout 注销会话
func (rt *Router) logout(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return httpx.WithRepErrStatus(c, fiber.StatusUnauthorized, httpx.Unauthorized, c.Path())
	}

	if err := rt.authService.Logout(c.UserContext(), claims.UserId); err != nil {
		return repError(c, err, httpx.UserNotExist, httpx.UserAlreadyExist)
	}

	c.Locals(consts.OPERATION, "")
	return nil
}

// me 当前登录用户信息
func (rt *Router) me(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return httpx.WithRepErrStatus(c, fiber.StatusUnauthorized, httpx.Unauthorized, c.Path())
	}

	user, err := rt.authService.GetUser(claims.UserId)
	if err != nil {
		return repError(c, err, httpx.UserNotExist, httpx.UserAlreadyExist)
	}

	c.Locals(consts.DETAIL, user)
	return nil
}
