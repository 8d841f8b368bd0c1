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

package router

import (
	"errors"

	"github.com/expertly/expertly/internal/api/model"
	"github.com/expertly/expertly/internal/api/service"
	httpx "github.com/expertly/expertly/pkg/http"
	"github.com/expertly/expertly/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) authRoutes(api fiber.Router) {
	auth := api.Group("/auth")

	auth.Post("/telegram", rt.telegramLogin)
	auth.Post("/login", rt.passwordLogin)
	auth.Post("/refresh", rt.refresh)
	auth.Post("/logout", rt.authn(), rt.logout)
}

func (rt *Router) telegramLogin(c *fiber.Ctx) error {
	var req model.TelegramLoginReq
	if err := c.BodyParser(&req); err != nil || req.InitData == "" {
		return httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
	}

	resp, err := rt.authService.TelegramLogin(c.UserContext(), req.InitData)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInitDataExpired):
			return httpx.WithRepErr(c, httpx.InitDataExpired)
		case errors.Is(err, service.ErrInvalidInitData):
			return httpx.WithRepErr(c, httpx.InvalidInitData)
		case errors.Is(err, service.ErrUserDisabled):
			return httpx.WithRepErrMsg(c, httpx.Forbidden, err.Error())
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, resp)
}

func (rt *Router) passwordLogin(c *fiber.Ctx) error {
	var req model.PasswordLoginReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
	}
	if req.Username == "" || req.Password == "" {
		return httpx.WithRepErr(c, httpx.UsernamePasswordRequired)
	}

	resp, err := rt.authService.PasswordLogin(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return httpx.WithRepErr(c, httpx.IncorrectUserOrPassword)
		case errors.Is(err, service.ErrUserDisabled):
			return httpx.WithRepErrMsg(c, httpx.Forbidden, err.Error())
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, resp)
}

func (rt *Router) refresh(c *fiber.Ctx) error {
	var req model.RefreshTokenReq
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
	}

	resp, err := rt.authService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			return httpx.WithRepErr(c, httpx.InvalidToken)
		case errors.Is(err, service.ErrUserDisabled):
			return httpx.WithRepErrMsg(c, httpx.Forbidden, err.Error())
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, resp)
}

func (rt *Router) logout(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityOf(c)
	if !ok {
		return httpx.WithRepErr(c, httpx.Unauthorized)
	}

	if err := rt.authService.Logout(c.UserContext(), identity.UserId); err != nil {
		return httpx.WithRepErr(c, httpx.InternalError)
	}
	return httpx.WithRepNotDetail(c)
}
