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

func (rt *Router) userRoutes(api fiber.Router) {
	user := api.Group("/user", rt.authn())

	user.Get("/info", rt.getUserInfo)
	user.Put("/profile", rt.updateProfile)
	user.Get("/experts", rt.myExperts)
}

func (rt *Router) getUserInfo(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityOf(c)
	if !ok {
		return httpx.WithRepErr(c, httpx.Unauthorized)
	}

	info, err := rt.userService.GetUserInfo(c.UserContext(), identity.UserId)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return httpx.WithRepErr(c, httpx.UserNotExist)
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, info)
}

func (rt *Router) updateProfile(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityOf(c)
	if !ok {
		return httpx.WithRepErr(c, httpx.Unauthorized)
	}

	var req model.UpdateUserReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
	}

	info, err := rt.userService.UpdateProfile(c.UserContext(), identity.UserId, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return httpx.WithRepErr(c, httpx.UserNotExist)
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, info)
}

// myExperts lists the tenants the caller is a member of.
func (rt *Router) myExperts(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityOf(c)
	if !ok {
		return httpx.WithRepErr(c, httpx.Unauthorized)
	}

	memberships, err := rt.expertService.ListUserMemberships(identity.UserId)
	if err != nil {
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, memberships)
}
