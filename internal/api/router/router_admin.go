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

// adminRoutes is the platform-role gated surface. Listing users needs
// moderator, account toggles and the audit trail need admin, platform
// role changes need owner.
func (rt *Router) adminRoutes(api fiber.Router) {
	admin := api.Group("/admin", rt.authn())

	admin.Get("/users", middleware.RequireModerator(rt.auditService), rt.listUsers)
	admin.Put("/users/:userId/role", middleware.RequireOwner(rt.auditService), rt.setUserRole)
	admin.Put("/users/:userId/enabled", middleware.RequireAdmin(rt.auditService), rt.setUserEnabled)
	admin.Get("/audit", middleware.RequireAdmin(rt.auditService), rt.listAudit)
}

func (rt *Router) listUsers(c *fiber.Ctx) error {
	pageNum := c.QueryInt("pageNum", 1)
	pageSize := c.QueryInt("pageSize", 10)

	users, count, err := rt.userService.GetUserList(pageNum, pageSize)
	if err != nil {
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, fiber.Map{"list": users, "total": count})
}

func (rt *Router) setUserRole(c *fiber.Ctx) error {
	userId := c.Params("userId")
	if userId == "" {
		return httpx.WithRepErr(c, httpx.UserIdIsEmpty)
	}

	var req model.SetRoleReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
	}

	if err := rt.userService.SetPlatformRole(c.UserContext(), userId, req.Role); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownRole):
			return httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			return httpx.WithRepErr(c, httpx.UserNotExist)
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepNotDetail(c)
}

func (rt *Router) setUserEnabled(c *fiber.Ctx) error {
	userId := c.Params("userId")
	if userId == "" {
		return httpx.WithRepErr(c, httpx.UserIdIsEmpty)
	}

	var req model.SetEnabledReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
	}

	if err := rt.userService.SetEnabled(c.UserContext(), userId, req.Enabled); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return httpx.WithRepErr(c, httpx.UserNotExist)
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepNotDetail(c)
}

func (rt *Router) listAudit(c *fiber.Ctx) error {
	pageNum := c.QueryInt("pageNum", 1)
	pageSize := c.QueryInt("pageSize", 10)
	subjectUserId := c.Query("subjectUserId")

	records, count, err := rt.auditService.ListAudit(pageNum, pageSize, subjectUserId)
	if err != nil {
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, fiber.Map{"list": records, "total": count})
}
