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
	"github.com/expertly/expertly/pkg/contract"
	httpx "github.com/expertly/expertly/pkg/http"
	"github.com/expertly/expertly/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) expertRoutes(api fiber.Router) {
	expert := api.Group("/expert", rt.authn())

	expert.Post("", rt.createExpert)
	expert.Get("/list", rt.listExperts)
	expert.Get("/by-slug/:slug", rt.getExpertBySlug)

	expert.Get("/:expertId", rt.requireExpert(contract.ExpertRoleMember), rt.getExpert)
	expert.Put("/:expertId", rt.requireExpert(contract.ExpertRoleEditor), rt.updateExpert)
	expert.Delete("/:expertId", rt.requireExpert(contract.ExpertRoleOwner), rt.deleteExpert)

	expert.Get("/:expertId/members", rt.requireExpert(contract.ExpertRoleMember), rt.listMembers)
	expert.Post("/:expertId/members", rt.requireExpert(contract.ExpertRoleOwner), rt.addMember)
	expert.Put("/:expertId/members/:userId", rt.requireExpert(contract.ExpertRoleOwner), rt.changeMemberRole)
	expert.Delete("/:expertId/members/:userId", rt.requireExpert(contract.ExpertRoleOwner), rt.removeMember)
}

// requireExpert gates a tenant route on the caller's role within the
// tenant named by the :expertId parameter.
func (rt *Router) requireExpert(role contract.ExpertMemberRole) fiber.Handler {
	return middleware.ExpertRoleMiddleware(middleware.ExpertRoleConfig{
		RequiredRole:   role,
		Lookup:         rt.lookup,
		Audit:          rt.auditService,
		PlatformBypass: rt.Http.Auth.AdminBypassExpertChecks,
	})
}

func (rt *Router) createExpert(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityOf(c)
	if !ok {
		return httpx.WithRepErr(c, httpx.Unauthorized)
	}

	var req model.CreateExpertReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
	}
	if req.Name == "" || req.Slug == "" {
		return httpx.WithRepErrMsg(c, httpx.BadRequest, "name and slug are required")
	}

	expert, err := rt.expertService.CreateExpert(identity.UserId, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSlug), errors.Is(err, service.ErrSlugTaken):
			return httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, expert)
}

func (rt *Router) listExperts(c *fiber.Ctx) error {
	pageNum := c.QueryInt("pageNum", 1)
	pageSize := c.QueryInt("pageSize", 10)

	experts, count, err := rt.expertService.GetExpertList(pageNum, pageSize)
	if err != nil {
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, fiber.Map{"list": experts, "total": count})
}

// getExpertBySlug resolves a tenant from its public slug, for miniapp
// deep links. Same visibility as the listing.
func (rt *Router) getExpertBySlug(c *fiber.Ctx) error {
	expert, err := rt.expertService.GetExpertBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, service.ErrExpertNotFound) {
			return httpx.WithRepErr(c, httpx.ExpertNotExist)
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, expert)
}

func (rt *Router) getExpert(c *fiber.Ctx) error {
	expert, err := rt.expertService.GetExpert(c.Params("expertId"))
	if err != nil {
		if errors.Is(err, service.ErrExpertNotFound) {
			return httpx.WithRepErr(c, httpx.ExpertNotExist)
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, expert)
}

func (rt *Router) updateExpert(c *fiber.Ctx) error {
	var req model.UpdateExpertReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
	}

	expert, err := rt.expertService.UpdateExpert(c.Params("expertId"), &req)
	if err != nil {
		if errors.Is(err, service.ErrExpertNotFound) {
			return httpx.WithRepErr(c, httpx.ExpertNotExist)
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, expert)
}

func (rt *Router) deleteExpert(c *fiber.Ctx) error {
	if err := rt.expertService.DeleteExpert(c.Params("expertId")); err != nil {
		if errors.Is(err, service.ErrExpertNotFound) {
			return httpx.WithRepErr(c, httpx.ExpertNotExist)
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) listMembers(c *fiber.Ctx) error {
	pageNum := c.QueryInt("pageNum", 1)
	pageSize := c.QueryInt("pageSize", 10)

	members, count, err := rt.expertService.ListMembers(c.Params("expertId"), pageNum, pageSize)
	if err != nil {
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, fiber.Map{"list": members, "total": count})
}

func (rt *Router) addMember(c *fiber.Ctx) error {
	identity, _ := middleware.IdentityOf(c)

	var req model.AddMemberReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
	}
	if req.UserId == "" {
		return httpx.WithRepErr(c, httpx.UserIdIsEmpty)
	}

	membership, err := rt.expertService.AddMember(c.Params("expertId"), identity.UserId, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberExists):
			return httpx.WithRepErr(c, httpx.MemberExists)
		case errors.Is(err, service.ErrUserNotFound):
			return httpx.WithRepErr(c, httpx.UserNotExist)
		case errors.Is(err, service.ErrExpertNotFound):
			return httpx.WithRepErr(c, httpx.ExpertNotExist)
		case errors.Is(err, service.ErrUnknownRole):
			return httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepJSON(c, membership)
}

func (rt *Router) changeMemberRole(c *fiber.Ctx) error {
	var req model.ChangeMemberRoleReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErr(c, httpx.RequestParameterParsingFailed)
	}

	err := rt.expertService.ChangeMemberRole(c.Params("expertId"), c.Params("userId"), req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMembershipNotFound):
			return httpx.WithRepErr(c, httpx.NotFound)
		case errors.Is(err, service.ErrUnknownRole), errors.Is(err, service.ErrLastOwner):
			return httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepNotDetail(c)
}

func (rt *Router) removeMember(c *fiber.Ctx) error {
	err := rt.expertService.RemoveMember(c.Params("expertId"), c.Params("userId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMembershipNotFound):
			return httpx.WithRepErr(c, httpx.NotFound)
		case errors.Is(err, service.ErrLastOwner):
			return httpx.WithRepErrMsg(c, httpx.BadRequest, err.Error())
		}
		return httpx.WithRepErr(c, httpx.InternalError)
	}

	return httpx.WithRepNotDetail(c)
}
