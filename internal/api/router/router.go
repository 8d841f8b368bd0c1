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
	"time"

	"github.com/expertly/expertly/internal/api/consts"
	"github.com/expertly/expertly/internal/api/service"
	"github.com/expertly/expertly/pkg/ctx"
	httpx "github.com/expertly/expertly/pkg/http"
	"github.com/expertly/expertly/pkg/http/middleware"
	"github.com/expertly/expertly/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	Http *httpx.Http
	Ctx  *ctx.Context

	authService   *service.AuthService
	userService   *service.UserService
	expertService *service.ExpertService
	auditService  *service.AuditService

	lookup middleware.MembershipLookup
}

func NewRouter(
	httpConf *httpx.Http,
	appCtx *ctx.Context,
	authService *service.AuthService,
	userService *service.UserService,
	expertService *service.ExpertService,
	auditService *service.AuditService,
	lookup middleware.MembershipLookup,
) *Router {
	return &Router{
		Http:          httpConf,
		Ctx:           appCtx,
		authService:   authService,
		userService:   userService,
		expertService: expertService,
		auditService:  auditService,
		lookup:        lookup,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Expertly",
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
	})

	app.Use(
		middleware.ExceptionMiddleware,
		middleware.CorsMiddleware(),
		middleware.TraceMiddleware(),
	)

	if rt.Http.AccessLog {
		app.Use(middleware.AccessLogMiddleware(rt.Http))
	}

	if rt.Http.PProf {
		app.Use(pprof.New(pprof.Config{Prefix: "/debug"}))
	}

	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	api := app.Group(rt.Http.ContextPath)
	rt.authRoutes(api)
	rt.userRoutes(api)
	rt.expertRoutes(api)
	rt.adminRoutes(api)

	app.Use(func(c *fiber.Ctx) error {
		return httpx.WithRepErr(c, httpx.NotFound)
	})

	return app
}

// authn verifies the bearer token and the live session in redis.
func (rt *Router) authn() fiber.Handler {
	return middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, consts.UserTokenKey, rt.Ctx.Redis)
}
