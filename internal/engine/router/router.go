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
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/earthcare/network/internal/engine/service"
	httpx "github.com/earthcare/network/pkg/http"
	"github.com/earthcare/network/pkg/http/middleware"
	"github.com/earthcare/network/pkg/metrics"
)

type Router struct {
	Http  httpx.Http
	redis *redis.Client

	authService        *service.AuthService
	claimService       *service.ClaimService
	invitationService  *service.InvitationService
	enterpriseService  *service.EnterpriseService
	contactService     *service.ContactService
	teamService        *service.TeamService
	opportunityService *service.OpportunityService
	taskService        *service.TaskService
	leadScoreService   *service.LeadScoreService
}

func NewRouter(
	httpConf httpx.Http,
	redisClient *redis.Client,
	authService *service.AuthService,
	claimService *service.ClaimService,
	invitationService *service.InvitationService,
	enterpriseService *service.EnterpriseService,
	contactService *service.ContactService,
	teamService *service.TeamService,
	opportunityService *service.OpportunityService,
	taskService *service.TaskService,
	leadScoreService *service.LeadScoreService,
) *Router {
	return &Router{
		Http:               httpConf,
		redis:              redisClient,
		authService:        authService,
		claimService:       claimService,
		invitationService:  invitationService,
		enterpriseService:  enterpriseService,
		contactService:     contactService,
		teamService:        teamService,
		opportunityService: opportunityService,
		taskService:        taskService,
		leadScoreService:   leadScoreService,
	}
}

func (rt *Router) Router() *fiber.App {
	app := httpx.NewApp(rt.Http)

	app.Use(middleware.RequestMiddleware())
	app.Use(middleware.CorsMiddleware())
	app.Use(middleware.ExceptionMiddleware)
	app.Use(middleware.TraceMiddleware())
	app.Use(middleware.MetricsMiddleware())
	if rt.Http.AccessLog {
		app.Use(middleware.AccessLogMiddleware(&rt.Http))
	}
	app.Use(middleware.UnifiedResponseMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(
			promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))
	}

	if rt.Http.PProf {
		rt.debugRouter(app.Group("/debug/pprof"))
	}

	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.Http.Auth.RedisKeyPrefix, rt.redis)

	api := app.Group(rt.Http.ContextPath)
	rt.authRouter(api)
	rt.claimRouter(api, auth)
	rt.adminRouter(api, auth)
	rt.enterpriseRouter(api, auth)
	rt.contactRouter(api, auth)
	rt.teamRouter(api, auth)
	rt.opportunityRouter(api, auth)
	rt.taskRouter(api, auth)

	return app
}
