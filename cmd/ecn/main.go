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

package main

import (
	"context"
	"flag"

	"github.com/earthcare/network/internal/engine/conf"
	"github.com/earthcare/network/internal/engine/repo"
	"github.com/earthcare/network/internal/engine/router"
	"github.com/earthcare/network/internal/engine/service"
	"github.com/earthcare/network/pkg/cache"
	"github.com/earthcare/network/pkg/cron"
	"github.com/earthcare/network/pkg/database"
	httpx "github.com/earthcare/network/pkg/http"
	"github.com/earthcare/network/pkg/log"
	"github.com/earthcare/network/pkg/trace"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, e.g. -conf ./conf.d/config.toml")
}

func main() {
	flag.Parse()

	appConf := conf.NewConf(configFile)

	if _, err := log.NewLog(&appConf.Log); err != nil {
		panic(err)
	}

	traceShutdown, err := trace.Setup(appConf.Trace)
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := traceShutdown(context.Background()); err != nil {
			log.Errorf("shutdown tracer failed: %v", err)
		}
	}()

	redisClient, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		panic(err)
	}
	redisCache := cache.ProvideICache(redisClient)

	gormDB, err := database.NewDatabase(appConf.Database)
	if err != nil {
		panic(err)
	}
	db := database.NewGormDB(gormDB)

	// repositories
	enterpriseRepo := repo.NewEnterpriseRepo(db)
	contactRepo := repo.NewContactRepo(db)
	invitationRepo := repo.NewInvitationRepo(db)
	claimRepo := repo.NewClaimRepo(db)
	membershipRepo := repo.NewMembershipRepo(db)
	userRepo := repo.NewUserRepo(db)
	opportunityRepo := repo.NewOpportunityRepo(db)
	taskRepo := repo.NewTaskRepo(db)
	subscriptionRepo := repo.NewSubscriptionRepo(db)

	// services
	authService := service.NewAuthService(userRepo, redisCache, appConf.Http.Auth)
	claimService := service.NewClaimService(claimRepo, invitationRepo, enterpriseRepo, contactRepo, redisCache)
	invitationService := service.NewInvitationService(invitationRepo, enterpriseRepo, contactRepo, subscriptionRepo)
	enterpriseService := service.NewEnterpriseService(enterpriseRepo, membershipRepo)
	contactService := service.NewContactService(contactRepo, enterpriseRepo)
	teamService := service.NewTeamService(membershipRepo, subscriptionRepo)
	opportunityService := service.NewOpportunityService(opportunityRepo, enterpriseRepo)
	taskService := service.NewTaskService(taskRepo, enterpriseRepo)
	leadScoreService, err := service.NewLeadScoreService(contactRepo, opportunityRepo, subscriptionRepo, appConf.LeadScore)
	if err != nil {
		panic(err)
	}

	// 邀请过期清扫
	scheduler := cron.NewScheduler()
	if appConf.Sweeper.Enabled {
		sweeper := service.NewSweeperService(invitationRepo)
		if err := scheduler.AddJob(appConf.Sweeper.Schedule, "invitation_sweeper", sweeper.SweepExpiredInvitations); err != nil {
			panic(err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	rt := router.NewRouter(
		appConf.Http,
		redisClient,
		authService,
		claimService,
		invitationService,
		enterpriseService,
		contactService,
		teamService,
		opportunityService,
		taskService,
		leadScoreService,
	)

	clean := httpx.Server(appConf.Http, rt.Router())
	clean()
}
