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

package main

import (
	"context"
	"flag"
	"time"

	"github.com/expertly/expertly/internal/api/conf"
	"github.com/expertly/expertly/internal/api/repo"
	"github.com/expertly/expertly/internal/api/router"
	"github.com/expertly/expertly/internal/api/service"
	"github.com/expertly/expertly/pkg/cache"
	"github.com/expertly/expertly/pkg/ctx"
	"github.com/expertly/expertly/pkg/database"
	httpx "github.com/expertly/expertly/pkg/http"
	"github.com/expertly/expertly/pkg/log"
	"github.com/expertly/expertly/pkg/runner"
	"github.com/expertly/expertly/pkg/telegram"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, e.g. -conf conf.d/config.toml")
}

func main() {
	flag.Parse()

	appConf := conf.NewConf(configFile)

	log.MustInit(&appConf.Log)
	logger := log.GetLogger()
	logger.Infow("starting expertly api", "hostname", runner.Hostname, "pwd", runner.Pwd)

	redis, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		logger.Fatalw("failed to connect redis", "error", err)
	}

	db, err := database.NewDatabase(appConf.Database)
	if err != nil {
		logger.Fatalw("failed to connect database", "error", err)
	}

	// fail fast on a bad bot token, the miniapp login depends on it
	botCheckCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	bot, err := telegram.NewClient(appConf.Telegram.BotToken).GetMe(botCheckCtx)
	cancel()
	if err != nil {
		logger.Fatalw("telegram bot token check failed", "error", err)
	}
	logger.Infow("telegram bot verified", "username", bot.Username)

	appCtx := ctx.NewContext(context.Background(), db.Database(), redis, logger)

	userRepo := repo.NewUserRepo(db, redis)
	expertRepo := repo.NewExpertRepo(db)
	membershipRepo := repo.NewExpertMembershipRepo(db)
	auditRepo := repo.NewAuditRepo(db)

	auditService := service.NewAuditService(auditRepo, appConf.Audit.BufferSize, appConf.Audit.RetentionDays)
	auditService.StartRetention()
	defer auditService.Close()

	authService := service.NewAuthService(userRepo, appConf.Http.Auth,
		appConf.Telegram.BotToken, appConf.Telegram.InitDataMaxAge*time.Minute)
	userService := service.NewUserService(userRepo)
	expertService := service.NewExpertService(expertRepo, membershipRepo, userRepo)

	route := router.NewRouter(&appConf.Http, appCtx,
		authService, userService, expertService, auditService, membershipRepo)

	httpClean := httpx.NewHttp(appConf.Http, route.Router())
	httpClean()
}
