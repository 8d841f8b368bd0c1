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
	"fmt"
	"os"

	"github.com/expertly/expertly/internal/api/conf"
	"github.com/expertly/expertly/internal/api/repo"
	"github.com/expertly/expertly/pkg/cache"
	"github.com/expertly/expertly/pkg/database"
	"github.com/expertly/expertly/pkg/log"
	"github.com/expertly/expertly/pkg/version"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "expertlyctl",
	Short: "expertlyctl administers the expertly platform from the command line",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path")
	rootCmd.AddCommand(version.VersionCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(memberCmd)
	rootCmd.AddCommand(auditCmd)
}

// repos opens the shared storage layer the server uses, so CLI changes
// go through the same invariants.
type repos struct {
	user       repo.IUserRepository
	expert     repo.IExpertRepository
	membership repo.IExpertMembershipRepository
	audit      repo.IAuditRepository
}

func openRepos() (*repos, error) {
	appConf := conf.NewConf(configFile)
	log.MustInit(&appConf.Log)

	db, err := database.NewDatabase(appConf.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	var rdb *redis.Client
	if rdb, err = cache.NewRedis(appConf.Redis); err != nil {
		// profile cache invalidation degrades, writes still go through
		fmt.Fprintf(os.Stderr, "warning: redis unavailable: %v\n", err)
		rdb = nil
	}

	return &repos{
		user:       repo.NewUserRepo(db, rdb),
		expert:     repo.NewExpertRepo(db),
		membership: repo.NewExpertMembershipRepo(db),
		audit:      repo.NewAuditRepo(db),
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
