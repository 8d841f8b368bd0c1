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

package conf

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/expertly/expertly/pkg/cache"
	"github.com/expertly/expertly/pkg/database"
	"github.com/expertly/expertly/pkg/http"
	"github.com/expertly/expertly/pkg/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Telegram holds the bot credentials the miniapp login verifies
// against.
type Telegram struct {
	BotToken string
	// InitDataMaxAge bounds auth_date freshness, minutes. 0 disables
	// the check.
	InitDataMaxAge time.Duration
}

func (t *Telegram) Validate() error {
	if t.BotToken == "" {
		return errors.New("telegram bot token is required")
	}
	return nil
}

// Audit controls the authorization audit sink.
type Audit struct {
	BufferSize    int
	RetentionDays int
}

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Redis    cache.Redis
	Telegram Telegram
	Audit    Audit
}

func (ac *AppConfig) Validate() error {
	if ac.Http.Auth.SecretKey == "" {
		return errors.New("http auth secret key is required")
	}
	if err := ac.Database.Validate(); err != nil {
		return err
	}
	return ac.Telegram.Validate()
}

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confFile string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confFile)
		if err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile reads the TOML config and re-parses it on change.
func LoadConfigFile(confFile string) (AppConfig, error) {

	config := viper.New()
	config.SetConfigFile(confFile)
	if err := config.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %v", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("configuration changed, re-parsing: %s", e.Name)
		if err := config.Unmarshal(&cfg); err != nil {
			log.Errorw("failed to unmarshal configuration file", "error", err)
		}
	})
	if err := config.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Infow("config file loaded", "path", confFile)
	return cfg, nil
}
