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

package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const dataTablePrefix = "t_"

// Database represents the MySQL data source configuration.
type Database struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	Timeout         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // seconds
}

// Validate checks required fields and fills pool defaults.
func (d *Database) Validate() error {
	if d.Host == "" || d.Port == "" || d.User == "" || d.DBName == "" {
		return fmt.Errorf("database host, port, user and dbname are required")
	}
	if d.Timeout == "" {
		d.Timeout = "5s"
	}
	if d.MaxIdleConns <= 0 {
		d.MaxIdleConns = 10
	}
	if d.MaxOpenConns <= 0 {
		d.MaxOpenConns = 100
	}
	if d.ConnMaxLifetime <= 0 {
		d.ConnMaxLifetime = 3600
	}
	return nil
}

func (d *Database) dsn() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.Timeout)
}

// IDatabase abstracts the gorm handle for the repo layer.
type IDatabase interface {
	Database() *gorm.DB
}

type gormDatabase struct {
	db *gorm.DB
}

func (g *gormDatabase) Database() *gorm.DB {
	return g.db
}

// NewGormDatabase wraps an existing gorm handle.
func NewGormDatabase(db *gorm.DB) IDatabase {
	return &gormDatabase{db: db}
}

// NewDatabase opens the MySQL connection and configures the pool.
func NewDatabase(cfg Database) (IDatabase, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := gorm.Open(mysql.Open(cfg.dsn()), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dataTablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	return &gormDatabase{db: db}, nil
}
