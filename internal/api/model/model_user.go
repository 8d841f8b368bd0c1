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

package model

import (
	"time"

	"github.com/expertly/expertly/pkg/contract"
)

// User is a platform account, created on first Telegram login.
type User struct {
	ID           int       `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserId       string    `gorm:"column:user_id;not null;uniqueIndex" json:"userId"`
	TelegramId   int64     `gorm:"column:telegram_id;uniqueIndex" json:"telegramId"`
	Username     string    `gorm:"column:username;index" json:"username"`
	FirstName    string    `gorm:"column:first_name" json:"firstName"`
	LastName     string    `gorm:"column:last_name" json:"lastName"`
	Avatar       string    `gorm:"column:avatar" json:"avatar"`
	PlatformRole string    `gorm:"column:platform_role;not null;default:user" json:"platformRole"`
	Password     string    `gorm:"column:password" json:"-"` // bcrypt hash, backoffice accounts only
	IsEnabled    int       `gorm:"column:is_enabled;not null;default:1" json:"isEnabled"`
	CreateTime   time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime   time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (u *User) TableName() string {
	return "t_user"
}

// Role returns the stored platform role as the contract enum. Unknown
// stored values keep their raw string and rank below every known role.
func (u *User) Role() contract.PlatformRole {
	return contract.PlatformRole(u.PlatformRole)
}

// UserInfo is the profile projection returned to the webapp.
type UserInfo struct {
	UserId       string `json:"userId"`
	TelegramId   int64  `json:"telegramId"`
	Username     string `json:"username"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Avatar       string `json:"avatar"`
	PlatformRole string `json:"platformRole"`
}

// UpdateUserReq request for updating own profile
type UpdateUserReq struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
}

// SetRoleReq request for changing a user's platform role
type SetRoleReq struct {
	Role string `json:"role"`
}

// SetEnabledReq request for enabling or disabling an account
type SetEnabledReq struct {
	Enabled bool `json:"enabled"`
}
