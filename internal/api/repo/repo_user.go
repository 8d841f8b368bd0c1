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

package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/expertly/expertly/internal/api/consts"
	"github.com/expertly/expertly/internal/api/model"
	"github.com/expertly/expertly/pkg/database"
	"github.com/expertly/expertly/pkg/log"
	"github.com/redis/go-redis/v9"
)

type IUserRepository interface {
	CreateUser(user *model.User) error
	UpdateUser(userId string, user *model.User) error
	SetPlatformRole(userId, role string) error
	SetEnabled(userId string, enabled int) error
	GetByUserId(userId string) (*model.User, error)
	GetByTelegramId(telegramId int64) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	FetchUserInfo(ctx context.Context, userId string) (*model.UserInfo, error)
	GetUserList(offset, pageSize int) ([]model.User, int64, error)
	SetToken(ctx context.Context, userId, aToken string, expire time.Duration) error
	DelToken(ctx context.Context, userId string) error
	InvalidateUserInfo(ctx context.Context, userId string) error
}

type UserRepo struct {
	db        database.IDatabase
	cache     *redis.Client
	userModel *model.User
}

func NewUserRepo(db database.IDatabase, cache *redis.Client) IUserRepository {
	return &UserRepo{
		db:        db,
		cache:     cache,
		userModel: &model.User{},
	}
}

func (ur *UserRepo) CreateUser(user *model.User) error {
	return ur.db.Database().Create(user).Error
}

// UpdateUser updates profile fields (user_id, telegram_id, platform_role,
// password and create_time cannot be updated through this path).
func (ur *UserRepo) UpdateUser(userId string, user *model.User) error {
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Omit("user_id", "telegram_id", "platform_role", "password", "create_time").
		Updates(user).Error
}

func (ur *UserRepo) SetPlatformRole(userId, role string) error {
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Update("platform_role", role).Error
}

func (ur *UserRepo) SetEnabled(userId string, enabled int) error {
	return ur.db.Database().Table(ur.userModel.TableName()).
		Where("user_id = ?", userId).
		Update("is_enabled", enabled).Error
}

func (ur *UserRepo) GetByUserId(userId string) (*model.User, error) {
	var user model.User
	err := ur.db.Database().Where("user_id = ?", userId).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *UserRepo) GetByTelegramId(telegramId int64) (*model.User, error) {
	var user model.User
	err := ur.db.Database().Where("telegram_id = ?", telegramId).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *UserRepo) GetByUsername(username string) (*model.User, error) {
	var user model.User
	err := ur.db.Database().Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchUserInfo reads the profile projection, redis first, database on
// miss.
func (ur *UserRepo) FetchUserInfo(ctx context.Context, userId string) (*model.UserInfo, error) {
	key := consts.UserInfoKey + userId
	info := &model.UserInfo{UserId: userId}

	if ur.cache != nil {
		infoStr, err := ur.cache.Get(ctx, key).Result()
		if err == nil && infoStr != "" {
			if err := sonic.UnmarshalString(infoStr, info); err != nil {
				log.Errorw("failed to unmarshal user info from redis", "userId", userId, "error", err)
			} else {
				return info, nil
			}
		}
	}

	err := ur.db.Database().Table(ur.userModel.TableName()).
		Select("user_id, telegram_id, username, first_name, last_name, avatar, platform_role").
		Where("user_id = ?", userId).First(info).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	if ur.cache != nil {
		infoJson, err := sonic.MarshalString(info)
		if err != nil {
			log.Errorw("failed to marshal user info", "userId", userId, "error", err)
		} else if err := ur.cache.Set(ctx, key, infoJson, time.Hour).Err(); err != nil {
			log.Errorw("failed to cache user info", "userId", userId, "error", err)
		}
	}

	return info, nil
}

func (ur *UserRepo) GetUserList(offset, pageSize int) ([]model.User, int64, error) {
	var (
		users []model.User
		count int64
	)

	db := ur.db.Database().Table(ur.userModel.TableName())
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("create_time DESC").Offset(offset).Limit(pageSize).Find(&users).Error
	return users, count, err
}

func (ur *UserRepo) SetToken(ctx context.Context, userId, aToken string, expire time.Duration) error {
	return ur.cache.Set(ctx, consts.UserTokenKey+userId, aToken, expire).Err()
}

func (ur *UserRepo) DelToken(ctx context.Context, userId string) error {
	return ur.cache.Del(ctx, consts.UserTokenKey+userId).Err()
}

func (ur *UserRepo) InvalidateUserInfo(ctx context.Context, userId string) error {
	if ur.cache == nil {
		return nil
	}
	return ur.cache.Del(ctx, consts.UserInfoKey+userId).Err()
}
