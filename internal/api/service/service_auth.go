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

package service

import (
	"context"
	"errors"
	"time"

	"github.com/expertly/expertly/internal/api/model"
	"github.com/expertly/expertly/internal/api/repo"
	"github.com/expertly/expertly/pkg/contract"
	"github.com/expertly/expertly/pkg/http"
	"github.com/expertly/expertly/pkg/http/jwt"
	"github.com/expertly/expertly/pkg/id"
	"github.com/expertly/expertly/pkg/log"
	"github.com/expertly/expertly/pkg/telegram"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidInitData    = errors.New(http.InvalidInitData.Msg)
	ErrInitDataExpired    = errors.New(http.InitDataExpired.Msg)
	ErrUserDisabled       = errors.New("user account is disabled")
	ErrInvalidCredentials = errors.New(http.IncorrectUserOrPassword.Msg)
	ErrInvalidToken       = errors.New(http.InvalidToken.Msg)
)

type AuthService struct {
	userRepo repo.IUserRepository
	auth     http.Auth

	botToken       string
	initDataMaxAge time.Duration
}

func NewAuthService(userRepo repo.IUserRepository, auth http.Auth, botToken string, initDataMaxAge time.Duration) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		auth:           auth,
		botToken:       botToken,
		initDataMaxAge: initDataMaxAge,
	}
}

// TelegramLogin verifies the miniapp init data, upserts the platform
// account bound to the Telegram user and issues a token pair. First
// login creates the account with the lowest platform role.
func (al *AuthService) TelegramLogin(ctx context.Context, initData string) (*model.LoginResp, error) {
	data, err := telegram.VerifyInitData(initData, al.botToken, al.initDataMaxAge)
	if err != nil {
		log.Warnw("telegram init data rejected", "error", err)
		if errors.Is(err, telegram.ErrInitDataExpired) {
			return nil, ErrInitDataExpired
		}
		return nil, ErrInvalidInitData
	}

	user, err := al.userRepo.GetByTelegramId(data.User.Id)
	switch {
	case err == nil:
		if err := al.refreshProfile(ctx, user, data.User); err != nil {
			log.Warnw("failed to refresh profile from telegram", "userId", user.UserId, "error", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &model.User{
			UserId:       id.GetUUIDWithoutDashes(),
			TelegramId:   data.User.Id,
			Username:     data.User.Username,
			FirstName:    data.User.FirstName,
			LastName:     data.User.LastName,
			Avatar:       data.User.PhotoUrl,
			PlatformRole: string(contract.PlatformRoleUser),
			IsEnabled:    1,
		}
		if err := al.userRepo.CreateUser(user); err != nil {
			log.Errorw("failed to create user on first login", "telegramId", data.User.Id, "error", err)
			return nil, err
		}
	default:
		log.Errorw("failed to look up user by telegram id", "telegramId", data.User.Id, "error", err)
		return nil, err
	}

	if user.IsEnabled == 0 {
		return nil, ErrUserDisabled
	}

	return al.issueTokens(ctx, user)
}

// PasswordLogin authenticates a backoffice account. Accounts created
// through Telegram have no password and cannot log in this way.
func (al *AuthService) PasswordLogin(ctx context.Context, req *model.PasswordLoginReq) (*model.LoginResp, error) {
	user, err := al.userRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Errorw("failed to look up user by username", "username", req.Username, "error", err)
		return nil, err
	}

	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsEnabled == 0 {
		return nil, ErrUserDisabled
	}

	return al.issueTokens(ctx, user)
}

// Refresh exchanges a refresh token for a new token pair. The platform
// role is re-read from storage so a role change takes effect on the
// next refresh at the latest.
func (al *AuthService) Refresh(ctx context.Context, rToken string) (*model.LoginResp, error) {
	userId, err := jwt.ParseRefreshToken(rToken, al.auth.SecretKey)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := al.userRepo.GetByUserId(userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		log.Errorw("failed to look up user on refresh", "userId", userId, "error", err)
		return nil, err
	}
	if user.IsEnabled == 0 {
		return nil, ErrUserDisabled
	}

	return al.issueTokens(ctx, user)
}

// Logout revokes the active session token and drops the cached profile.
func (al *AuthService) Logout(ctx context.Context, userId string) error {
	if err := al.userRepo.DelToken(ctx, userId); err != nil {
		log.Errorw("failed to revoke token", "userId", userId, "error", err)
		return err
	}
	if err := al.userRepo.InvalidateUserInfo(ctx, userId); err != nil {
		log.Warnw("failed to invalidate cached user info", "userId", userId, "error", err)
	}
	return nil
}

func (al *AuthService) issueTokens(ctx context.Context, user *model.User) (*model.LoginResp, error) {
	aToken, rToken, err := jwt.GenToken(user.UserId, user.Role(), []byte(al.auth.SecretKey), al.auth.AccessExpire, al.auth.RefreshExpire)
	if err != nil {
		log.Errorw("failed to generate tokens", "userId", user.UserId, "error", err)
		return nil, err
	}

	expire := al.auth.AccessExpire * time.Minute
	if err := al.userRepo.SetToken(ctx, user.UserId, aToken, expire); err != nil {
		log.Errorw("failed to store session token", "userId", user.UserId, "error", err)
		return nil, err
	}

	return &model.LoginResp{
		User: model.UserInfo{
			UserId:       user.UserId,
			TelegramId:   user.TelegramId,
			Username:     user.Username,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			Avatar:       user.Avatar,
			PlatformRole: user.PlatformRole,
		},
		AccessToken:  aToken,
		RefreshToken: rToken,
		ExpireAt:     time.Now().Add(expire).Unix(),
	}, nil
}

// refreshProfile keeps username and display fields in sync with the
// latest Telegram payload.
func (al *AuthService) refreshProfile(ctx context.Context, user *model.User, tg *telegram.WebAppUser) error {
	if user.Username == tg.Username && user.FirstName == tg.FirstName &&
		user.LastName == tg.LastName && (tg.PhotoUrl == "" || user.Avatar == tg.PhotoUrl) {
		return nil
	}

	user.Username = tg.Username
	user.FirstName = tg.FirstName
	user.LastName = tg.LastName
	if tg.PhotoUrl != "" {
		user.Avatar = tg.PhotoUrl
	}
	if err := al.userRepo.UpdateUser(user.UserId, user); err != nil {
		return err
	}
	return al.userRepo.InvalidateUserInfo(ctx, user.UserId)
}
