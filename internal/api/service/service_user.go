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

	"github.com/expertly/expertly/internal/api/model"
	"github.com/expertly/expertly/internal/api/repo"
	"github.com/expertly/expertly/pkg/contract"
	"github.com/expertly/expertly/pkg/http"
	"github.com/expertly/expertly/pkg/log"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New(http.UserNotExist.Msg)
	ErrUnknownRole  = errors.New("unknown role")
)

type UserService struct {
	userRepo repo.IUserRepository
}

func NewUserService(userRepo repo.IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (us *UserService) GetUserInfo(ctx context.Context, userId string) (*model.UserInfo, error) {
	info, err := us.userRepo.FetchUserInfo(ctx, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Errorw("failed to fetch user info", "userId", userId, "error", err)
		return nil, err
	}
	return info, nil
}

// UpdateProfile applies the caller's own profile changes. Role and
// enablement are not reachable from here.
func (us *UserService) UpdateProfile(ctx context.Context, userId string, req *model.UpdateUserReq) (*model.UserInfo, error) {
	user, err := us.userRepo.GetByUserId(userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := us.userRepo.UpdateUser(userId, user); err != nil {
		log.Errorw("failed to update user profile", "userId", userId, "error", err)
		return nil, err
	}
	if err := us.userRepo.InvalidateUserInfo(ctx, userId); err != nil {
		log.Warnw("failed to invalidate cached user info", "userId", userId, "error", err)
	}

	return us.userRepo.FetchUserInfo(ctx, userId)
}

// SetPlatformRole changes a user's platform role. Only known roles are
// accepted; an unknown role would silently rank below everything and
// lock the user out. The session cache is invalidated so the change is
// visible on the next token refresh.
func (us *UserService) SetPlatformRole(ctx context.Context, userId string, role string) error {
	if !contract.PlatformRole(role).Known() {
		return ErrUnknownRole
	}

	if _, err := us.userRepo.GetByUserId(userId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := us.userRepo.SetPlatformRole(userId, role); err != nil {
		log.Errorw("failed to set platform role", "userId", userId, "role", role, "error", err)
		return err
	}
	if err := us.userRepo.InvalidateUserInfo(ctx, userId); err != nil {
		log.Warnw("failed to invalidate cached user info", "userId", userId, "error", err)
	}

	return nil
}

// SetEnabled toggles an account. Disabling also revokes the active
// session so the change is immediate, not next-login.
func (us *UserService) SetEnabled(ctx context.Context, userId string, enabled bool) error {
	if _, err := us.userRepo.GetByUserId(userId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	v := 0
	if enabled {
		v = 1
	}
	if err := us.userRepo.SetEnabled(userId, v); err != nil {
		log.Errorw("failed to set user enabled flag", "userId", userId, "enabled", enabled, "error", err)
		return err
	}

	if err := us.userRepo.InvalidateUserInfo(ctx, userId); err != nil {
		log.Warnw("failed to invalidate cached user info", "userId", userId, "error", err)
	}
	if !enabled {
		if err := us.userRepo.DelToken(ctx, userId); err != nil {
			log.Warnw("failed to revoke session of disabled user", "userId", userId, "error", err)
		}
	}
	return nil
}

func (us *UserService) GetUserList(pageNum, pageSize int) ([]model.User, int64, error) {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return us.userRepo.GetUserList((pageNum-1)*pageSize, pageSize)
}
