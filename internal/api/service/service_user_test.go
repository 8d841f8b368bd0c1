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
	"testing"

	"github.com/expertly/expertly/internal/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture() (*UserService, *fakeUserRepo) {
	users := &fakeUserRepo{users: map[string]*model.User{
		"u-1": {UserId: "u-1", Username: "alice", PlatformRole: "user", IsEnabled: 1},
	}}
	return NewUserService(users), users
}

func TestSetPlatformRoleRejectsUnknownRole(t *testing.T) {
	us, users := newUserFixture()

	err := us.SetPlatformRole(context.Background(), "u-1", "superadmin")
	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.Equal(t, "user", users.users["u-1"].PlatformRole)
}

func TestSetPlatformRolePromotes(t *testing.T) {
	us, users := newUserFixture()

	require.NoError(t, us.SetPlatformRole(context.Background(), "u-1", "moderator"))
	assert.Equal(t, "moderator", users.users["u-1"].PlatformRole)
}

func TestSetPlatformRoleUnknownUser(t *testing.T) {
	us, _ := newUserFixture()

	err := us.SetPlatformRole(context.Background(), "u-missing", "admin")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileAppliesPartialChanges(t *testing.T) {
	us, users := newUserFixture()

	first := "Alice"
	info, err := us.UpdateProfile(context.Background(), "u-1", &model.UpdateUserReq{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Alice", info.FirstName)
	assert.Equal(t, "alice", users.users["u-1"].Username)
}

func TestSetEnabledTogglesAccount(t *testing.T) {
	us, users := newUserFixture()

	require.NoError(t, us.SetEnabled(context.Background(), "u-1", false))
	assert.Equal(t, 0, users.users["u-1"].IsEnabled)

	require.NoError(t, us.SetEnabled(context.Background(), "u-1", true))
	assert.Equal(t, 1, users.users["u-1"].IsEnabled)
}

func TestGetUserInfoUnknownUser(t *testing.T) {
	us, _ := newUserFixture()

	_, err := us.GetUserInfo(context.Background(), "u-missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
