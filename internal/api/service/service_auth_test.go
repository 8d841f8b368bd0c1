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
	httpx "github.com/expertly/expertly/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*model.User{
		"u-ops": {UserId: "u-ops", Username: "ops", Password: string(hash), PlatformRole: "admin", IsEnabled: 1},
		"u-off": {UserId: "u-off", Username: "off", Password: string(hash), PlatformRole: "user", IsEnabled: 0},
	}}

	auth := httpx.Auth{SecretKey: "test-secret", AccessExpire: 5, RefreshExpire: 60}
	return NewAuthService(users, auth, "123:bot-token", 0), users
}

func TestPasswordLoginIssuesTokenPair(t *testing.T) {
	al, _ := newAuthFixture(t)

	resp, err := al.PasswordLogin(context.Background(), &model.PasswordLoginReq{Username: "ops", Password: "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "u-ops", resp.User.UserId)
	assert.Equal(t, "admin", resp.User.PlatformRole)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.ExpireAt, int64(0))
}

func TestPasswordLoginWrongPassword(t *testing.T) {
	al, _ := newAuthFixture(t)

	_, err := al.PasswordLogin(context.Background(), &model.PasswordLoginReq{Username: "ops", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordLoginUnknownUser(t *testing.T) {
	al, _ := newAuthFixture(t)

	_, err := al.PasswordLogin(context.Background(), &model.PasswordLoginReq{Username: "ghost", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordLoginDisabledUser(t *testing.T) {
	al, _ := newAuthFixture(t)

	_, err := al.PasswordLogin(context.Background(), &model.PasswordLoginReq{Username: "off", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrUserDisabled)
}

func TestRefreshReissuesWithCurrentRole(t *testing.T) {
	al, users := newAuthFixture(t)

	resp, err := al.PasswordLogin(context.Background(), &model.PasswordLoginReq{Username: "ops", Password: "s3cret"})
	require.NoError(t, err)

	// a demotion between login and refresh shows up in the new pair
	users.users["u-ops"].PlatformRole = "moderator"

	refreshed, err := al.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "moderator", refreshed.User.PlatformRole)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	al, _ := newAuthFixture(t)

	_, err := al.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
