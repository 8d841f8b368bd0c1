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

package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

var (
	ErrMalformedInitData = errors.New("malformed init data")
	ErrHashMismatch      = errors.New("init data hash mismatch")
	ErrInitDataExpired   = errors.New("init data is stale")
)

// WebAppUser is the user object embedded in Telegram WebApp init data.
type WebAppUser struct {
	Id           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
	PhotoUrl     string `json:"photo_url"`
}

// InitData is the verified payload of a Telegram WebApp login.
type InitData struct {
	User     *WebAppUser
	AuthDate time.Time
	QueryId  string
}

// VerifyInitData checks the HMAC chain of a Telegram WebApp initData
// string against the bot token and enforces an auth_date freshness
// window. maxAge <= 0 disables the freshness check.
//
// The signature scheme is fixed by Telegram: the data-check-string is
// every key=value pair except hash, sorted by key and joined by
// newlines; the secret key is HMAC-SHA256 of the bot token keyed with
// the constant "WebAppData".
func VerifyInitData(initData, botToken string, maxAge time.Duration) (*InitData, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInitData, err)
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, fmt.Errorf("%w: missing hash", ErrMalformedInitData)
	}
	values.Del("hash")

	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(dataCheckString))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(gotHash)) {
		return nil, ErrHashMismatch
	}

	authDateRaw := values.Get("auth_date")
	if authDateRaw == "" {
		return nil, fmt.Errorf("%w: missing auth_date", ErrMalformedInitData)
	}
	authDateUnix, err := strconv.ParseInt(authDateRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad auth_date", ErrMalformedInitData)
	}
	authDate := time.Unix(authDateUnix, 0)

	if maxAge > 0 && time.Since(authDate) > maxAge {
		return nil, ErrInitDataExpired
	}

	parsed := &InitData{
		AuthDate: authDate,
		QueryId:  values.Get("query_id"),
	}

	if userRaw := values.Get("user"); userRaw != "" {
		var user WebAppUser
		if err := sonic.UnmarshalString(userRaw, &user); err != nil {
			return nil, fmt.Errorf("%w: bad user payload", ErrMalformedInitData)
		}
		parsed.User = &user
	}
	if parsed.User == nil || parsed.User.Id == 0 {
		return nil, fmt.Errorf("%w: missing user", ErrMalformedInitData)
	}

	return parsed, nil
}
