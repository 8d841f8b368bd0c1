package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

// signInitData builds an initData query string signed the way Telegram
// signs WebApp payloads.
func signInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()

	pairs := make([]string, 0, len(fields))
	for key, value := range fields {
		pairs = append(pairs, key+"="+value)
	}
	sort.Strings(pairs)

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	values := url.Values{}
	for key, value := range fields {
		values.Set(key, value)
	}
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func validFields(authDate time.Time) map[string]string {
	return map[string]string{
		"auth_date": strconv.FormatInt(authDate.Unix(), 10),
		"query_id":  "AAHdF6IQAAAAAN0XohDhrOrc",
		"user":      `{"id":279058397,"first_name":"Vladislav","last_name":"Kibenko","username":"vdkfrost","language_code":"en"}`,
	}
}

func TestVerifyInitData(t *testing.T) {
	initData := signInitData(t, testBotToken, validFields(time.Now()))

	parsed, err := VerifyInitData(initData, testBotToken, time.Hour)
	require.NoError(t, err)
	require.NotNil(t, parsed.User)
	assert.Equal(t, int64(279058397), parsed.User.Id)
	assert.Equal(t, "vdkfrost", parsed.User.Username)
	assert.Equal(t, "AAHdF6IQAAAAAN0XohDhrOrc", parsed.QueryId)
}

func TestVerifyInitDataWrongToken(t *testing.T) {
	initData := signInitData(t, testBotToken, validFields(time.Now()))

	_, err := VerifyInitData(initData, "999999:other-token", time.Hour)
	assert.ErrorIs(t, err, ErrHashMismatch)
}

func TestVerifyInitDataTampered(t *testing.T) {
	fields := validFields(time.Now())
	initData := signInitData(t, testBotToken, fields)

	tampered := strings.Replace(initData, "279058397", "279058398", 1)
	_, err := VerifyInitData(tampered, testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrHashMismatch)
}

func TestVerifyInitDataStale(t *testing.T) {
	initData := signInitData(t, testBotToken, validFields(time.Now().Add(-2*time.Hour)))

	_, err := VerifyInitData(initData, testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrInitDataExpired)

	// freshness check can be disabled
	_, err = VerifyInitData(initData, testBotToken, 0)
	assert.NoError(t, err)
}

func TestVerifyInitDataMissingHash(t *testing.T) {
	_, err := VerifyInitData("auth_date=123&user=%7B%7D", testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrMalformedInitData)
}

func TestVerifyInitDataMissingUser(t *testing.T) {
	fields := validFields(time.Now())
	delete(fields, "user")
	initData := signInitData(t, testBotToken, fields)

	_, err := VerifyInitData(initData, testBotToken, time.Hour)
	assert.ErrorIs(t, err, ErrMalformedInitData)
}
