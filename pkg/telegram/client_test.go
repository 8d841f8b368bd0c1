package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:token/getMe", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":42,"is_bot":true,"username":"expertly_bot"}}`))
	}))
	defer server.Close()

	client := NewClient("123:token", WithBaseURL(server.URL))

	info, err := client.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), info.Id)
	assert.True(t, info.IsBot)
	assert.Equal(t, "expertly_bot", info.Username)
}

func TestGetMeUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Unauthorized"}`))
	}))
	defer server.Close()

	client := NewClient("bad-token", WithBaseURL(server.URL))

	_, err := client.GetMe(context.Background())
	assert.Error(t, err)
}
