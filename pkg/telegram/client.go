package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultApiBase = "https://api.telegram.org"

// BotInfo is the subset of the getMe response the server cares about.
type BotInfo struct {
	Id       int64  `json:"id"`
	IsBot    bool   `json:"is_bot"`
	Username string `json:"username"`
}

type apiResponse[T any] struct {
	Ok          bool   `json:"ok"`
	Result      T      `json:"result"`
	Description string `json:"description"`
}

// Client is a thin Telegram Bot API client. The API server only uses it
// to validate the configured bot token at startup and to resolve the
// bot username for miniapp deep links; command handling lives in the
// bot process.
type Client struct {
	http  *resty.Client
	token string
}

type ClientOption func(*Client)

// WithBaseURL overrides the Bot API endpoint, used by tests.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.http.SetBaseURL(base)
	}
}

func NewClient(token string, opts ...ClientOption) *Client {
	client := &Client{
		http: resty.New().
			SetBaseURL(defaultApiBase).
			SetTimeout(10 * time.Second).
			SetRetryCount(2),
		token: token,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// GetMe calls the Bot API getMe method.
func (c *Client) GetMe(ctx context.Context) (*BotInfo, error) {
	var rep apiResponse[BotInfo]

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&rep).
		Get(fmt.Sprintf("/bot%s/getMe", c.token))
	if err != nil {
		return nil, fmt.Errorf("telegram getMe: %w", err)
	}
	if resp.IsError() || !rep.Ok {
		return nil, fmt.Errorf("telegram getMe: status %d: %s", resp.StatusCode(), rep.Description)
	}

	return &rep.Result, nil
}
