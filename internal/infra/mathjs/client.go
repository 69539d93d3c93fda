package mathjs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voice-assistant/internal/infra"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return NewClientWithURL("https://api.mathjs.org")
}

func NewClientWithURL(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Evaluate returns the plain-text result of expression. Invalid expressions
// come back as 400 with the parser message in the body.
func (c *Client) Evaluate(ctx context.Context, expression string) (string, error) {
	result, err := infra.GetText(ctx, c.httpClient, c.baseURL+"/v4/?expr="+url.QueryEscape(expression))
	if err != nil {
		return "", fmt.Errorf("mathjs: %w", err)
	}

	result = strings.TrimSpace(result)
	if result == "" {
		return "", fmt.Errorf("mathjs: %w", infra.ErrEmptyPayload)
	}

	return result, nil
}
