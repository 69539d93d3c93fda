package zenquotes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"voice-assistant/internal/domain"
	"voice-assistant/internal/infra"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	return NewClientWithURL("https://zenquotes.io")
}

func NewClientWithURL(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type quote struct {
	Q string `json:"q"`
	A string `json:"a"`
	H string `json:"h"`
}

func (c *Client) RandomQuote(ctx context.Context) (*domain.Quote, error) {
	var result []quote
	if err := infra.GetJSON(ctx, c.httpClient, c.baseURL+"/api/random", &result); err != nil {
		return nil, fmt.Errorf("zenquotes: %w", err)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("zenquotes: %w", infra.ErrEmptyPayload)
	}

	return &domain.Quote{Text: result[0].Q, Author: result[0].A}, nil
}
