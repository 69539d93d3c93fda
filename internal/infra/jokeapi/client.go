package jokeapi

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
	return NewClientWithURL("https://official-joke-api.appspot.com")
}

func NewClientWithURL(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type joke struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

func (c *Client) RandomJoke(ctx context.Context) (*domain.Joke, error) {
	var result joke
	if err := infra.GetJSON(ctx, c.httpClient, c.baseURL+"/random_joke", &result); err != nil {
		return nil, fmt.Errorf("jokeapi: %w", err)
	}

	if result.Setup == "" || result.Punchline == "" {
		return nil, fmt.Errorf("jokeapi: %w", infra.ErrEmptyPayload)
	}

	return &domain.Joke{Setup: result.Setup, Punchline: result.Punchline}, nil
}
