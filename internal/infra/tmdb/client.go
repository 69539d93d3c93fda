package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"voice-assistant/internal/domain"
	"voice-assistant/internal/infra"
)

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return NewClientWithURL(apiKey, "https://api.themoviedb.org")
}

func NewClientWithURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type popular struct {
	Page    int `json:"page"`
	Results []struct {
		Title       string `json:"title"`
		ReleaseDate string `json:"release_date"`
	} `json:"results"`
}

// PopularMovie returns the top entry of the first page of popular movies.
func (c *Client) PopularMovie(ctx context.Context) (*domain.Movie, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", "en-US")
	q.Set("page", "1")

	var result popular
	if err := infra.GetJSON(ctx, c.httpClient, c.baseURL+"/3/movie/popular?"+q.Encode(), &result); err != nil {
		return nil, fmt.Errorf("tmdb: %w", err)
	}

	if len(result.Results) == 0 {
		return nil, fmt.Errorf("tmdb: %w", infra.ErrEmptyPayload)
	}

	m := result.Results[0]
	return &domain.Movie{Title: m.Title, ReleaseDate: m.ReleaseDate}, nil
}
