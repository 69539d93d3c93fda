package newsapi

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
	country    string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, country string) *Client {
	return NewClientWithURL(apiKey, country, "https://newsapi.org")
}

func NewClientWithURL(apiKey, country, baseURL string) *Client {
	if country == "" {
		country = "us"
	}
	return &Client{
		apiKey:     apiKey,
		country:    country,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type headlines struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title  string `json:"title"`
		URL    string `json:"url"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (c *Client) TopHeadline(ctx context.Context) (*domain.Headline, error) {
	q := url.Values{}
	q.Set("country", c.country)
	q.Set("apiKey", c.apiKey)

	var result headlines
	if err := infra.GetJSON(ctx, c.httpClient, c.baseURL+"/v2/top-headlines?"+q.Encode(), &result); err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}

	if result.Status == "error" {
		return nil, fmt.Errorf("newsapi: %s", result.Message)
	}

	if len(result.Articles) == 0 {
		return nil, fmt.Errorf("newsapi: no headlines for %s: %w", c.country, infra.ErrEmptyPayload)
	}

	a := result.Articles[0]
	return &domain.Headline{Title: a.Title, Source: a.Source.Name, URL: a.URL}, nil
}
