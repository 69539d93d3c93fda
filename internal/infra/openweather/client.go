package openweather

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
	return NewClientWithURL(apiKey, "https://api.openweathermap.org")
}

func NewClientWithURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type currentWeather struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
}

// CurrentWeather returns the conditions in city, in metric units.
func (c *Client) CurrentWeather(ctx context.Context, city string) (*domain.Weather, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	var result currentWeather
	if err := infra.GetJSON(ctx, c.httpClient, c.baseURL+"/data/2.5/weather?"+q.Encode(), &result); err != nil {
		return nil, fmt.Errorf("openweather: %w", err)
	}

	if len(result.Weather) == 0 {
		return nil, fmt.Errorf("openweather: no conditions for %s: %w", city, infra.ErrEmptyPayload)
	}
	if result.Main == nil || result.Main.Temp == nil {
		return nil, fmt.Errorf("openweather: no temperature for %s: %w", city, infra.ErrEmptyPayload)
	}

	return &domain.Weather{
		City:        result.Name,
		Description: result.Weather[0].Description,
		Temperature: *result.Main.Temp,
	}, nil
}
