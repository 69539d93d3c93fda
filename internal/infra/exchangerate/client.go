package exchangerate

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
	return NewClientWithURL(apiKey, "https://v6.exchangerate-api.com")
}

func NewClientWithURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// latest covers both the v6 payload (conversion_rates) and the open access
// payload (rates).
type latest struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	Rates           map[string]float64 `json:"rates"`
}

func (c *Client) Rates(ctx context.Context, base string) (*domain.ExchangeRates, error) {
	endpoint := fmt.Sprintf("%s/v6/%s/latest/%s", c.baseURL, url.PathEscape(c.apiKey), url.PathEscape(base))

	var result latest
	if err := infra.GetJSON(ctx, c.httpClient, endpoint, &result); err != nil {
		return nil, fmt.Errorf("exchangerate: %w", err)
	}

	if result.Result == "error" {
		return nil, fmt.Errorf("exchangerate: %s", result.ErrorType)
	}

	rates := result.ConversionRates
	if len(rates) == 0 {
		rates = result.Rates
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("exchangerate: no rates for %s: %w", base, infra.ErrEmptyPayload)
	}

	return &domain.ExchangeRates{Base: base, Rates: rates}, nil
}
