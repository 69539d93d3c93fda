package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrEmptyPayload is returned when a response decodes but lacks the element
// the caller needs, such as the first item of a result list.
var ErrEmptyPayload = errors.New("empty payload")

const userAgent = "voice-assistant/1.0"

// GetJSON performs a single GET and decodes a JSON body into v. Any non-2xx
// status is an error; there is no retry.
func GetJSON(ctx context.Context, client *http.Client, url string, v any) error {
	body, err := get(ctx, client, url, "application/json")
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// GetText performs a single GET and returns the body as a string.
func GetText(ctx context.Context, client *http.Client, url string) (string, error) {
	body, err := get(ctx, client, url, "text/plain")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func get(ctx context.Context, client *http.Client, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Code, e.Body)
}

// Retryable reports whether a retry could succeed.
func (e *StatusError) Retryable() bool {
	return IsRetryableHTTPStatus(e.Code)
}
