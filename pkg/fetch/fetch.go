package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// StatusError is returned when the server answers with a non-success status
type StatusError struct {
	Code int
	Text string // reason phrase as sent by the server
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, e.Text)
}

// Client downloads a text resource and splits it into lines
type Client struct {
	HTTPClient *http.Client
}

// New creates a client. A zero timeout leaves the request unbounded.
func New(timeout time.Duration) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Fetch issues a single GET against url and returns the body split on '\n'
func (c *Client) Fetch(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Text: reasonPhrase(resp)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return SplitLines(string(body)), nil
}

// SplitLines splits a document on '\n' without dropping empty lines
func SplitLines(body string) []string {
	return strings.Split(body, "\n")
}

// reasonPhrase strips the numeric code from resp.Status ("404 Not Found")
func reasonPhrase(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
