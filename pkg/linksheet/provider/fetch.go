package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"
)

// DefaultMaxBodyBytes caps how much of a page is read for title scraping.
const DefaultMaxBodyBytes = 10 << 20

// HTTPFetcher fetches page bodies over HTTP.
type HTTPFetcher struct {
	Client       *http.Client
	UserAgent    string
	MaxBodyBytes int64
}

// Fetch GETs url and returns its body as UTF-8 text, decoded from the
// charset the response declares. Responses with a status of 400 or above
// are errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	limit := f.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("request failed for %s returned code %d", url, resp.StatusCode)
	}
	body, err := charset.NewReader(io.LimitReader(resp.Body, limit), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", url, err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
