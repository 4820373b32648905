package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"

	log "github.com/go-pkgz/lgr"
)

// Fetcher retrieves the whole feed document for given url
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc is an adapter to use ordinary functions as Fetcher
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch calls f(ctx, url)
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// HTTPFetcher gets feeds with http GET. Any status but 200 is an error.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
	MaxSize   int64 // max body size, larger body is an error, unlimited if 0
}

// Fetch makes GET request to url and reads the full body
func (h *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	log.Printf("[DEBUG] get %s", url)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() // nolint
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if h.MaxSize > 0 {
		body = io.LimitReader(resp.Body, h.MaxSize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if h.MaxSize > 0 && int64(len(data)) > h.MaxSize {
		return nil, fmt.Errorf("body exceeds %d bytes", h.MaxSize)
	}
	return data, nil
}
