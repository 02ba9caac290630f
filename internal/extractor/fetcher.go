// Package extractor handles scraping raw product data from the catalog site.
package extractor

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnexpectedStatusCode indicates an HTTP response with a non-200 status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher retrieves the raw HTML of a catalog page. Implementations report
// any transport-level problem as an error; the pagination driver never
// distinguishes failure subtypes.
type Fetcher interface {
	Fetch(url string) (string, error)
}

// HTTPFetcher fetches pages over HTTP with a bounded timeout.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher with a 30 second timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return NewHTTPFetcherWithTimeout(30 * time.Second)
}

// NewHTTPFetcherWithTimeout creates a fetcher with a custom timeout.
func NewHTTPFetcherWithTimeout(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch returns the body of the given URL as a string.
func (f *HTTPFetcher) Fetch(url string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent to avoid being blocked
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}
