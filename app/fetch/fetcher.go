package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// FetchError is returned once every attempt for a URL has failed. Err
// holds the last cause (transport error or HTTP status).
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher performs HTTP GETs with bounded retry and linear backoff. It
// keeps no cache; every call hits the network.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	retries     int
	backoffUnit time.Duration
}

func NewFetcher(client *http.Client, userAgent string, retries int, backoffUnit time.Duration) *Fetcher {
	if retries < 1 {
		retries = 1
	}
	return &Fetcher{
		client:      client,
		userAgent:   userAgent,
		retries:     retries,
		backoffUnit: backoffUnit,
	}
}

// Run fetches url, retrying on transport errors and non-2xx responses.
// Backoff before attempt n (1-based, n > 1) is (n-1) x backoffUnit; no
// sleep follows the final failed attempt.
func (f *Fetcher) Run(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= f.retries; attempt++ {
		if attempt > 1 {
			wait := time.Duration(attempt-1) * f.backoffUnit
			slog.Debug("Retrying fetch", "url", url, "attempt", attempt, "backoff", wait)
			select {
			case <-ctx.Done():
				return nil, &FetchError{URL: url, Attempts: attempt - 1, Err: ctx.Err()}
			case <-time.After(wait):
			}
		}

		data, err := f.fetchOnce(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}

	return nil, &FetchError{URL: url, Attempts: f.retries, Err: lastErr}
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
