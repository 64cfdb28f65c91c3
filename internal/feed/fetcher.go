package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// FetchError reports a failed feed fetch or parse. It carries the offending
// feed URL so callers can surface it alongside the underlying reason.
type FetchError struct {
	URL     string
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("feed %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves and parses podcast feeds over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher with the given user agent and request timeout.
func NewFetcher(userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// FetchRaw retrieves the raw feed document at url.
func (f *Fetcher) FetchRaw(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Message: "invalid feed URL", Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Message: "feed request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: url, Message: fmt.Sprintf("feed returned HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: url, Message: "failed to read feed body", Err: err}
	}

	return string(body), nil
}

// Parse parses a raw feed document into the internal feed model.
func (f *Fetcher) Parse(url, raw string) (*Feed, error) {
	parsed, err := gofeed.NewParser().ParseString(raw)
	if err != nil {
		return nil, &FetchError{URL: url, Message: "failed to parse feed", Err: err}
	}
	return FromGofeed(parsed), nil
}

// Fetch retrieves and parses the feed at url in one step.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Feed, error) {
	raw, err := f.FetchRaw(ctx, url)
	if err != nil {
		return nil, err
	}
	return f.Parse(url, raw)
}
