package sync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// Fetcher grabs raw feed bytes for a URL. The network is a collaborator the
// orchestrator does not own, so it sits behind this surface.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches feeds over HTTP with a bounded number of retries.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))

	var body []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return retry.RetryableError(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("error reading feed body: %w", err))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error getting feed url: %w", err)
	}

	return body, nil
}
