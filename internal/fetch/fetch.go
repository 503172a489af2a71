package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/assessmentinc/submission-relay/pkg/httputil"
)

// DefaultTimeout bounds one archive download.
const DefaultTimeout = 30 * time.Second

// Client downloads submission archives over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a fetch client instance.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the archive at url. Non-2xx responses and empty
// bodies are failures, an empty download can never be a valid archive.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, httputil.HTTPStatusError{StatusCode: response.StatusCode}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}
	if len(body) == 0 {
		return nil, errors.New("empty response body")
	}

	return body, nil
}
