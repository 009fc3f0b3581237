package source

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	taxonerrors "github.com/alexisbeaulieu97/taxon/pkg/errors"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultHTTPRetries = 2
)

// HTTPSource downloads a document over HTTP(S).
type HTTPSource struct {
	URL    string
	client *resty.Client
}

// NewHTTPSource creates an HTTP source. Zero timeout or negative retries
// fall back to the defaults.
func NewHTTPSource(url string, timeout time.Duration, retries int) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	if retries < 0 {
		retries = defaultHTTPRetries
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(250*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "application/yaml, application/x-yaml, application/json;q=0.9, text/plain;q=0.5").
		SetHeader("User-Agent", "taxon")

	return &HTTPSource{URL: url, client: client}
}

// Load fetches the document. Any non-2xx response is a SourceError.
func (s *HTTPSource) Load(ctx context.Context) ([]byte, string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(s.URL)
	if err != nil {
		return nil, s.URL, taxonerrors.NewSourceError(s.URL, err)
	}

	if resp.IsError() || resp.StatusCode() >= 300 {
		return nil, s.URL, taxonerrors.NewSourceError(s.URL, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status()))
	}

	return resp.Bytes(), s.URL, nil
}

// Describe returns the URL.
func (s *HTTPSource) Describe() string {
	return s.URL
}
