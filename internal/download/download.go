// Package download is the installer's single HTTP client. The manifest,
// release list, assets and signatures are all fetched through Downloader.Get.
package download

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/themekit/themeinstall/internal/config"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = config.DefaultTimeout
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "themeinstall/1.0"
	// maxRedirects caps redirect chains
	maxRedirects = 10
	// maxPresize caps the buffer reserved from a Content-Length header
	maxPresize = 64 << 20
)

// FetchError reports a failed GET: a transport error or a non-200 status.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Config configures a Downloader.
type Config struct {
	// Timeout bounds each request; zero uses DefaultTimeout.
	Timeout time.Duration
	// Retries is the number of extra attempts after a failure. Zero means a
	// failed request is reported immediately.
	Retries int
	// UserAgent defaults to DefaultUserAgent.
	UserAgent string
}

// Downloader performs HTTP GET requests into memory.
type Downloader struct {
	client    *http.Client
	userAgent string
	retries   int
	logger    config.Logger
}

// NewDownloader creates a new downloader
func NewDownloader(cfg Config) *Downloader {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Downloader{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		retries:   cfg.Retries,
		logger:    config.NopLogger(),
	}
}

// WithLogger sets the logger used for request tracing.
func (d *Downloader) WithLogger(logger config.Logger) *Downloader {
	if logger != nil {
		d.logger = logger
	}
	return d
}

// Get fetches url and returns the full response body.
// Every failure is returned as a *FetchError, except context errors which
// are returned as-is.
func (d *Downloader) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= d.retries; attempt++ {
		// Check context before each attempt
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			d.logger.Debug("retrying request", "url", url, "attempt", attempt, "backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		data, err := d.getOnce(ctx, url)
		if err == nil {
			d.logger.Debug("request complete", "url", url, "bytes", len(data))
			return data, nil
		}

		lastErr = err
		d.logger.Debug("request failed", "url", url, "attempt", attempt, "error", err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// getOnce performs a single request
func (d *Downloader) getOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	var buf bytes.Buffer
	if resp.ContentLength > 0 && resp.ContentLength <= maxPresize {
		buf.Grow(int(resp.ContentLength))
	}
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}

	return buf.Bytes(), nil
}
