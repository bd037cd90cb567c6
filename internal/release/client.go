package release

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/themekit/themeinstall/internal/config"
)

// Getter fetches a URL into memory.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Client retrieves release data.
type Client struct {
	getter Getter
	logger config.Logger
}

// NewClient creates a client fetching through getter.
func NewClient(getter Getter) *Client {
	return &Client{
		getter: getter,
		logger: config.NopLogger(),
	}
}

// WithLogger sets the logger.
func (c *Client) WithLogger(logger config.Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Latest fetches and parses the manifest at url.
// Transport failures are returned unchanged from the Getter; decoding
// failures are *ManifestParseError.
func (c *Client) Latest(ctx context.Context, url string) (*Manifest, error) {
	data, err := c.getter.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, &ManifestParseError{URL: url, Err: err}
	}

	if err := manifest.Validate(); err != nil {
		return nil, &ManifestParseError{URL: url, Err: err}
	}

	c.logger.Debug("fetched manifest", "url", url, "version", manifest.Version, "platforms", len(manifest.Platforms))
	return &manifest, nil
}

// All fetches and parses the release list at url.
func (c *Client) All(ctx context.Context, url string) (List, error) {
	data, err := c.getter.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var list List
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, &ManifestParseError{URL: url, Err: err}
	}

	for i := range list {
		if err := list[i].Validate(); err != nil {
			return nil, &ManifestParseError{URL: url, Err: fmt.Errorf("release %d: %w", i, err)}
		}
	}

	c.logger.Debug("fetched release list", "url", url, "releases", len(list))
	return list, nil
}

// Version fetches the release list at url and returns the release matching
// ver. An unparsable ver is rejected before any request is made.
func (c *Client) Version(ctx context.Context, url, ver string) (*Manifest, error) {
	if _, _, err := parseVersion(ver); err != nil {
		return nil, err
	}

	list, err := c.All(ctx, url)
	if err != nil {
		return nil, err
	}

	manifest, err := list.Get(ver)
	if err != nil {
		return nil, err
	}

	return &manifest, nil
}
