package npm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/depscout/depscout/pkg/httputil"
	"github.com/depscout/depscout/pkg/integrations"
)

// Client fetches package source archives from the npm registry.
type Client struct {
	*integrations.Client
	baseURL string
}

// DefaultRegistry is the public npm registry.
const DefaultRegistry = "https://registry.npmjs.org"

// NewClient creates a Client backed by the default registry and a file
// cache with the given TTL.
func NewClient(cacheTTL time.Duration) (*Client, error) {
	cache, err := integrations.NewCache(cacheTTL)
	if err != nil {
		return nil, err
	}
	return NewClientWithRegistry(DefaultRegistry, cache), nil
}

// NewClientWithRegistry creates a Client against a specific registry URL.
// Useful for registry mirrors.
func NewClientWithRegistry(registry string, cache *httputil.Cache) *Client {
	return &Client{
		Client:  integrations.NewClient(cache, nil),
		baseURL: strings.TrimSuffix(registry, "/"),
	}
}

// ArchiveURL derives the registry tarball URL for an exact pinned package.
// Scoped names keep the scope as its own path segment while the archive
// basename uses only the part after the slash.
func (c *Client) ArchiveURL(name, version string) string {
	if scope, base, ok := strings.Cut(name, "/"); ok {
		return fmt.Sprintf("%s/%s/%s/-/%s-%s.tgz", c.baseURL, scope, base, base, version)
	}
	return fmt.Sprintf("%s/%s/-/%s-%s.tgz", c.baseURL, name, name, version)
}

// FetchArchive downloads the gzipped tar archive for name@version.
// If refresh is true the on-disk cache is bypassed.
func (c *Client) FetchArchive(ctx context.Context, name, version string, refresh bool) ([]byte, error) {
	key := "npm-archive:" + name + "@" + version

	var data []byte
	err := c.Cached(ctx, key, refresh, &data, func() error {
		b, err := c.GetBytes(ctx, c.ArchiveURL(name, version))
		if err != nil {
			return err
		}
		data = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
