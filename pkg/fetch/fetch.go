// Package fetch retrieves the source archive for a pinned dependency
// identity and delivers it as a zip container.
//
// Only [dependency.Npm] identities are fetchable today: the npm registry
// tarball is downloaded and losslessly transcoded into a zip. Every other
// identity kind fails with an unsupported-dependency error. The dispatch
// is closed, mirroring the identity vocabulary.
package fetch

import (
	"bytes"
	"context"
	"time"

	"github.com/depscout/depscout/pkg/archive"
	"github.com/depscout/depscout/pkg/dependency"
	"github.com/depscout/depscout/pkg/errors"
	"github.com/depscout/depscout/pkg/integrations/npm"
)

// DefaultCacheTTL is how long downloaded archives stay cached on disk.
const DefaultCacheTTL = 24 * time.Hour

// Fetcher downloads source archives for dependency identities.
type Fetcher struct {
	npm *npm.Client
}

// New creates a Fetcher with an archive cache using the given TTL.
func New(cacheTTL time.Duration) (*Fetcher, error) {
	c, err := npm.NewClient(cacheTTL)
	if err != nil {
		return nil, err
	}
	return &Fetcher{npm: c}, nil
}

// NewWithClient creates a Fetcher around an existing npm client.
func NewWithClient(c *npm.Client) *Fetcher {
	return &Fetcher{npm: c}
}

// Fetch downloads the source archive for dep and returns it as a zip
// container with per-entry paths, permissions, and bytes preserved from
// the registry archive. If refresh is true the on-disk cache is bypassed.
func (f *Fetcher) Fetch(ctx context.Context, dep dependency.Dependency, refresh bool) ([]byte, error) {
	switch d := dep.(type) {
	case dependency.Npm:
		tarball, err := f.npm.FetchArchive(ctx, d.Name, d.Version, refresh)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", d)
		}
		zipped, err := archive.TarGzToZip(bytes.NewReader(tarball))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "transcode %s", d)
		}
		return zipped, nil

	default:
		return nil, errors.New(errors.ErrCodeUnsupportedDependency,
			"fetching %s dependencies is not implemented", dep.Kind())
	}
}
