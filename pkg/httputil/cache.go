package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when a cached entry exists but has
// exceeded its time-to-live. The stale data stays on disk; callers should
// fetch fresh data and update the cache with [Cache.Set].
var ErrExpired = errors.New("cache entry expired")

// Cache provides file-based caching of arbitrary JSON-marshalable data.
//
// Each entry is stored as a JSON file whose name is the SHA-256 hash of
// the cache key, so keys of any length and content are safe. Entries
// expire based on file modification time; a TTL of 0 means entries never
// expire.
//
// Cache operations are not goroutine-safe; callers sharing one instance
// across goroutines must synchronize. Multiple instances (even in
// different processes) can safely share the same directory.
//
// Use [Cache.Namespace] to create scoped views that prefix keys, avoiding
// collisions between data sources (e.g. "npm:" vs "npm-archive:").
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache creates a Cache that stores entries in dir with the given TTL.
// If dir is empty, the default directory ~/.cache/depscout/ is used and
// created with mode 0755 if missing.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "depscout")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl, prefix: ""}, nil
}

// Dir returns the absolute path to the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the time-to-live duration for cache entries.
// A TTL of 0 means cache entries never expire.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get retrieves a cached value by key and unmarshals it into v.
//
// Return values distinguish three outcomes:
//   - (true, nil): hit; the fresh value was unmarshaled into v.
//   - (false, nil): miss; no entry exists. v is unchanged.
//   - (false, ErrExpired): entry exists but exceeded its TTL. v is unchanged.
//   - (false, other error): I/O or unmarshal failure.
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.keyPath(c.prefix + key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set stores a value in the cache under the given key, overwriting any
// existing entry and refreshing its TTL.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

// Namespace returns a new Cache that automatically prefixes all keys with
// prefix. The returned Cache shares the same directory and TTL as the
// parent; Namespace calls can be chained.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{
		dir:    c.dir,
		ttl:    c.ttl,
		prefix: c.prefix + prefix,
	}
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
