// Package httputil provides HTTP infrastructure for the registry clients:
// file-based response caching ([Cache]) and automatic retry with
// exponential backoff ([Retry]).
//
// Responses are cached under ~/.cache/depscout/ with a configurable TTL,
// keyed by SHA-256 of a namespaced cache key. Retries apply only to errors
// wrapped in [RetryableError] (network failures and 5xx responses); other
// errors surface immediately.
//
// The cache can be cleared via `depscout cache clear` or by deleting the
// cache directory.
package httputil
