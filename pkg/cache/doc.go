// Package cache provides an optional Redis read-through cache for single-item
// Helium API responses.
//
// Only responses that declare their own freshness (Cache-Control max-age or an
// Expires header) are stored, and only for single-item lookups such as an
// account, a hotspot or the current oracle price. Paginated resources are
// never cached: a cursor is only meaningful to the server that issued it.
//
// Entries outlive their freshness by a revalidation window. A stale entry that
// carries an ETag or Last-Modified value is revalidated with a conditional
// request; a 304 Not Modified refreshes the entry without a new body.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	manager := cache.NewManager(redisClient)
//
//	key := cache.Key{Path: "/v1/accounts/13buBy...", Query: nil}
//	entry, err := manager.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// fetch from the API
//	}
//
// # Conditional Requests
//
//	if entry.IsExpired() && cache.ShouldRevalidate(entry) {
//		cache.AddConditionalHeaders(req.Header, entry)
//	}
//
// # Metrics
//
//   - helium_cache_hits_total{freshness} - Cache hits, fresh or stale
//   - helium_cache_misses_total - Cache misses
//   - helium_cache_stored_bytes_total - Bytes written to Redis
//   - helium_cache_304_responses_total - Conditional request successes
//   - helium_cache_conditional_requests_total - Conditional requests sent
//   - helium_cache_errors_total{operation} - Cache operation errors
package cache
