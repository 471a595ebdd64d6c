// Package metrics exposes the Prometheus metrics of the Helium API client.
// The metrics themselves are defined in their own packages (client, cache,
// ratelimit, pagination) and registered via promauto on the default
// registry; this package serves them and documents the catalogue.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the Helium client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer collects everything registered on Registry.
var Gatherer = prometheus.DefaultGatherer

// Handler returns an HTTP handler serving all registered metrics in the
// Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// Names lists every metric family the client can emit.
var Names = []string{
	// pkg/client
	"helium_requests_total",
	"helium_request_duration_seconds",
	"helium_errors_total",
	"helium_retries_total",
	"helium_retry_backoff_seconds",
	"helium_retry_exhausted_total",

	// pkg/ratelimit
	"helium_rate_limit_remaining",
	"helium_rate_limit_blocks_total",
	"helium_rate_limit_throttles_total",
	"helium_rate_limit_429_total",

	// pkg/cache
	"helium_cache_hits_total",
	"helium_cache_misses_total",
	"helium_cache_stored_bytes_total",
	"helium_cache_304_responses_total",
	"helium_cache_conditional_requests_total",
	"helium_cache_errors_total",

	// pkg/pagination
	"helium_stream_pages_total",
	"helium_stream_items_total",
	"helium_stream_errors_total",
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - helium_requests_total{endpoint, status} (Counter): Requests by normalized endpoint and HTTP status
//   - helium_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - helium_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network, decode)
//
// Retry Metrics (pkg/client, only when retries are enabled):
//   - helium_retries_total{error_class} (Counter): Retry attempts by error class
//   - helium_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - helium_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Rate Limit Metrics (pkg/ratelimit):
//   - helium_rate_limit_remaining (Gauge): Requests remaining in the current window
//   - helium_rate_limit_blocks_total (Counter): Requests refused locally until reset
//   - helium_rate_limit_throttles_total (Counter): Requests delayed in the warning band
//   - helium_rate_limit_429_total (Counter): 429 responses received
//
// Cache Metrics (pkg/cache, single-item GETs only):
//   - helium_cache_hits_total{freshness} (Counter): Hits split into fresh and stale
//   - helium_cache_misses_total (Counter): Cache misses
//   - helium_cache_stored_bytes_total (Counter): Bytes written to Redis
//   - helium_cache_304_responses_total (Counter): 304 Not Modified responses
//   - helium_cache_conditional_requests_total (Counter): Conditional requests sent
//   - helium_cache_errors_total{operation} (Counter): Redis operation errors
//
// Stream Metrics (pkg/pagination):
//   - helium_stream_pages_total (Counter): Pages fetched by streams
//   - helium_stream_items_total (Counter): Items yielded by streams
//   - helium_stream_errors_total (Counter): Streams that ended in an error
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(helium_cache_hits_total[5m])) /
//   (sum(rate(helium_cache_hits_total[5m])) + sum(rate(helium_cache_misses_total[5m])))
//
//   # Rate Limit Pressure
//   helium_rate_limit_remaining < 5
//
//   # Items per page
//   rate(helium_stream_items_total[5m]) / rate(helium_stream_pages_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(helium_request_duration_seconds_bucket[5m]))
