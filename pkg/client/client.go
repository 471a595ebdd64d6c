// Package client provides the core Helium API HTTP client: typed request
// errors, envelope decoding, single-page fetches for the pagination engine,
// optional retries, rate limit gating and an optional response cache.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/helium-api-client/pkg/cache"
	"github.com/Sternrassler/helium-api-client/pkg/logging"
	"github.com/Sternrassler/helium-api-client/pkg/ratelimit"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the hosted Helium blockchain API.
	DefaultBaseURL = "https://api.helium.io/v1"

	// DefaultTimeout bounds every request made by the client.
	DefaultTimeout = 120 * time.Second

	// maxErrorBody bounds the body excerpt kept in a StatusError.
	maxErrorBody = 512
)

// Client is the Helium API client. It is safe for concurrent use; every
// stream and single-item call shares its connection pool.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *ratelimit.Tracker
	cache       *cache.Manager
	retry       RetryConfig
	config      Config
	logger      zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the API including the version prefix.
	BaseURL string

	// User-Agent header (REQUIRED)
	// Format: "AppName/Version (contact@example.com)"
	UserAgent string

	// Timeout applied to every request through the shared HTTP client.
	Timeout time.Duration

	// Redis client for the response cache and shared rate limit state.
	// Optional: without it there is no cache and rate limit state is
	// kept in process.
	Redis *redis.Client

	// Retry. MaxRetries 0 sends every request exactly once.
	MaxRetries     int
	InitialBackoff time.Duration

	// HTTPClient replaces the default HTTP client (Timeout is then ignored).
	HTTPClient *http.Client
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(userAgent string) Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		UserAgent:      userAgent,
		Timeout:        DefaultTimeout,
		MaxRetries:     0,
		InitialBackoff: 1 * time.Second,
	}
}

// Validate checks the configuration.
func (cfg Config) Validate() error {
	if cfg.UserAgent == "" {
		return fmt.Errorf("user-agent is required")
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base url must be an absolute http(s) url (got %q)", cfg.BaseURL)
	}

	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %s)", cfg.Timeout)
	}

	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", cfg.MaxRetries)
	}

	return nil
}

// New creates a new Helium API client.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewLogger("helium-client")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	// Rate limit state is shared through Redis when available
	var store ratelimit.Store = ratelimit.NewMemoryStore()
	var cacheManager *cache.Manager
	if cfg.Redis != nil {
		store = ratelimit.NewRedisStore(cfg.Redis)
		cacheManager = cache.NewManager(cfg.Redis)
	}

	retry := DefaultRetryConfig()
	retry.MaxAttempts = cfg.MaxRetries + 1
	if cfg.InitialBackoff > 0 {
		retry.InitialBackoff = cfg.InitialBackoff
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		rateLimiter: ratelimit.NewTracker(store, logger),
		cache:       cacheManager,
		retry:       retry,
		config:      cfg,
		logger:      logger,
	}, nil
}

// Do performs exactly one HTTP request with rate limit gating and error
// classification. A nil error means a 2xx or 304 response whose body the
// caller must close; every other status is returned as a *StatusError.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	endpoint := endpointLabel(req.URL.Path)

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Check Rate Limit
	allowed, wait, err := c.rateLimiter.ShouldAllowRequest(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("Rate limit check failed")
		return nil, fmt.Errorf("rate limit check: %w", err)
	}
	if !allowed {
		requestsTotal.WithLabelValues(endpoint, "rate_limited").Inc()
		return nil, &StatusError{
			StatusCode: http.StatusTooManyRequests,
			ErrorClass: ErrorClassRateLimit,
			Endpoint:   req.URL.Path,
			Message:    fmt.Sprintf("window resets in %s", wait.Round(time.Millisecond)),
			RetryAfter: wait,
			Err:        ErrRateLimited,
		}
	}

	// Step 2: Set headers
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", req.URL.Path).
		Str("method", req.Method).
		Msg("Executing Helium API request")

	// Step 3: Execute HTTP Request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Warn().Err(err).Str("endpoint", req.URL.Path).Msg("HTTP request failed")
		return nil, &TransportError{Method: req.Method, URL: req.URL.Redacted(), Err: err}
	}

	// Step 4: Update Rate Limit from headers
	if err := c.rateLimiter.UpdateFromResponse(ctx, resp.StatusCode, resp.Header); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to update rate limit from headers")
	}

	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	// Step 5: Classify non-success status
	if resp.StatusCode == http.StatusNotModified || (resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return resp, nil
	}

	defer resp.Body.Close()
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	statusErr := &StatusError{
		StatusCode: resp.StatusCode,
		ErrorClass: classForStatus(resp.StatusCode),
		Endpoint:   req.URL.Path,
		Message:    http.StatusText(resp.StatusCode),
		Body:       strings.TrimSpace(string(excerpt)),
	}
	if wait, ok := ratelimit.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()); ok {
		statusErr.RetryAfter = wait
	}

	errorsTotal.WithLabelValues(string(statusErr.ErrorClass)).Inc()
	c.logger.Warn().
		Str("endpoint", req.URL.Path).
		Int("status", resp.StatusCode).
		Str("error_class", string(statusErr.ErrorClass)).
		Msg("Helium API request error")

	return nil, statusErr
}

// send builds and performs a request for path, retrying idempotent GETs when
// retries are enabled. header entries are added to every attempt.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body []byte, header http.Header) (*http.Response, error) {
	target := c.URL(path, query)

	var resp *http.Response
	attempt := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		for name, values := range header {
			for _, v := range values {
				req.Header.Add(name, v)
			}
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err = c.Do(req)
		return err
	}

	if method != http.MethodGet {
		if err := attempt(); err != nil {
			return nil, err
		}
		return resp, nil
	}
	if err := retryWithBackoff(ctx, c.retry, attempt); err != nil {
		return nil, err
	}
	return resp, nil
}

// URL returns the absolute URL for path and query.
func (c *Client) URL(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// Get performs a GET request to an API path and returns the raw response.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	return c.send(ctx, http.MethodGet, path, query, nil, nil)
}

// getBody fetches path and reads the whole body. When cacheable and a cache
// is configured, fresh entries are served without a request and stale ones
// are revalidated.
func (c *Client) getBody(ctx context.Context, path string, query url.Values, cacheable bool) ([]byte, error) {
	useCache := cacheable && c.cache != nil
	key := cache.Key{Path: c.pathPrefix() + path, Query: query}

	var cached *cache.Entry
	if useCache {
		entry, err := c.cache.Get(ctx, key)
		switch {
		case err == nil && !entry.IsExpired():
			c.logger.Debug().Str("endpoint", path).Dur("ttl", entry.TTL()).Msg("Cache hit")
			return entry.Data, nil
		case err == nil:
			cached = entry
		case !errors.Is(err, cache.ErrCacheMiss):
			c.logger.Warn().Err(err).Str("endpoint", path).Msg("Cache get error")
		}
	}

	header := http.Header{}
	if cached != nil && cache.ShouldRevalidate(cached) {
		cache.AddConditionalHeaders(header, cached)
		cache.ConditionalRequestsSent.Inc()
		c.logger.Debug().
			Str("endpoint", path).
			Str("etag", cached.ETag).
			Msg("Making conditional request")
	}

	resp, err := c.send(ctx, http.MethodGet, path, query, nil, header)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		if cached == nil {
			return nil, &StatusError{
				StatusCode: resp.StatusCode,
				ErrorClass: ErrorClassClient,
				Endpoint:   path,
				Message:    "unexpected 304 without a cached entry",
			}
		}
		cache.NotModifiedResponses.Inc()
		if expires, ok := cache.Freshness(resp.Header, time.Now()); ok {
			if err := c.cache.Refresh(ctx, key, cached, expires); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to refresh cache entry")
			}
		}
		c.logger.Debug().Str("endpoint", path).Msg("304 Not Modified - using cache")
		return cached.Data, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &TransportError{Method: http.MethodGet, URL: c.URL(path, query), Err: fmt.Errorf("read body: %w", err)}
	}

	if useCache {
		if entry, ok := cache.NewEntry(resp, body); ok {
			if err := c.cache.Set(ctx, key, entry); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to cache response")
			} else {
				c.logger.Debug().
					Str("endpoint", path).
					Dur("ttl", entry.TTL()).
					Msg("Cached response")
			}
		}
	}

	return body, nil
}

// pathPrefix is the path component of the base URL, so cache keys stay
// distinct across API versions.
func (c *Client) pathPrefix() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	return u.Path
}

// decodeError records and wraps an envelope decode failure.
func decodeError(path string, err error) error {
	errorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
	return &DecodeError{Endpoint: path, Err: err}
}

// postJSON marshals payload, posts it to path and returns the response body.
func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, path, nil, body, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: http.MethodPost, URL: c.URL(path, nil), Err: fmt.Errorf("read body: %w", err)}
	}
	return data, nil
}

// Close releases idle connections. The Redis client, if any, is owned by
// the caller and left open.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Cache returns the cache manager, or nil when no Redis is configured.
func (c *Client) Cache() *cache.Manager {
	return c.cache
}

// RateLimiter returns the rate limit tracker.
func (c *Client) RateLimiter() *ratelimit.Tracker {
	return c.rateLimiter
}
