package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Sternrassler/helium-api-client/internal/testutil"
	"github.com/Sternrassler/helium-api-client/pkg/pagination"
	"github.com/redis/go-redis/v9"
)

const testUserAgent = "helium-api-client-test/1.0 (test@example.com)"

// setupTestRedis creates a test Redis client.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	// Flush test DB
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

// newTestClient creates a client pointed at the mock server.
func newTestClient(t *testing.T, mock *testutil.MockAPI, mutate func(*Config)) *Client {
	t.Helper()

	cfg := DefaultConfig(testUserAgent)
	cfg.BaseURL = mock.URL()
	cfg.Timeout = 5 * time.Second
	if mutate != nil {
		mutate(&cfg)
	}

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

type testItem struct {
	Name string `json:"name"`
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "empty user agent",
			mutate:      func(c *Config) { c.UserAgent = "" },
			expectError: true,
			errorMsg:    "user-agent is required",
		},
		{
			name:        "relative base url",
			mutate:      func(c *Config) { c.BaseURL = "/v1" },
			expectError: true,
			errorMsg:    `base url must be an absolute http(s) url (got "/v1")`,
		},
		{
			name:        "negative timeout",
			mutate:      func(c *Config) { c.Timeout = -time.Second },
			expectError: true,
			errorMsg:    "timeout must be >= 0 (got -1s)",
		},
		{
			name:        "negative retries",
			mutate:      func(c *Config) { c.MaxRetries = -1 },
			expectError: true,
			errorMsg:    "max_retries must be >= 0 (got -1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(testUserAgent)
			tt.mutate(&cfg)

			client, err := New(cfg)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got nil")
					return
				}
				if tt.errorMsg != "" && err.Error() != tt.errorMsg {
					t.Errorf("Error message = %q, want %q", err.Error(), tt.errorMsg)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if client == nil {
					t.Error("Expected client but got nil")
				}
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(testUserAgent)

	if cfg.BaseURL != "https://api.helium.io/v1" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 120*time.Second {
		t.Errorf("Timeout = %v, want 120s", cfg.Timeout)
	}
	if cfg.MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want 0 (no retries by default)", cfg.MaxRetries)
	}
	if cfg.Redis != nil {
		t.Error("Redis should be optional")
	}
}

func TestURL(t *testing.T) {
	c, err := New(Config{BaseURL: "https://api.helium.io/v1/", UserAgent: testUserAgent})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	tests := []struct {
		path  string
		query url.Values
		want  string
	}{
		{"/accounts", nil, "https://api.helium.io/v1/accounts"},
		{"accounts/rich", url.Values{"limit": {"10"}}, "https://api.helium.io/v1/accounts/rich?limit=10"},
		{"/hotspots", url.Values{"cursor": {"a b"}}, "https://api.helium.io/v1/hotspots?cursor=a+b"},
	}

	for _, tt := range tests {
		if got := c.URL(tt.path, tt.query); got != tt.want {
			t.Errorf("URL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFetchPage(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetPages("/items", testutil.MockPage{Data: `[{"name":"A"},{"name":"B"}]`, Cursor: "x"})

	c := newTestClient(t, mock, nil)

	page, err := FetchPage[testItem](context.Background(), c, "/items", nil)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}

	if want := []testItem{{"A"}, {"B"}}; !reflect.DeepEqual(page.Data, want) {
		t.Errorf("Data = %v, want %v", page.Data, want)
	}
	if page.Cursor != "x" {
		t.Errorf("Cursor = %q, want x", page.Cursor)
	}

	reqs := mock.Requests()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	if ua := reqs[0].Header.Get("User-Agent"); ua != testUserAgent {
		t.Errorf("User-Agent = %q, want %q", ua, testUserAgent)
	}
	if accept := reqs[0].Header.Get("Accept"); accept != "application/json" {
		t.Errorf("Accept = %q, want application/json", accept)
	}
}

func TestFetchPage_NullCursor(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/items", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"data":[],"cursor":null}`,
	})

	c := newTestClient(t, mock, nil)

	page, err := FetchPage[testItem](context.Background(), c, "/items", nil)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if page.HasCursor() || len(page.Data) != 0 {
		t.Errorf("page = %+v, want empty without cursor", page)
	}
}

func TestStream_TwoPages(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetPages("/items",
		testutil.MockPage{Data: `[{"name":"A"},{"name":"B"}]`, Cursor: "x"},
		testutil.MockPage{Data: `[{"name":"C"}]`},
	)

	c := newTestClient(t, mock, nil)

	stream := Stream[testItem](c, "/items", url.Values{"min_time": {"-1 day"}})
	if mock.GetRequestCount() != 0 {
		t.Fatalf("requests before first pull = %d, want 0", mock.GetRequestCount())
	}

	items, err := pagination.Collect[testItem](context.Background(), stream)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if want := []testItem{{"A"}, {"B"}, {"C"}}; !reflect.DeepEqual(items, want) {
		t.Errorf("items = %v, want %v", items, want)
	}

	reqs := mock.Requests()
	if len(reqs) != 2 {
		t.Fatalf("requests = %d, want 2", len(reqs))
	}
	if reqs[0].RawQuery != "min_time=-1+day" {
		t.Errorf("first query = %q, want caller filters", reqs[0].RawQuery)
	}
	if reqs[1].RawQuery != "cursor=x" {
		t.Errorf("second query = %q, want cursor only", reqs[1].RawQuery)
	}
}

func TestStream_ErrorTerminatesWithoutRetry(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	calls := 0
	mock.SetHandler("/items", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("cursor") == "" {
			w.Write([]byte(testutil.Envelope(`[{"name":"A"}]`, "next")))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	})

	c := newTestClient(t, mock, nil)

	items, err := pagination.Collect[testItem](context.Background(), Stream[testItem](c, "/items", nil))

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != 500 || statusErr.ErrorClass != ErrorClassServer {
		t.Errorf("status error = %+v", statusErr)
	}
	if !reflect.DeepEqual(items, []testItem{{"A"}}) {
		t.Errorf("items = %v, want partial [A]", items)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (no retry)", calls)
	}
}

func TestFetch_ErrorKinds(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetResponse("/missing", testutil.NewNotFoundResponse())
	mock.SetResponse("/wrong-shape", testutil.MockResponse{StatusCode: 200, Body: `{"data":"not an object"}`})
	mock.SetResponse("/no-envelope", testutil.MockResponse{StatusCode: 200, Body: `{"name":"A"}`})
	mock.SetResponse("/not-json", testutil.MockResponse{StatusCode: 200, Body: `<html>`})

	c := newTestClient(t, mock, nil)
	ctx := context.Background()

	tests := []struct {
		path      string
		wantClass ErrorClass
		check     func(error) bool
	}{
		{"/missing", ErrorClassClient, func(err error) bool { return IsStatus(err, 404) }},
		{"/wrong-shape", ErrorClassDecode, func(err error) bool {
			var decodeErr *DecodeError
			return errors.As(err, &decodeErr)
		}},
		{"/no-envelope", ErrorClassDecode, func(err error) bool { return errors.Is(err, errMissingData) }},
		{"/not-json", ErrorClassDecode, func(err error) bool {
			var syntaxErr *json.SyntaxError
			return errors.As(err, &syntaxErr)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := Fetch[testItem](ctx, c, tt.path, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error type: %T %v", err, err)
			}
			if got := classOf(err); got != tt.wantClass {
				t.Errorf("classOf = %q, want %q", got, tt.wantClass)
			}
		})
	}
}

func TestFetch_StatusErrorBody(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/missing", testutil.NewNotFoundResponse())

	c := newTestClient(t, mock, nil)

	_, err := Fetch[testItem](context.Background(), c, "/missing", nil)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if !strings.Contains(statusErr.Body, "Not Found") {
		t.Errorf("Body = %q, want excerpt", statusErr.Body)
	}
	if statusErr.Endpoint != "/missing" {
		t.Errorf("Endpoint = %q", statusErr.Endpoint)
	}
}

func TestFetch_TransportError(t *testing.T) {
	mock := testutil.NewMockAPI()
	c := newTestClient(t, mock, nil)
	mock.Close()

	_, err := Fetch[testItem](context.Background(), c, "/items", nil)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if IsStatus(err, 0) {
		t.Error("transport error must not look like a status error")
	}
}

func TestFetch_ContextDeadline(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/slow", testutil.MockResponse{
		StatusCode: 200,
		Body:       testutil.Envelope(`{"name":"A"}`, ""),
		Delay:      2 * time.Second,
	})

	c := newTestClient(t, mock, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Fetch[testItem](ctx, c, "/slow", nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestFetchValue(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetData("/vars", `{"sc_max_actors":100,"poc_version":11}`)
	mock.SetResponse("/bare", testutil.MockResponse{StatusCode: 200, Body: `[1,2]`})

	c := newTestClient(t, mock, nil)
	ctx := context.Background()

	value, err := FetchValue(ctx, c, "/vars", nil)
	if err != nil {
		t.Fatalf("FetchValue failed: %v", err)
	}
	if !value.IsObject() || value.Get("poc_version").Int() != 11 {
		t.Errorf("value = %s", value.Raw)
	}

	if _, err := FetchValue(ctx, c, "/bare", nil); !errors.Is(err, errMissingData) {
		t.Errorf("error = %v, want missing data", err)
	}
}

func TestPost(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetData("/pending_transactions", `{"hash":"abc"}`)

	c := newTestClient(t, mock, nil)

	type status struct {
		Hash string `json:"hash"`
	}
	got, err := Post[status](context.Background(), c, "/pending_transactions", map[string]string{"txn": "AAEC"})
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if got.Hash != "abc" {
		t.Errorf("Hash = %q, want abc", got.Hash)
	}

	reqs := mock.Requests()
	if len(reqs) != 1 || reqs[0].Method != http.MethodPost {
		t.Fatalf("requests = %+v", reqs)
	}
	if ct := reqs[0].Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if string(reqs[0].Body) != `{"txn":"AAEC"}` {
		t.Errorf("body = %s", reqs[0].Body)
	}
}

func TestPost_NotRetried(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/pending_transactions", testutil.NewServerErrorResponse())

	c := newTestClient(t, mock, func(cfg *Config) {
		cfg.MaxRetries = 3
		cfg.InitialBackoff = time.Millisecond
	})

	_, err := Post[map[string]any](context.Background(), c, "/pending_transactions", map[string]string{"txn": ""})
	if !IsStatus(err, 500) {
		t.Errorf("error = %v, want 500", err)
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("requests = %d, want 1", mock.GetRequestCount())
	}
}

func TestGet_RetriesWhenEnabled(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	calls := 0
	mock.SetHandler("/flaky", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(testutil.Envelope(`{"name":"ok"}`, "")))
	})

	c := newTestClient(t, mock, func(cfg *Config) {
		cfg.MaxRetries = 2
		cfg.InitialBackoff = 5 * time.Millisecond
	})

	item, err := Fetch[testItem](context.Background(), c, "/flaky", nil)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if item.Name != "ok" || calls != 3 {
		t.Errorf("item = %+v after %d calls", item, calls)
	}
}

func TestRateLimit_429BlocksFollowingRequests(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/items", testutil.NewRateLimitResponse(30))

	c := newTestClient(t, mock, nil)
	ctx := context.Background()

	_, err := Fetch[testItem](ctx, c, "/items", nil)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.ErrorClass != ErrorClassRateLimit {
		t.Fatalf("first error = %v, want rate limit status error", err)
	}
	if statusErr.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v, want 30s", statusErr.RetryAfter)
	}

	// The cooldown is enforced locally
	_, err = Fetch[testItem](ctx, c, "/items", nil)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("second error = %v, want ErrRateLimited", err)
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("requests = %d, want 1", mock.GetRequestCount())
	}
}

func TestEndpointLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/v1/accounts", "/v1/accounts"},
		{"/v1/accounts/13buBykFQf5VaQtv7mWj2PBY9Lq4i1DeXhg7C4Vbu3ppzqqNkTH/hotspots", "/v1/accounts/:id/hotspots"},
		{"/v1/oracle/prices/912345", "/v1/oracle/prices/:id"},
		{"/v1/oracle/prices/current", "/v1/oracle/prices/current"},
		{"/v1/transactions/1gidN7e6OKn405Fru_0sGhsqca3lTsrfGKrM4dwM_E8", "/v1/transactions/:id"},
	}

	for _, tt := range tests {
		if got := endpointLabel(tt.path); got != tt.want {
			t.Errorf("endpointLabel(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFetch_CacheServesFreshEntries(t *testing.T) {
	redisClient := setupTestRedis(t)

	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/accounts/abc", testutil.NewHealthyResponse(`{"name":"cached"}`))

	c := newTestClient(t, mock, func(cfg *Config) { cfg.Redis = redisClient })
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		item, err := Fetch[testItem](ctx, c, "/accounts/abc", nil)
		if err != nil {
			t.Fatalf("Fetch #%d failed: %v", i+1, err)
		}
		if item.Name != "cached" {
			t.Errorf("item = %+v", item)
		}
	}

	if mock.GetRequestCount() != 1 {
		t.Errorf("requests = %d, want 1", mock.GetRequestCount())
	}
}

func TestFetch_CacheRevalidatesStaleEntries(t *testing.T) {
	redisClient := setupTestRedis(t)

	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetHandler("/oracle/prices/current", testutil.NewConditionalHandler(`"v1"`, `{"name":"price"}`, time.Second))

	c := newTestClient(t, mock, func(cfg *Config) { cfg.Redis = redisClient })
	ctx := context.Background()

	if _, err := Fetch[testItem](ctx, c, "/oracle/prices/current", nil); err != nil {
		t.Fatalf("first Fetch failed: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)

	item, err := Fetch[testItem](ctx, c, "/oracle/prices/current", nil)
	if err != nil {
		t.Fatalf("second Fetch failed: %v", err)
	}
	if item.Name != "price" {
		t.Errorf("item = %+v", item)
	}
	if mock.GetConditionalCount() != 1 {
		t.Errorf("conditional requests = %d, want 1", mock.GetConditionalCount())
	}
}

func TestFetchPage_NeverCached(t *testing.T) {
	redisClient := setupTestRedis(t)

	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse("/hotspots", testutil.NewHealthyResponse(`[{"name":"A"}]`))

	c := newTestClient(t, mock, func(cfg *Config) { cfg.Redis = redisClient })
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := FetchPage[testItem](ctx, c, "/hotspots", nil); err != nil {
			t.Fatalf("FetchPage failed: %v", err)
		}
	}
	if mock.GetRequestCount() != 2 {
		t.Errorf("requests = %d, want 2", mock.GetRequestCount())
	}
}
