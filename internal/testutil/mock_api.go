// Package testutil provides testing utilities for the Helium API client.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockPage is one page of a cursor-paged mock resource. Data is the raw JSON
// array; an empty Cursor marks the last page.
type MockPage struct {
	Data   string
	Cursor string
}

// RecordedRequest is a request seen by the mock server.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// MockAPI is a configurable mock Helium API server for testing.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	requests         []RecordedRequest
	conditionalCount int
}

// NewMockAPI creates a new mock Helium API server. Handlers are keyed by
// request path; point the client's BaseURL at URL().
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mock.mu.Lock()
		mock.requests = append(mock.requests, RecordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     body,
		})
		if r.Header.Get("If-None-Match") != "" || r.Header.Get("If-Modified-Since") != "" {
			mock.conditionalCount++
		}
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		writeJSON(w, http.StatusNotFound, `{"error":"Not Found"}`, nil)
	}))

	return mock
}

// URL returns the mock server URL, usable as a client base URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears all recorded requests.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.conditionalCount = 0
}

// SetHandler sets a custom handler for a specific path.
func (m *MockAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			select {
			case <-time.After(resp.Delay):
			case <-r.Context().Done():
				return
			}
		}
		writeJSON(w, resp.StatusCode, resp.Body, resp.Headers)
	})
}

// SetData configures a 200 response wrapping data in an envelope.
func (m *MockAPI) SetData(path string, data string) {
	m.SetResponse(path, MockResponse{StatusCode: http.StatusOK, Body: Envelope(data, "")})
}

// SetPages serves a cursor-paged resource. A request without a cursor gets
// the first page; a request carrying page i's cursor gets page i+1. Filters
// sent alongside a cursor, or unknown cursors, get a 400.
func (m *MockAPI) SetPages(path string, pages ...MockPage) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		cursor := query.Get("cursor")

		index := -1
		switch {
		case cursor == "":
			index = 0
		case len(query) != 1:
			writeJSON(w, http.StatusBadRequest, `{"error":"cursor must be the only parameter"}`, nil)
			return
		default:
			for i, page := range pages {
				if page.Cursor == cursor && i+1 < len(pages) {
					index = i + 1
					break
				}
			}
		}

		if index < 0 || index >= len(pages) {
			writeJSON(w, http.StatusBadRequest, `{"error":"invalid cursor"}`, nil)
			return
		}
		writeJSON(w, http.StatusOK, Envelope(pages[index].Data, pages[index].Cursor), nil)
	})
}

// Requests returns a copy of the recorded requests.
func (m *MockAPI) Requests() []RecordedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestsTo returns the recorded requests for path.
func (m *MockAPI) RequestsTo(path string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range m.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// GetConditionalCount returns the number of conditional requests.
func (m *MockAPI) GetConditionalCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conditionalCount
}

// Envelope wraps raw JSON data in the API's response envelope.
func Envelope(data string, cursor string) string {
	if cursor == "" {
		return fmt.Sprintf(`{"data":%s}`, data)
	}
	c, _ := json.Marshal(cursor)
	return fmt.Sprintf(`{"data":%s,"cursor":%s}`, data, c)
}

// NewHealthyResponse creates a cacheable 200 OK response wrapping data.
func NewHealthyResponse(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       Envelope(data, ""),
		Headers: map[string]string{
			"X-RateLimit-Remaining": "100",
			"X-RateLimit-Reset":     "60",
			"ETag":                  `"test-etag-123"`,
			"Expires":               time.Now().Add(5 * time.Minute).UTC().Format(http.TimeFormat),
		},
	}
}

// NewNotFoundResponse creates a 404 Not Found response.
func NewNotFoundResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"error":"Not Found"}`,
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse(retryAfter int) MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"error":"Too Many Requests"}`,
		Headers: map[string]string{
			"Retry-After":           fmt.Sprintf("%d", retryAfter),
			"X-RateLimit-Remaining": "0",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error":"Internal Server Error"}`,
	}
}

// NewConditionalHandler creates a handler that responds with 304 when the
// request carries etag, and with a full response fresh for maxAge otherwise.
func NewConditionalHandler(etag string, data string, maxAge time.Duration) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == etag {
			w.Header().Set("Cache-Control", "max-age=300")
			w.WriteHeader(http.StatusNotModified)
			return
		}

		writeJSON(w, http.StatusOK, Envelope(data, ""), map[string]string{
			"ETag":          etag,
			"Cache-Control": fmt.Sprintf("max-age=%d", int(maxAge.Seconds())),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body string, headers map[string]string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	for key, value := range headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(status)
	if body != "" {
		w.Write([]byte(body))
	}
}
