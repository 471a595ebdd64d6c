package cache

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// NewEntry builds a cache entry from a successful response and its body.
// It reports false when the response does not declare its own freshness or
// forbids storage, in which case nothing should be cached.
func NewEntry(resp *http.Response, body []byte) (*Entry, bool) {
	if resp == nil || resp.StatusCode != http.StatusOK {
		return nil, false
	}

	now := time.Now()
	expires, ok := Freshness(resp.Header, now)
	if !ok || !expires.After(now) {
		return nil, false
	}

	entry := &Entry{
		Data:     body,
		ETag:     resp.Header.Get("ETag"),
		Expires:  expires,
		CachedAt: now,
	}

	if lastModStr := resp.Header.Get("Last-Modified"); lastModStr != "" {
		if lastMod, err := http.ParseTime(lastModStr); err == nil {
			entry.LastModified = lastMod
		}
	}

	return entry, true
}

// Freshness returns when a response becomes stale.
// Cache-Control max-age takes precedence over Expires. It reports false when
// the headers carry neither, or when no-store or no-cache is set.
func Freshness(headers http.Header, now time.Time) (time.Time, bool) {
	for _, directive := range strings.Split(headers.Get("Cache-Control"), ",") {
		directive = strings.ToLower(strings.TrimSpace(directive))
		switch {
		case directive == "no-store", directive == "no-cache":
			return time.Time{}, false
		case strings.HasPrefix(directive, "max-age="):
			seconds, err := strconv.Atoi(strings.TrimPrefix(directive, "max-age="))
			if err == nil && seconds >= 0 {
				return now.Add(time.Duration(seconds) * time.Second), true
			}
		}
	}

	expiresStr := headers.Get("Expires")
	if expiresStr == "" {
		return time.Time{}, false
	}
	expires, err := http.ParseTime(expiresStr)
	if err != nil {
		return time.Time{}, false
	}
	return expires, true
}

// ShouldRevalidate reports whether a stale entry can be revalidated with a
// conditional request instead of refetched.
func ShouldRevalidate(entry *Entry) bool {
	if entry == nil {
		return false
	}
	return entry.ETag != "" || !entry.LastModified.IsZero()
}

// AddConditionalHeaders adds If-None-Match (ETag) or If-Modified-Since headers
// for entry.
func AddConditionalHeaders(header http.Header, entry *Entry) {
	if entry == nil || header == nil {
		return
	}

	// Prefer ETag over Last-Modified (more accurate)
	if entry.ETag != "" {
		header.Set("If-None-Match", entry.ETag)
	} else if !entry.LastModified.IsZero() {
		header.Set("If-Modified-Since", entry.LastModified.UTC().Format(http.TimeFormat))
	}
}
