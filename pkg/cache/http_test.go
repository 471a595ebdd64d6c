package cache

import (
	"net/http"
	"testing"
	"time"
)

func TestNewEntry(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		status    int
		header    http.Header
		wantOK    bool
		wantETag  string
		wantStamp bool
	}{
		{
			name:   "max-age with etag and last-modified",
			status: 200,
			header: http.Header{
				"Cache-Control": {"public, max-age=60"},
				"Etag":          {`"abc123"`},
				"Last-Modified": {now.Add(-time.Hour).UTC().Format(http.TimeFormat)},
			},
			wantOK:    true,
			wantETag:  `"abc123"`,
			wantStamp: true,
		},
		{
			name:   "expires only",
			status: 200,
			header: http.Header{"Expires": {now.Add(time.Hour).UTC().Format(http.TimeFormat)}},
			wantOK: true,
		},
		{
			name:   "no freshness headers",
			status: 200,
			header: http.Header{"Content-Type": {"application/json"}},
			wantOK: false,
		},
		{
			name:   "no-store",
			status: 200,
			header: http.Header{"Cache-Control": {"no-store"}, "Expires": {now.Add(time.Hour).UTC().Format(http.TimeFormat)}},
			wantOK: false,
		},
		{
			name:   "already expired",
			status: 200,
			header: http.Header{"Expires": {now.Add(-time.Hour).UTC().Format(http.TimeFormat)}},
			wantOK: false,
		},
		{
			name:   "non-200",
			status: 203,
			header: http.Header{"Cache-Control": {"max-age=60"}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.status, Header: tt.header}
			entry, ok := NewEntry(resp, []byte(`{"data":{}}`))
			if ok != tt.wantOK {
				t.Fatalf("NewEntry() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if entry.ETag != tt.wantETag {
				t.Errorf("ETag = %q, want %q", entry.ETag, tt.wantETag)
			}
			if entry.LastModified.IsZero() == tt.wantStamp {
				t.Errorf("LastModified = %v, want set %v", entry.LastModified, tt.wantStamp)
			}
			if string(entry.Data) != `{"data":{}}` {
				t.Errorf("Data = %s", entry.Data)
			}
		})
	}

	if _, ok := NewEntry(nil, nil); ok {
		t.Error("NewEntry(nil) should not produce an entry")
	}
}

func TestFreshness(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	expires := now.Add(2 * time.Hour)

	tests := []struct {
		name   string
		header http.Header
		want   time.Time
		wantOK bool
	}{
		{
			name:   "max-age wins over expires",
			header: http.Header{"Cache-Control": {"max-age=30"}, "Expires": {expires.Format(http.TimeFormat)}},
			want:   now.Add(30 * time.Second),
			wantOK: true,
		},
		{
			name:   "expires",
			header: http.Header{"Expires": {expires.Format(http.TimeFormat)}},
			want:   expires,
			wantOK: true,
		},
		{
			name:   "no-cache",
			header: http.Header{"Cache-Control": {"No-Cache"}},
			wantOK: false,
		},
		{
			name:   "invalid max-age falls back to expires",
			header: http.Header{"Cache-Control": {"max-age=abc"}, "Expires": {expires.Format(http.TimeFormat)}},
			want:   expires,
			wantOK: true,
		},
		{
			name:   "invalid expires",
			header: http.Header{"Expires": {"0"}},
			wantOK: false,
		},
		{
			name:   "nothing",
			header: http.Header{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Freshness(tt.header, now)
			if ok != tt.wantOK {
				t.Fatalf("Freshness() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Freshness() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldRevalidate(t *testing.T) {
	tests := []struct {
		name  string
		entry *Entry
		want  bool
	}{
		{"nil", nil, false},
		{"etag", &Entry{ETag: `"x"`}, true},
		{"last-modified", &Entry{LastModified: time.Now()}, true},
		{"neither", &Entry{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldRevalidate(tt.entry); got != tt.want {
				t.Errorf("ShouldRevalidate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddConditionalHeaders(t *testing.T) {
	lastMod := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name          string
		entry         *Entry
		wantNoneMatch string
		wantModSince  string
	}{
		{
			name:          "etag preferred",
			entry:         &Entry{ETag: `"v2"`, LastModified: lastMod},
			wantNoneMatch: `"v2"`,
		},
		{
			name:         "last-modified",
			entry:        &Entry{LastModified: lastMod},
			wantModSince: "Tue, 02 Jan 2024 03:04:05 GMT",
		},
		{
			name:  "nil entry",
			entry: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			AddConditionalHeaders(header, tt.entry)
			if got := header.Get("If-None-Match"); got != tt.wantNoneMatch {
				t.Errorf("If-None-Match = %q, want %q", got, tt.wantNoneMatch)
			}
			if got := header.Get("If-Modified-Since"); got != tt.wantModSince {
				t.Errorf("If-Modified-Since = %q, want %q", got, tt.wantModSince)
			}
		})
	}
}
