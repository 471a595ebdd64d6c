package pagination

import (
	"context"
	"net/url"
)

// CursorParam is the query parameter that carries a continuation cursor.
const CursorParam = "cursor"

// Page is one decoded response envelope.
type Page[T any] struct {
	// Data holds the page's items in server order.
	Data []T `json:"data"`

	// Cursor is the opaque continuation token. Empty when no further pages exist.
	Cursor string `json:"cursor,omitempty"`
}

// HasCursor reports whether another page may follow.
func (p Page[T]) HasCursor() bool {
	return p.Cursor != ""
}

// PageFetcher performs exactly one request for one page of a resource.
type PageFetcher[T any] interface {
	// FetchPage fetches path with the given query and decodes its envelope.
	FetchPage(ctx context.Context, path string, query url.Values) (Page[T], error)
}

// FetchFunc adapts a function to the PageFetcher interface.
type FetchFunc[T any] func(ctx context.Context, path string, query url.Values) (Page[T], error)

// FetchPage calls f(ctx, path, query).
func (f FetchFunc[T]) FetchPage(ctx context.Context, path string, query url.Values) (Page[T], error) {
	return f(ctx, path, query)
}

// cursorQuery builds the query for a follow-up page: the cursor and nothing else.
func cursorQuery(cursor string) url.Values {
	return url.Values{CursorParam: []string{cursor}}
}
