package pagination

import (
	"context"
	"iter"
	"net/url"

	"github.com/rs/zerolog/log"
)

// Iterator provides pull-based sequential access to typed items.
type Iterator[T any] interface {
	// Next returns the next item. It returns (zero, false, nil) once the
	// sequence is exhausted.
	Next(ctx context.Context) (T, bool, error)
}

// State is the lifecycle state of a Stream.
type State int

const (
	// StateFresh means no page has been fetched yet.
	StateFresh State = iota
	// StateBuffered means fetched items are waiting to be yielded, or a
	// cursor for further pages is held.
	StateBuffered
	// StateExhausted means no items and no cursor remain.
	StateExhausted
	// StateFailed means a fetch failed; the error has been handed out.
	StateFailed
	// StateClosed means the consumer released the stream early.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateBuffered:
		return "buffered"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Stream is a lazy, singly-consumed sequence over a cursor-paged resource.
//
// A Stream is owned by one consumer and is not safe for concurrent Next
// calls. Independent streams may run concurrently.
type Stream[T any] struct {
	fetcher PageFetcher[T]
	path    string
	query   url.Values

	// pending[next:] are fetched items not yet yielded.
	pending []T
	next    int
	cursor  string

	started bool
	state   State
	err     error
	pages   int
}

// NewStream creates a stream over path. The first page is requested with
// query; later pages carry only the server's cursor. No request is made until
// the first call to Next.
func NewStream[T any](fetcher PageFetcher[T], path string, query url.Values) *Stream[T] {
	return &Stream[T]{
		fetcher: fetcher,
		path:    path,
		query:   query,
		state:   StateFresh,
	}
}

// Next returns the next item, fetching further pages as needed.
//
// A fetch failure is returned exactly once and ends the stream; later calls
// return (zero, false, nil) without any I/O, as do calls after exhaustion or
// Close.
func (s *Stream[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	for {
		switch s.state {
		case StateExhausted, StateFailed, StateClosed:
			return zero, false, nil
		}

		// Step 1: Yield from the buffer
		if s.next < len(s.pending) {
			item := s.pending[s.next]
			s.pending[s.next] = zero
			s.next++
			if s.next == len(s.pending) {
				s.pending, s.next = nil, 0
				if s.cursor == "" {
					s.state = StateExhausted
				}
			}
			StreamItems.Inc()
			return item, true, nil
		}

		// Step 2: Nothing buffered and no cursor after the first page
		if s.started && s.cursor == "" {
			s.state = StateExhausted
			return zero, false, nil
		}

		// Step 3: Fetch the initial page or follow the cursor. Empty pages
		// that still carry a cursor loop back here.
		if err := s.fetch(ctx); err != nil {
			return zero, false, err
		}
	}
}

// fetch requests the next page and buffers its items.
func (s *Stream[T]) fetch(ctx context.Context) error {
	query := s.query
	if s.started {
		query = cursorQuery(s.cursor)
	}

	page, err := s.fetcher.FetchPage(ctx, s.path, query)
	s.started = true
	if err != nil {
		s.state = StateFailed
		s.err = err
		s.pending, s.next, s.cursor = nil, 0, ""
		StreamErrors.Inc()

		log.Debug().
			Err(err).
			Str("path", s.path).
			Int("page", s.pages+1).
			Msg("Stream terminated by fetch error")
		return err
	}

	s.pages++
	StreamPages.Inc()
	s.pending, s.next = page.Data, 0
	s.cursor = page.Cursor
	s.state = StateBuffered

	log.Debug().
		Str("path", s.path).
		Int("page", s.pages).
		Int("items", len(page.Data)).
		Bool("has_cursor", page.HasCursor()).
		Msg("Fetched page")

	return nil
}

// Close releases the stream. No further requests are made and buffered
// items are dropped.
func (s *Stream[T]) Close() error {
	if s.state != StateExhausted && s.state != StateFailed {
		s.state = StateClosed
	}
	s.pending, s.next, s.cursor = nil, 0, ""
	return nil
}

// State returns the current lifecycle state.
func (s *Stream[T]) State() State {
	return s.state
}

// Err returns the error that terminated the stream, if any.
func (s *Stream[T]) Err() error {
	return s.err
}

// Pages returns the number of pages fetched successfully so far.
func (s *Stream[T]) Pages() int {
	return s.pages
}

// Path returns the resource path the stream reads.
func (s *Stream[T]) Path() string {
	return s.path
}

// Items adapts an iterator to a range-over-func sequence. A terminal error is
// yielded once as the final pair.
func Items[T any](ctx context.Context, it Iterator[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, ok, err := it.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok {
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}
