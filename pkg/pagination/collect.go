package pagination

import (
	"context"
)

// Collect drains it into a slice in yield order. On failure it returns the
// items yielded before the error together with that error.
func Collect[T any](ctx context.Context, it Iterator[T]) ([]T, error) {
	items := make([]T, 0)
	for {
		item, ok, err := it.Next(ctx)
		if err != nil {
			return items, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
	}
}

// Limited yields at most n items from an underlying iterator.
type Limited[T any] struct {
	it        Iterator[T]
	remaining int
}

// Take bounds it to n items. Once n items have been yielded the underlying
// iterator is not pulled again, so no further pages are fetched.
func Take[T any](it Iterator[T], n int) *Limited[T] {
	if n < 0 {
		n = 0
	}
	return &Limited[T]{it: it, remaining: n}
}

// Next implements Iterator.
func (l *Limited[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if l.remaining <= 0 {
		return zero, false, nil
	}
	item, ok, err := l.it.Next(ctx)
	if err != nil || !ok {
		l.remaining = 0
		return zero, false, err
	}
	l.remaining--
	return item, true, nil
}
