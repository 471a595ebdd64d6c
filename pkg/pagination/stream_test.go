package pagination

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"testing"
)

// scriptedFetcher serves a fixed sequence of pages and records every call.
type scriptedFetcher struct {
	pages   []Page[string]
	errAt   int // 1-based call number that fails, 0 = never
	err     error
	calls   int
	queries []url.Values
	paths   []string
}

func (f *scriptedFetcher) FetchPage(ctx context.Context, path string, query url.Values) (Page[string], error) {
	f.calls++
	f.queries = append(f.queries, query)
	f.paths = append(f.paths, path)

	if f.errAt == f.calls {
		return Page[string]{}, f.err
	}
	if f.calls > len(f.pages) {
		return Page[string]{}, errors.New("unexpected fetch")
	}
	return f.pages[f.calls-1], nil
}

func TestStream_TwoPages(t *testing.T) {
	fetcher := &scriptedFetcher{pages: []Page[string]{
		{Data: []string{"A", "B"}, Cursor: "x"},
		{Data: []string{"C"}},
	}}

	initial := url.Values{"min_time": []string{"-1 day"}}
	stream := NewStream[string](fetcher, "/accounts", initial)

	items, err := Collect[string](context.Background(), stream)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(items, want) {
		t.Errorf("items = %v, want %v", items, want)
	}
	if fetcher.calls != 2 {
		t.Errorf("fetch calls = %d, want 2", fetcher.calls)
	}

	// First page uses the caller's filters, the follow-up only the cursor
	if fetcher.queries[0].Get("min_time") != "-1 day" {
		t.Errorf("first query = %v, want caller filters", fetcher.queries[0])
	}
	if want := (url.Values{"cursor": []string{"x"}}); !reflect.DeepEqual(fetcher.queries[1], want) {
		t.Errorf("second query = %v, want %v", fetcher.queries[1], want)
	}
	for i, path := range fetcher.paths {
		if path != "/accounts" {
			t.Errorf("path[%d] = %q, want /accounts", i, path)
		}
	}
	if stream.State() != StateExhausted {
		t.Errorf("State() = %v, want exhausted", stream.State())
	}
}

func TestStream_OrderPreservation(t *testing.T) {
	fetcher := &scriptedFetcher{pages: []Page[string]{
		{Data: []string{"1", "2", "3"}, Cursor: "c1"},
		{Data: []string{"4"}, Cursor: "c2"},
		{Data: []string{"5", "6"}, Cursor: "c3"},
		{Data: []string{"7", "8", "9", "10"}},
	}}

	items, err := Collect[string](context.Background(), NewStream[string](fetcher, "/hotspots", nil))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	want := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("items = %v, want %v", items, want)
	}
	if fetcher.calls != 4 {
		t.Errorf("fetch calls = %d, want 4", fetcher.calls)
	}
}

func TestStream_EmptyFirstPage(t *testing.T) {
	fetcher := &scriptedFetcher{pages: []Page[string]{{Data: []string{}}}}

	items, err := Collect[string](context.Background(), NewStream[string](fetcher, "/ouis", nil))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %v, want empty", items)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetch calls = %d, want 1", fetcher.calls)
	}
}

func TestStream_SkipsEmptyPagesWithCursor(t *testing.T) {
	tests := []struct {
		name      string
		pages     []Page[string]
		want      []string
		wantCalls int
	}{
		{
			name: "empty pages before data",
			pages: []Page[string]{
				{Data: nil, Cursor: "a"},
				{Data: []string{}, Cursor: "b"},
				{Data: []string{"X", "Y"}},
			},
			want:      []string{"X", "Y"},
			wantCalls: 3,
		},
		{
			name: "empty pages between data",
			pages: []Page[string]{
				{Data: []string{"A"}, Cursor: "a"},
				{Data: []string{}, Cursor: "b"},
				{Data: []string{"B"}},
			},
			want:      []string{"A", "B"},
			wantCalls: 3,
		},
		{
			name: "trailing empty page terminates cleanly",
			pages: []Page[string]{
				{Data: []string{"A"}, Cursor: "a"},
				{Data: []string{}, Cursor: "b"},
				{Data: []string{}},
			},
			want:      []string{"A"},
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &scriptedFetcher{pages: tt.pages}

			items, err := Collect[string](context.Background(), NewStream[string](fetcher, "/accounts/x/activity", nil))
			if err != nil {
				t.Fatalf("Collect failed: %v", err)
			}
			if !reflect.DeepEqual(items, tt.want) {
				t.Errorf("items = %v, want %v", items, tt.want)
			}
			if fetcher.calls != tt.wantCalls {
				t.Errorf("fetch calls = %d, want %d", fetcher.calls, tt.wantCalls)
			}
		})
	}
}

func TestStream_Laziness(t *testing.T) {
	fetcher := &scriptedFetcher{pages: []Page[string]{
		{Data: []string{"A", "B"}, Cursor: "x"},
		{Data: []string{"C"}},
	}}

	stream := NewStream[string](fetcher, "/validators", nil)
	if fetcher.calls != 0 {
		t.Fatalf("fetch calls after construction = %d, want 0", fetcher.calls)
	}
	if stream.State() != StateFresh {
		t.Errorf("State() = %v, want fresh", stream.State())
	}

	ctx := context.Background()
	item, ok, err := stream.Next(ctx)
	if err != nil || !ok || item != "A" {
		t.Fatalf("Next() = %q, %v, %v; want A, true, nil", item, ok, err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetch calls after first Next = %d, want 1", fetcher.calls)
	}

	// Second item comes from the buffer
	if item, _, _ := stream.Next(ctx); item != "B" {
		t.Errorf("second item = %q, want B", item)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetch calls after buffered Next = %d, want 1", fetcher.calls)
	}
}

func TestStream_ErrorShortCircuit(t *testing.T) {
	boom := errors.New("boom")
	fetcher := &scriptedFetcher{
		pages: []Page[string]{
			{Data: []string{"A", "B"}, Cursor: "x"},
			{Data: []string{"C"}, Cursor: "y"},
			{Data: []string{"D"}},
		},
		errAt: 2,
		err:   boom,
	}

	stream := NewStream[string](fetcher, "/blocks/1/transactions", nil)
	items, err := Collect[string](context.Background(), stream)

	if !errors.Is(err, boom) {
		t.Fatalf("Collect error = %v, want boom", err)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(items, want) {
		t.Errorf("items = %v, want %v", items, want)
	}
	if fetcher.calls != 2 {
		t.Errorf("fetch calls = %d, want 2 (no retry)", fetcher.calls)
	}
	if stream.State() != StateFailed {
		t.Errorf("State() = %v, want failed", stream.State())
	}
	if !errors.Is(stream.Err(), boom) {
		t.Errorf("Err() = %v, want boom", stream.Err())
	}
}

func TestStream_TerminalErrorReturnedOnce(t *testing.T) {
	boom := errors.New("boom")
	fetcher := &scriptedFetcher{errAt: 1, err: boom}
	stream := NewStream[string](fetcher, "/hotspots", nil)
	ctx := context.Background()

	if _, ok, err := stream.Next(ctx); ok || !errors.Is(err, boom) {
		t.Fatalf("first Next() = %v, %v; want false, boom", ok, err)
	}

	for i := 0; i < 3; i++ {
		_, ok, err := stream.Next(ctx)
		if ok || err != nil {
			t.Errorf("Next() after failure = %v, %v; want false, nil", ok, err)
		}
	}
	if fetcher.calls != 1 {
		t.Errorf("fetch calls = %d, want 1", fetcher.calls)
	}
}

func TestStream_ExhaustedDoesNoIO(t *testing.T) {
	fetcher := &scriptedFetcher{pages: []Page[string]{{Data: []string{"A"}}}}
	stream := NewStream[string](fetcher, "/ouis", nil)
	ctx := context.Background()

	if _, ok, _ := stream.Next(ctx); !ok {
		t.Fatal("expected one item")
	}
	// Draining the last item of the last page exhausts the stream immediately
	if stream.State() != StateExhausted {
		t.Errorf("State() = %v, want exhausted", stream.State())
	}

	for i := 0; i < 3; i++ {
		if _, ok, err := stream.Next(ctx); ok || err != nil {
			t.Errorf("Next() after exhaustion = %v, %v", ok, err)
		}
	}
	if fetcher.calls != 1 {
		t.Errorf("fetch calls = %d, want 1", fetcher.calls)
	}
}

func TestStream_Close(t *testing.T) {
	fetcher := &scriptedFetcher{pages: []Page[string]{
		{Data: []string{"A", "B"}, Cursor: "x"},
		{Data: []string{"C"}},
	}}
	stream := NewStream[string](fetcher, "/hotspots", nil)
	ctx := context.Background()

	if _, ok, _ := stream.Next(ctx); !ok {
		t.Fatal("expected first item")
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, ok, err := stream.Next(ctx); ok || err != nil {
		t.Errorf("Next() after Close = %v, %v; want false, nil", ok, err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetch calls = %d, want 1", fetcher.calls)
	}
	if stream.State() != StateClosed {
		t.Errorf("State() = %v, want closed", stream.State())
	}
}

func TestStream_ContextCancelled(t *testing.T) {
	fetcher := FetchFunc[string](func(ctx context.Context, path string, query url.Values) (Page[string], error) {
		if err := ctx.Err(); err != nil {
			return Page[string]{}, err
		}
		return Page[string]{Data: []string{"A"}, Cursor: "more"}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	stream := NewStream[string](fetcher, "/accounts", nil)

	if _, ok, err := stream.Next(ctx); !ok || err != nil {
		t.Fatalf("first Next() = %v, %v", ok, err)
	}

	cancel()
	if _, _, err := stream.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Next() after cancel error = %v, want context.Canceled", err)
	}
	if _, ok, err := stream.Next(context.Background()); ok || err != nil {
		t.Errorf("Next() after terminal error = %v, %v", ok, err)
	}
}

func TestStream_Pages(t *testing.T) {
	fetcher := &scriptedFetcher{pages: []Page[string]{
		{Data: []string{}, Cursor: "a"},
		{Data: []string{"A"}},
	}}
	stream := NewStream[string](fetcher, "/oracle/prices", nil)
	if _, err := Collect[string](context.Background(), stream); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if stream.Pages() != 2 {
		t.Errorf("Pages() = %d, want 2", stream.Pages())
	}
	if stream.Path() != "/oracle/prices" {
		t.Errorf("Path() = %q", stream.Path())
	}
}

func TestItems(t *testing.T) {
	boom := errors.New("boom")
	fetcher := &scriptedFetcher{
		pages: []Page[string]{{Data: []string{"A", "B"}, Cursor: "x"}},
		errAt: 2,
		err:   boom,
	}

	var got []string
	var gotErr error
	for item, err := range Items[string](context.Background(), NewStream[string](fetcher, "/hotspots", nil)) {
		if err != nil {
			gotErr = err
			break
		}
		got = append(got, item)
	}

	if !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("items = %v", got)
	}
	if !errors.Is(gotErr, boom) {
		t.Errorf("error = %v, want boom", gotErr)
	}
}

func TestStateString(t *testing.T) {
	if StateBuffered.String() != "buffered" || State(99).String() != "unknown" {
		t.Error("unexpected state names")
	}
}
