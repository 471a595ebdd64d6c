package pagination

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds batch collector configuration
type Config struct {
	// MaxConcurrency is the maximum number of streams drained in parallel
	MaxConcurrency int
	// Timeout bounds the drain of a single stream (0 = no limit)
	Timeout time.Duration
}

// DefaultConfig returns a conservative configuration for the public API
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 4,
		Timeout:        2 * time.Minute,
	}
}

// BatchResult is the outcome of draining one stream
type BatchResult[T any] struct {
	Key   string
	Items []T
	Error error
}

// BatchCollector drains several independent streams with a worker pool.
// Each stream is owned by exactly one worker at a time; the only shared
// resource is the HTTP client behind the fetchers.
type BatchCollector[T any] struct {
	config Config
}

// NewBatchCollector creates a new batch collector
func NewBatchCollector[T any](config Config) *BatchCollector[T] {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 4
	}
	return &BatchCollector[T]{config: config}
}

// CollectAll drains every stream and returns the items keyed like the input.
// Streams that fail keep the items they yielded before the error; the first
// error encountered is returned alongside the partial results.
func (bc *BatchCollector[T]) CollectAll(ctx context.Context, streams map[string]Iterator[T]) (map[string][]T, error) {
	start := time.Now()
	results := make(map[string][]T, len(streams))
	if len(streams) == 0 {
		return results, nil
	}

	log.Info().
		Int("streams", len(streams)).
		Int("workers", bc.config.MaxConcurrency).
		Msg("Starting parallel stream collection")

	queue := make(chan string, len(streams))
	for key := range streams {
		queue <- key
	}
	close(queue)

	out := make(chan BatchResult[T], len(streams))

	var wg sync.WaitGroup
	workers := bc.config.MaxConcurrency
	if workers > len(streams) {
		workers = len(streams)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go bc.worker(ctx, streams, queue, out, &wg, i)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	var firstErr error
	failed := 0
	for result := range out {
		results[result.Key] = result.Items
		if result.Error != nil {
			failed++
			log.Warn().
				Err(result.Error).
				Str("key", result.Key).
				Int("items", len(result.Items)).
				Msg("Stream collection failed")
			if firstErr == nil {
				firstErr = result.Error
			}
		}
	}

	if firstErr != nil {
		return results, fmt.Errorf("collect streams (%d/%d failed): %w", failed, len(streams), firstErr)
	}

	log.Info().
		Int("streams", len(streams)).
		Dur("duration", time.Since(start)).
		Msg("Stream collection complete")

	return results, nil
}

// worker drains streams from the queue
func (bc *BatchCollector[T]) worker(ctx context.Context, streams map[string]Iterator[T], queue <-chan string, out chan<- BatchResult[T], wg *sync.WaitGroup, workerID int) {
	defer wg.Done()
	drained := 0

	for key := range queue {
		if err := ctx.Err(); err != nil {
			out <- BatchResult[T]{Key: key, Items: []T{}, Error: err}
			continue
		}

		streamCtx, cancel := ctx, context.CancelFunc(func() {})
		if bc.config.Timeout > 0 {
			streamCtx, cancel = context.WithTimeout(ctx, bc.config.Timeout)
		}
		items, err := Collect(streamCtx, streams[key])
		cancel()

		out <- BatchResult[T]{Key: key, Items: items, Error: err}
		drained++
	}

	log.Debug().
		Int("worker_id", workerID).
		Int("streams_drained", drained).
		Msg("Worker completed")
}
