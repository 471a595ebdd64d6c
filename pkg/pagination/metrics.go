package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StreamPages tracks pages fetched by streams
	StreamPages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "helium_stream_pages_total",
			Help: "Total number of pages fetched by pagination streams",
		},
	)

	// StreamItems tracks items yielded by streams
	StreamItems = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "helium_stream_items_total",
			Help: "Total number of items yielded by pagination streams",
		},
	)

	// StreamErrors tracks streams terminated by a fetch error
	StreamErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "helium_stream_errors_total",
			Help: "Total number of pagination streams terminated by an error",
		},
	)
)
