// Package helium is the typed façade over the Helium blockchain API.
//
// Cursor-paged listings are returned as lazy streams; nothing is requested
// until the first item is pulled. Single-item lookups go through the
// client's optional response cache.
//
// Usage:
//
//	c, _ := client.New(client.DefaultConfig("MyApp/1.0 (me@example.com)"))
//	api := helium.New(c)
//	hotspots, err := pagination.Collect(ctx, pagination.Take(api.Accounts.Hotspots(addr), 10))
package helium

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Sternrassler/helium-api-client/pkg/client"
	"github.com/Sternrassler/helium-api-client/pkg/pagination"
	"github.com/google/go-querystring/query"
)

// API groups the resource accessors of one client.
type API struct {
	Accounts            *Accounts
	Blocks              *Blocks
	Hotspots            *Hotspots
	Validators          *Validators
	Oracle              *Oracle
	OUIs                *OUIs
	Transactions        *Transactions
	PendingTransactions *PendingTransactions
	Stats               *StatsService
	Vars                *Vars

	client *client.Client
}

// New returns the API façade for c.
func New(c *client.Client) *API {
	return &API{
		Accounts:            &Accounts{c: c},
		Blocks:              &Blocks{c: c},
		Hotspots:            &Hotspots{c: c},
		Validators:          &Validators{c: c},
		Oracle:              &Oracle{c: c},
		OUIs:                &OUIs{c: c},
		Transactions:        &Transactions{c: c},
		PendingTransactions: &PendingTransactions{c: c},
		Stats:               &StatsService{c: c},
		Vars:                &Vars{c: c},
		client:              c,
	}
}

// Client returns the underlying HTTP client.
func (a *API) Client() *client.Client {
	return a.client
}

// encodeQuery converts a query struct into URL values.
func encodeQuery(q any) (url.Values, error) {
	values, err := query.Values(q)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	return values, nil
}

// streamWith opens a stream whose first page carries q. An encoding failure
// surfaces on the stream's first Next.
func streamWith[T any](c *client.Client, path string, q any) *pagination.Stream[T] {
	values, err := encodeQuery(q)
	if err != nil {
		failed := func(context.Context, string, url.Values) (pagination.Page[T], error) {
			return pagination.Page[T]{}, err
		}
		return pagination.NewStream[T](pagination.FetchFunc[T](failed), path, nil)
	}
	return client.Stream[T](c, path, values)
}

// segment escapes a caller-supplied path segment.
func segment(s string) string {
	return url.PathEscape(s)
}
