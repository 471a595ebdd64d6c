package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/Sternrassler/helium-api-client/pkg/pagination"
	"github.com/tidwall/gjson"
)

// errMissingData is wrapped in a DecodeError when a body has no "data" field.
var errMissingData = errors.New(`envelope has no "data" field`)

// FetchPage performs one GET for one page of path and decodes its envelope.
// It never consults the response cache and never follows the cursor.
func FetchPage[T any](ctx context.Context, c *Client, path string, query url.Values) (pagination.Page[T], error) {
	body, err := c.getBody(ctx, path, query, false)
	if err != nil {
		return pagination.Page[T]{}, err
	}

	var page pagination.Page[T]
	if err := decodeEnvelope(body, &page); err != nil {
		return pagination.Page[T]{}, decodeError(path, err)
	}
	return page, nil
}

// PageFetcher returns a pagination.PageFetcher that fetches pages of T with c.
func PageFetcher[T any](c *Client) pagination.FetchFunc[T] {
	return func(ctx context.Context, path string, query url.Values) (pagination.Page[T], error) {
		return FetchPage[T](ctx, c, path, query)
	}
}

// Stream returns a lazy stream over the cursor-paged resource at path.
// No request is made until the first item is pulled.
func Stream[T any](c *Client, path string, query url.Values) *pagination.Stream[T] {
	return pagination.NewStream[T](PageFetcher[T](c), path, query)
}

// Fetch performs a single-item GET and unwraps the envelope's data field.
// Fresh responses may be served from the cache when one is configured.
func Fetch[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var zero T

	body, err := c.getBody(ctx, path, query, true)
	if err != nil {
		return zero, err
	}

	var env struct {
		Data T `json:"data"`
	}
	if err := decodeEnvelope(body, &env); err != nil {
		return zero, decodeError(path, err)
	}
	return env.Data, nil
}

// FetchValue performs a single-item GET and returns the envelope's data field
// for ad hoc access.
func FetchValue(ctx context.Context, c *Client, path string, query url.Values) (gjson.Result, error) {
	body, err := c.getBody(ctx, path, query, true)
	if err != nil {
		return gjson.Result{}, err
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, decodeError(path, errors.New("response body is not valid JSON"))
	}
	data := gjson.GetBytes(body, "data")
	if !data.Exists() {
		return gjson.Result{}, decodeError(path, errMissingData)
	}
	return data, nil
}

// Post sends payload as JSON to path and unwraps the envelope of the response.
// Posts are never retried.
func Post[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	var zero T

	body, err := c.postJSON(ctx, path, payload)
	if err != nil {
		return zero, err
	}

	var env struct {
		Data T `json:"data"`
	}
	if err := decodeEnvelope(body, &env); err != nil {
		return zero, decodeError(path, err)
	}
	return env.Data, nil
}

// decodeEnvelope unmarshals body into out after checking the envelope has a
// data field.
func decodeEnvelope(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return err
	}
	if !gjson.GetBytes(body, "data").Exists() {
		return errMissingData
	}
	return nil
}
