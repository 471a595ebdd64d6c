package cache

import (
	"net/url"
	"sort"
	"strings"
)

// Key identifies a cached response.
type Key struct {
	// Path is the request path including the API version prefix
	// (e.g. "/v1/oracle/prices/current")
	Path string

	// Query holds the request's query parameters
	Query url.Values
}

// String generates a deterministic key string.
// Format: helium:path:param1=val1:param2=val2,val3
//
// Example:
//
//	helium:v1/accounts/rich:limit=10
func (k Key) String() string {
	parts := []string{"helium"}

	if path := strings.Trim(k.Path, "/"); path != "" {
		parts = append(parts, path)
	}

	// Query params sorted for determinism; repeated values keep their order
	if len(k.Query) > 0 {
		names := make([]string, 0, len(k.Query))
		for name := range k.Query {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			parts = append(parts, name+"="+strings.Join(k.Query[name], ","))
		}
	}

	return strings.Join(parts, ":")
}
