// Package resource holds what every resource service shares: the client
// surface they call, path building and read-through caching of listings.
package resource

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/lupon/admin-client/internal/infrastructure/cache"
)

// API is the part of the HTTP client used by the resource services.
// *client.Client implements it.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
	// Document fetches a rendered document; path is relative to the site root
	Document(ctx context.Context, path string) ([]byte, error)
}

// Path joins segments into an API path with the trailing slash the backend router expects.
// Path("ventas", 4, "reprogramar_entrega") is "/ventas/4/reprogramar_entrega/".
func Path(segments ...any) string {
	var b strings.Builder
	for _, s := range segments {
		part := strings.Trim(fmt.Sprint(s), "/")
		if part == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(part)
	}
	b.WriteByte('/')
	return b.String()
}

// CacheKey is prefix followed by the encoded query, e.g. "clientes:tipo=cliente"
func CacheKey(prefix string, query url.Values) string {
	return prefix + query.Encode()
}

// ListCached is a read-through GET of a listing.
// With useCache a cached copy is returned without a request; the fetched
// listing is always written back under key.
func ListCached[T any](ctx context.Context, api API, c *cache.Cache, key, path string, query url.Values, useCache bool, opts ...cache.EntryOption) ([]T, error) {
	if useCache && c != nil {
		if items, ok := cache.Load[[]T](ctx, c, key, opts...); ok {
			return items, nil
		}
	}

	var items []T
	if err := api.Get(ctx, path, query, &items); err != nil {
		return nil, err
	}

	if c != nil {
		if err := c.Set(ctx, key, items, opts...); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Status is the acknowledgement returned by the action endpoints
type Status struct {
	Status string `json:"status"`
}
