package cache

import (
	"context"
	"encoding/json"
)

// Load reads key from c and decodes it into T.
// A value that no longer decodes into T is treated as a miss.
func Load[T any](ctx context.Context, c *Cache, key string, opts ...EntryOption) (T, bool) {
	var out T
	raw, ok := c.Get(ctx, key, opts...)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false
	}
	return out, true
}
