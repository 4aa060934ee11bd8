// Package cache provides the process-wide response cache with an optional
// persisted mirror in client storage.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lupon/admin-client/internal/infrastructure/storage"
	"github.com/lupon/admin-client/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// StoragePrefix namespaces mirrored entries inside client storage
const StoragePrefix = "cache:"

// Cache keeps JSON values in memory and optionally mirrors them into storage.
// Entries have no size bound; they leave the cache through expiry or Clear.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry

	store   storage.Storage
	logger  *zap.Logger
	metrics *telemetry.ClientMetrics
	now     func() time.Time
}

type cacheEntry struct {
	value     json.RawMessage
	expiresAt time.Time // zero means no expiry
}

func (e *cacheEntry) isExpired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// envelope is the persisted form: {"v": value, "e": expiryUnixMillis|null}
type envelope struct {
	Value     json.RawMessage `json:"v"`
	ExpiresAt *int64          `json:"e"`
}

// Option configures a Cache
type Option func(*Cache)

// WithLogger sets the logger for the cache
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithMetrics records hit/miss counters per tier
func WithMetrics(m *telemetry.ClientMetrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// WithClock replaces time.Now, used by tests to move past expiries
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// EntryOption configures a single Get or Set
type EntryOption func(*entryOptions)

type entryOptions struct {
	persist bool
	ttl     time.Duration
}

// Persisted mirrors the entry in storage on Set and consults the mirror on a Get miss
func Persisted() EntryOption {
	return func(o *entryOptions) {
		o.persist = true
	}
}

// WithTTL expires the entry after d. Zero or negative means no expiry.
func WithTTL(d time.Duration) EntryOption {
	return func(o *entryOptions) {
		o.ttl = d
	}
}

// New creates a cache. store may be nil, in which case Persisted is ignored.
func New(store storage.Storage, opts ...Option) *Cache {
	c := &Cache{
		items:  make(map[string]*cacheEntry),
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the raw JSON stored under key.
// Memory is consulted first; with Persisted the storage mirror is read on a
// miss, expired mirror entries are evicted and fresh ones repopulate memory.
func (c *Cache) Get(ctx context.Context, key string, opts ...EntryOption) (json.RawMessage, bool) {
	o := applyEntryOptions(opts)
	now := c.now()

	c.mu.Lock()
	if e, ok := c.items[key]; ok {
		if !e.isExpired(now) {
			c.mu.Unlock()
			c.recordHit(telemetry.TierMemory, key)
			return e.value, true
		}
		delete(c.items, key)
	}
	c.mu.Unlock()
	c.metrics.IncCacheLookup(telemetry.TierMemory, telemetry.ResultMiss)

	if !o.persist || c.store == nil {
		c.recordMiss(key)
		return nil, false
	}

	value, expiresAt, ok := c.readMirror(ctx, key, now)
	if !ok {
		c.recordMiss(key)
		return nil, false
	}

	c.mu.Lock()
	c.items[key] = &cacheEntry{value: value, expiresAt: expiresAt}
	c.mu.Unlock()

	c.recordHit(telemetry.TierStorage, key)
	return value, true
}

// Set marshals value to JSON and stores it in memory, and in the storage mirror with Persisted.
// Only a marshalling failure is returned; storage write errors are logged.
func (c *Cache) Set(ctx context.Context, key string, value any, opts ...EntryOption) error {
	o := applyEntryOptions(opts)

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache entry %q: %w", key, err)
	}

	entry := &cacheEntry{value: raw}
	if o.ttl > 0 {
		entry.expiresAt = c.now().Add(o.ttl)
	}

	c.mu.Lock()
	c.items[key] = entry
	c.mu.Unlock()

	if o.persist && c.store != nil {
		c.writeMirror(ctx, key, entry)
	}

	c.logger.Debug("cached entry",
		zap.String("key", key),
		zap.Bool("persisted", o.persist),
		zap.Duration("ttl", o.ttl))
	return nil
}

// Clear removes every memory entry whose key starts with prefix and every
// mirrored entry stored under cache:<prefix>. An empty prefix clears everything.
func (c *Cache) Clear(ctx context.Context, prefix string) {
	c.mu.Lock()
	removed := 0
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
			removed++
		}
	}
	c.mu.Unlock()

	if c.store != nil {
		keys, err := c.store.Keys(ctx, StoragePrefix+prefix)
		if err != nil {
			c.logger.Warn("failed to list mirrored cache entries",
				zap.String("prefix", prefix), zap.Error(err))
		}
		for _, k := range keys {
			if err := c.store.Delete(ctx, k); err != nil {
				c.logger.Warn("failed to delete mirrored cache entry",
					zap.String("key", k), zap.Error(err))
			}
		}
	}

	c.logger.Debug("cleared cache prefix", zap.String("prefix", prefix), zap.Int("memory_entries", removed))
}

// Len returns the number of entries in the memory tier
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close drops the memory tier. The storage is owned by the caller and stays open.
func (c *Cache) Close() error {
	c.mu.Lock()
	c.items = make(map[string]*cacheEntry)
	c.mu.Unlock()
	return nil
}

func (c *Cache) readMirror(ctx context.Context, key string, now time.Time) (json.RawMessage, time.Time, bool) {
	storageKey := StoragePrefix + key

	raw, ok, err := c.store.Get(ctx, storageKey)
	if err != nil {
		c.logger.Warn("failed to read mirrored cache entry", zap.String("key", key), zap.Error(err))
		return nil, time.Time{}, false
	}
	if !ok {
		c.metrics.IncCacheLookup(telemetry.TierStorage, telemetry.ResultMiss)
		return nil, time.Time{}, false
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		c.logger.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		c.deleteMirror(ctx, storageKey)
		return nil, time.Time{}, false
	}

	var expiresAt time.Time
	if env.ExpiresAt != nil {
		expiresAt = time.UnixMilli(*env.ExpiresAt)
		if now.After(expiresAt) {
			c.metrics.IncCacheLookup(telemetry.TierStorage, telemetry.ResultExpired)
			c.deleteMirror(ctx, storageKey)
			return nil, time.Time{}, false
		}
	}
	return env.Value, expiresAt, true
}

func (c *Cache) writeMirror(ctx context.Context, key string, e *cacheEntry) {
	env := envelope{Value: e.value}
	if !e.expiresAt.IsZero() {
		ms := e.expiresAt.UnixMilli()
		env.ExpiresAt = &ms
	}

	raw, err := json.Marshal(env)
	if err != nil {
		c.logger.Warn("failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, StoragePrefix+key, string(raw)); err != nil {
		c.logger.Warn("failed to mirror cache entry", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) deleteMirror(ctx context.Context, storageKey string) {
	if err := c.store.Delete(ctx, storageKey); err != nil {
		c.logger.Warn("failed to evict cache entry", zap.String("key", storageKey), zap.Error(err))
	}
}

func (c *Cache) recordHit(tier, key string) {
	c.metrics.IncCacheLookup(tier, telemetry.ResultHit)
	c.logger.Debug("cache hit", zap.String("tier", tier), zap.String("key", key))
}

func (c *Cache) recordMiss(key string) {
	c.logger.Debug("cache miss", zap.String("key", key))
}

func applyEntryOptions(opts []EntryOption) entryOptions {
	var o entryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
