package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lupon/admin-client/internal/infrastructure/storage"
	"github.com/lupon/admin-client/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type producto struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// testClock is a settable clock
type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time           { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCache(t *testing.T) (*Cache, *storage.MemoryStorage, *testClock) {
	t.Helper()
	store := storage.NewMemoryStorage()
	clock := &testClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return New(store, WithClock(clock.Now)), store, clock
}

func TestCache_SetThenGet(t *testing.T) {
	c, store, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "contactos:", []producto{{ID: 1, Nombre: "Pollo"}}))

	raw, ok := c.Get(ctx, "contactos:")
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":1,"nombre":"Pollo"}]`, string(raw))

	// not persisted without the option
	assert.Equal(t, 0, store.Len())
}

func TestCache_PersistedEnvelope(t *testing.T) {
	c, store, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "productos:", []int{1, 2}, Persisted(), WithTTL(24*time.Hour)))

	raw, ok, err := store.Get(ctx, "cache:productos:")
	require.NoError(t, err)
	require.True(t, ok)

	expiry := clock.now.Add(24 * time.Hour).UnixMilli()
	assert.JSONEq(t, `{"v":[1,2],"e":`+jsonInt(expiry)+`}`, raw)
}

func TestCache_PersistedWithoutTTL(t *testing.T) {
	c, store, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "proveedores:", "x", Persisted()))

	raw, _, err := store.Get(ctx, "cache:proveedores:")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":"x","e":null}`, raw)
}

func TestCache_MirrorRepopulatesMemory(t *testing.T) {
	store := storage.NewMemoryStorage()
	ctx := context.Background()

	first := New(store)
	require.NoError(t, first.Set(ctx, "clientes:tipo=cliente", []int{7}, Persisted(), WithTTL(time.Hour)))

	// a fresh process sees only storage
	second := New(store)
	_, ok := second.Get(ctx, "clientes:tipo=cliente")
	assert.False(t, ok, "memory-only lookup must not read the mirror")

	raw, ok := second.Get(ctx, "clientes:tipo=cliente", Persisted())
	require.True(t, ok)
	assert.JSONEq(t, `[7]`, string(raw))
	assert.Equal(t, 1, second.Len())
}

func TestCache_ExpiredMirrorIsEvicted(t *testing.T) {
	c, store, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "productos:nombre=pan", []int{1}, Persisted(), WithTTL(time.Minute)))
	require.NoError(t, c.Close())

	clock.Advance(2 * time.Minute)

	_, ok := c.Get(ctx, "productos:nombre=pan", Persisted())
	assert.False(t, ok)

	_, found, err := store.Get(ctx, "cache:productos:nombre=pan")
	require.NoError(t, err)
	assert.False(t, found, "expired entry should be removed from storage")
}

func TestCache_MemoryEntryExpires(t *testing.T) {
	c, _, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, WithTTL(time.Second)))
	_, ok := c.Get(ctx, "k")
	require.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_UnreadableMirrorIsDiscarded(t *testing.T) {
	c, store, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cache:productos:", "{not json"))

	_, ok := c.Get(ctx, "productos:", Persisted())
	assert.False(t, ok)

	_, found, _ := store.Get(ctx, "cache:productos:")
	assert.False(t, found)
}

func TestCache_Clear(t *testing.T) {
	c, store, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "productos:", 1, Persisted()))
	require.NoError(t, c.Set(ctx, "productos:nombre=pan", 2, Persisted()))
	require.NoError(t, c.Set(ctx, "contactos:", 3))
	require.NoError(t, store.Set(ctx, "auth:access_token", "tok"))

	c.Clear(ctx, "productos:")

	for _, k := range []string{"productos:", "productos:nombre=pan"} {
		_, ok := c.Get(ctx, k, Persisted())
		assert.False(t, ok, k)
	}
	_, ok := c.Get(ctx, "contactos:")
	assert.True(t, ok)

	// storage entries outside the cache namespace survive
	_, found, _ := store.Get(ctx, "auth:access_token")
	assert.True(t, found)
	assert.Equal(t, 1, store.Len())
}

func TestCache_StorageErrorsAreIgnored(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := New(failingStorage{}, WithLogger(zap.New(core)))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "productos:", []int{1}, Persisted()))

	raw, ok := c.Get(ctx, "productos:", Persisted())
	require.True(t, ok, "memory tier still serves the value")
	assert.JSONEq(t, `[1]`, string(raw))

	_, ok = c.Get(ctx, "missing", Persisted())
	assert.False(t, ok)

	assert.NotPanics(t, func() { c.Clear(ctx, "productos:") })
	assert.GreaterOrEqual(t, logs.Len(), 3)
}

func TestCache_NilStorage(t *testing.T) {
	c := New(nil)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", Persisted()))
	_, ok := c.Get(ctx, "k", Persisted())
	assert.True(t, ok)
	c.Clear(ctx, "")
	assert.Equal(t, 0, c.Len())
}

func TestCache_SetRejectsUnencodableValue(t *testing.T) {
	c := New(nil)
	err := c.Set(context.Background(), "k", make(chan int))
	assert.Error(t, err)
}

func TestCache_LookupMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(storage.NewMemoryStorage(), WithMetrics(telemetry.NewClientMetrics(reg)))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1))
	c.Get(ctx, "a")
	c.Get(ctx, "b")

	expected := `
# HELP lupon_cache_lookups_total Cache lookups by tier and result.
# TYPE lupon_cache_lookups_total counter
lupon_cache_lookups_total{result="hit",tier="memory"} 1
lupon_cache_lookups_total{result="miss",tier="memory"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "lupon_cache_lookups_total"))
}

func TestLoad(t *testing.T) {
	c := New(nil)
	ctx := context.Background()

	want := []producto{{ID: 3, Nombre: "Muslo"}}
	require.NoError(t, c.Set(ctx, "productos:", want))

	got, ok := Load[[]producto](ctx, c, "productos:")
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = Load[map[string]int](ctx, c, "productos:")
	assert.False(t, ok, "shape mismatch is a miss")

	_, ok = Load[[]producto](ctx, c, "missing")
	assert.False(t, ok)
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

var errStorageDown = errors.New("storage down")

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errStorageDown
}
func (failingStorage) Set(context.Context, string, string) error { return errStorageDown }
func (failingStorage) Delete(context.Context, string) error      { return errStorageDown }
func (failingStorage) Keys(context.Context, string) ([]string, error) {
	return nil, errStorageDown
}
func (failingStorage) Close() error { return nil }
