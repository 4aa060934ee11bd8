package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultScanBatchSize = 100

// RedisStorage stores entries as plain Redis strings under a key prefix.
// It lets several client processes share one session and cache mirror.
type RedisStorage struct {
	client     *redis.Client
	keyPrefix  string
	ownsClient bool
}

// NewRedisStorage connects to Redis and verifies the connection
func NewRedisStorage(addr, password string, db int, keyPrefix string) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	s := NewRedisStorageWithClient(client, keyPrefix)
	s.ownsClient = true
	return s, nil
}

// NewRedisStorageWithClient uses an existing client. The caller keeps ownership of it.
func NewRedisStorageWithClient(client *redis.Client, keyPrefix string) *RedisStorage {
	return &RedisStorage{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

// Keys scans the namespace with SCAN so large databases are not blocked
func (s *RedisStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	pattern := escapeGlob(s.keyPrefix+prefix) + "*"
	keys := make([]string, 0)

	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning keys with prefix %q: %w", prefix, err)
		}
		for _, k := range batch {
			keys = append(keys, strings.TrimPrefix(k, s.keyPrefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	sort.Strings(keys)
	return keys, nil
}

// Close closes the Redis client when this store created it
func (s *RedisStorage) Close() error {
	if !s.ownsClient {
		return nil
	}
	return s.client.Close()
}

func escapeGlob(s string) string {
	return strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`).Replace(s)
}

var _ Storage = (*RedisStorage)(nil)
