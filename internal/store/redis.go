package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

const redisNamespace = "ifcalc:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, dbIndex int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           dbIndex,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, false, err
	}
	val, err := s.client.Get(ctx, redisNamespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get record %q: %w", key, err)
	}
	return val, true, nil
}

// Put stores records without expiry; daily logs are kept until overwritten.
func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisNamespace+key, value, 0).Err(); err != nil {
		return fmt.Errorf("put record %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)
	seen := map[string]bool{}
	iter := s.client.Scan(ctx, 0, scanPattern(prefix), 100).Iterator()
	for iter.Next(ctx) {
		// SCAN may return a key more than once.
		k := iter.Val()[len(redisNamespace):]
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// scanPattern matches every namespaced key starting with prefix. Glob
// metacharacters in prefix are escaped so they match literally.
func scanPattern(prefix string) string {
	var b strings.Builder
	b.WriteString(redisNamespace)
	for _, r := range prefix {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('*')
	return b.String()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
