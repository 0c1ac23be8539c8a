package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

type MemoryStore struct {
	records map[string][]byte

	mu sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	v := make([]byte, len(value))
	copy(v, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = v
	return nil
}

func (s *MemoryStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0)
	for k := range s.records {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
