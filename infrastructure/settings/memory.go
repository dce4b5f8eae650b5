package settings

import (
	"context"
	"path"
	"sync"
)

// InMemoryStore is a map-backed Store used by tests and local development
// without Redis. Pattern matching in Keys follows the same glob semantics
// Redis SCAN uses for the patterns this service issues ("prefix:*").
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{items: make(map[string]string)}
}

func (s *InMemoryStore) Get(ctx context.Context, clientKey, key string) (string, bool, error) {
	return s.RawGet(ctx, ScopedKey(clientKey, key))
}

func (s *InMemoryStore) Set(ctx context.Context, clientKey, key, value string) error {
	return s.RawSet(ctx, ScopedKey(clientKey, key), value)
}

func (s *InMemoryStore) Del(ctx context.Context, clientKey, key string) error {
	return s.RawDel(ctx, ScopedKey(clientKey, key))
}

func (s *InMemoryStore) RawGet(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.items[key]
	return val, ok, nil
}

func (s *InMemoryStore) RawSet(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

func (s *InMemoryStore) RawDel(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

func (s *InMemoryStore) Keys(_ context.Context, pattern string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.items {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Len reports the number of stored keys. Test helper.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}
