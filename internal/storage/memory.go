package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process key-value store. It backs tests and serves
// as the failover fallback when the primary store is unreachable.
type MemoryStore struct {
	data sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, ok := s.data.Load(key)
	if !ok {
		return nil, nil
	}
	// Copy both ways so callers cannot alias stored bytes.
	stored := val.([]byte)
	return append([]byte(nil), stored...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.data.Store(key, append([]byte(nil), value...))
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.data.Delete(key)
	return nil
}
