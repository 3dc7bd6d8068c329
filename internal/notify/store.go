// Package notify decides which notable events get announced. A notable event is
// announced once per dedupe window even when the same score is saved repeatedly or
// several server instances handle writes for the same competition.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store claims announcement keys. Claim returns true only for the first caller
// within the store's window.
type Store interface {
	Claim(ctx context.Context, key string) (bool, error)
}

// MemoryStore is a bounded, expiring Store for a single instance.
type MemoryStore struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, struct{}]
}

// NewMemoryStore keeps at most size keys, each for ttl.
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: expirable.NewLRU[string, struct{}](size, nil, ttl)}
}

func (s *MemoryStore) Claim(_ context.Context, key string) (bool, error) {
	// Get and Add are individually safe; the lock makes the pair atomic.
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache.Get(key); ok {
		return false, nil
	}
	s.cache.Add(key, struct{}{})
	return true, nil
}
