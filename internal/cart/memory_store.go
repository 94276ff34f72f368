package cart

import (
	"context"
	"sync"
)

// MemoryStore is the in-process fallback used when Redis is disabled,
// and the store of choice in tests. It keeps the same two serialized
// slots per owner as the Redis store, so the decode path is shared.
type MemoryStore struct {
	mu        sync.RWMutex
	items     map[string]string
	wholesale map[string]string
}

// NewMemoryStore returns an empty in-memory cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:     make(map[string]string),
		wholesale: make(map[string]string),
	}
}

// LoadItems reads and parses the items slot.
func (s *MemoryStore) LoadItems(_ context.Context, owner string) ([]LineItem, bool, error) {
	s.mu.RLock()
	payload, ok := s.items[owner]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	items, ok := decodeItems(owner, payload)
	return items, ok, nil
}

// SaveItems writes the items slot.
func (s *MemoryStore) SaveItems(_ context.Context, owner string, items []LineItem) error {
	payload, err := encodeItems(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items[owner] = payload
	s.mu.Unlock()
	return nil
}

// LoadWholesale reads and parses the pricing-mode slot.
func (s *MemoryStore) LoadWholesale(_ context.Context, owner string) (bool, bool, error) {
	s.mu.RLock()
	payload, ok := s.wholesale[owner]
	s.mu.RUnlock()
	if !ok {
		return false, false, nil
	}
	on, ok := decodeWholesale(owner, payload)
	return on, ok, nil
}

// SaveWholesale writes the pricing-mode slot.
func (s *MemoryStore) SaveWholesale(_ context.Context, owner string, on bool) error {
	s.mu.Lock()
	s.wholesale[owner] = encodeWholesale(on)
	s.mu.Unlock()
	return nil
}

// Clear removes both slots for owner.
func (s *MemoryStore) Clear(_ context.Context, owner string) error {
	s.mu.Lock()
	delete(s.items, owner)
	delete(s.wholesale, owner)
	s.mu.Unlock()
	return nil
}

// SeedItems plants a raw payload in the items slot. Test hook for
// malformed-state behavior.
func (s *MemoryStore) SeedItems(owner, payload string) {
	s.mu.Lock()
	s.items[owner] = payload
	s.mu.Unlock()
}

// SeedWholesale plants a raw payload in the pricing-mode slot.
func (s *MemoryStore) SeedWholesale(owner, payload string) {
	s.mu.Lock()
	s.wholesale[owner] = payload
	s.mu.Unlock()
}
