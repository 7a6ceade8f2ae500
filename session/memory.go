package session

import (
	"context"
	"sync"
)

// memoryStore implements Store with a mutex-guarded map. Reads return
// defensive copies so callers can mutate their view freely.
type memoryStore struct {
	mu            sync.RWMutex
	conversations map[string]Slots
}

// NewMemoryStore creates an in-process Store. State does not survive
// restarts; intended for tests and single-instance deployments.
func NewMemoryStore() Store {
	return &memoryStore{
		conversations: make(map[string]Slots),
	}
}

func (s *memoryStore) Slots(ctx context.Context, conversationID string) (Slots, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slots, ok := s.conversations[conversationID]
	if !ok {
		return Slots{}, nil
	}
	return slots.Clone(), nil
}

func (s *memoryStore) Set(ctx context.Context, conversationID string, updates Slots) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, ok := s.conversations[conversationID]
	if !ok {
		slots = make(Slots, len(updates))
		s.conversations[conversationID] = slots
	}
	slots.Merge(updates.Clone())
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, conversationID string, names ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(names) == 0 {
		delete(s.conversations, conversationID)
		return nil
	}

	slots, ok := s.conversations[conversationID]
	if !ok {
		return nil
	}
	for _, name := range names {
		delete(slots, name)
	}
	return nil
}

// Close drops all conversations. The store stays usable, so a late turn
// racing a shutdown writes into an empty store instead of panicking.
func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = make(map[string]Slots)
	return nil
}
