package session

import "context"

// Store persists slots keyed by conversation id. Implementations must be
// safe for concurrent use across conversations; within one conversation the
// dialogue runtime serializes turns, so per-conversation writes never race.
type Store interface {
	// Slots returns all slots for the conversation. Unknown conversations
	// return an empty map, not an error.
	Slots(ctx context.Context, conversationID string) (Slots, error)

	// Set writes the given slot updates for the conversation. A null value
	// clears the corresponding slot. Untouched slots are preserved.
	Set(ctx context.Context, conversationID string, updates Slots) error

	// Delete removes the named slots, or the entire conversation when no
	// names are given.
	Delete(ctx context.Context, conversationID string, names ...string) error

	// Close releases any resources held by the store.
	Close() error
}
