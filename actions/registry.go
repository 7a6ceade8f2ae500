package actions

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps action names to handlers. Thread-safe for concurrent
// lookups while turns are being served.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Action
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Action),
	}
}

// Register adds a handler under its own name.
// Returns ErrAlreadyExists when the name is taken.
func (r *Registry) Register(action Action) error {
	name := action.Name()
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}

	r.entries[name] = action
	return nil
}

// Get retrieves a handler by name.
func (r *Registry) Get(name string) (Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	action, exists := r.entries[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return action, nil
}

// List returns all registered action names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
