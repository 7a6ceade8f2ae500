// Package identity resolves the backend user id for a conversation.
package identity

import (
	"errors"

	"github.com/delivio/actionserver/session"
)

// DefaultFallbackID is the staging stand-in for unauthenticated sessions.
// Production deployments disable the fallback by configuring an empty one.
const DefaultFallbackID = "253"

// ErrNoIdentity is returned when no user id is present and the fallback is
// disabled.
var ErrNoIdentity = errors.New("no user identity in session")

// Resolver maps session state to a backend user id.
type Resolver struct {
	// FallbackID is used when the session carries no valid user id.
	// Empty disables the fallback, making Resolve fail instead.
	FallbackID string
}

// Default returns a Resolver with the staging fallback enabled.
func Default() Resolver {
	return Resolver{FallbackID: DefaultFallbackID}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Resolve returns the user id for the conversation: the user_id slot when it
// holds a non-empty digit string, otherwise the configured fallback.
func (r Resolver) Resolve(slots session.Slots) (string, error) {
	if id, ok := slots.String(session.SlotUserID); ok && isDigits(id) {
		return id, nil
	}
	if r.FallbackID == "" {
		return "", ErrNoIdentity
	}
	return r.FallbackID, nil
}
