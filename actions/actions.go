// Package actions implements the turn handlers of the conversational
// commerce assistant. Each action consumes the tracker for one turn (latest
// user text, detected intent and entities, current slots), talks to the
// commerce backend where needed, and produces slot events plus outbound
// messages. Actions never fail the conversation: backend trouble and
// unresolvable references become user-facing prompts, and slots are left
// untouched on every error path.
package actions

import (
	"context"

	"github.com/delivio/actionserver/backend"
	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/identity"
	"github.com/delivio/actionserver/observability"
)

// Action is one named turn handler.
type Action interface {
	// Name is the wire name the dialogue runtime dispatches on.
	Name() string
	// Run executes the turn. Slot events describe state updates for the
	// runtime; a non-nil error signals an infrastructure fault, not a
	// conversational dead end.
	Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error)
}

// Deps carries the collaborators shared by the handlers.
type Deps struct {
	Backend  *backend.Client
	Identity identity.Resolver
	Observer observability.Observer
}

func (d Deps) observer() observability.Observer {
	if d.Observer == nil {
		return observability.NoOpObserver{}
	}
	return d.Observer
}

// Action event types.
const (
	EventSelectionMiss observability.EventType = "action.selection.miss"
	EventSnapshotEmpty observability.EventType = "action.snapshot.empty"
	EventBackendFail   observability.EventType = "action.backend.failure"
)

// RegisterAll registers every handler on the registry.
func RegisterAll(reg *Registry, deps Deps) error {
	handlers := []Action{
		&ShowCategories{deps},
		&SearchProducts{deps},
		&ProductSearch{deps},
		&SelectProduct{deps},
		&AddToCart{deps},
		&ViewCart{deps},
		&Checkout{deps},
		&TrackOrder{deps},
		&GetAddress{deps},
		&CheckPaymentStatus{deps},
		&NearestStore{deps},
		&SetSelectedStore{deps},
		&RecallPreviousLocation{deps},
		&NextProductPage{deps},
		&ResetSearchPage{deps},
		&ValidateZipcode{deps},
	}

	for _, handler := range handlers {
		if err := reg.Register(handler); err != nil {
			return err
		}
	}
	return nil
}
