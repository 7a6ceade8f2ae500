package observability

import "context"

// MultiObserver forwards each event to every attached observer, so a
// deployment can log turns through slog while also feeding a custom sink.
type MultiObserver struct {
	observers []Observer
}

// NewMultiObserver builds a MultiObserver from the given observers.
// Nil entries are dropped so optional sinks can be passed unconditionally.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	filtered := make([]Observer, 0, len(observers))
	for _, obs := range observers {
		if obs != nil {
			filtered = append(filtered, obs)
		}
	}
	return &MultiObserver{observers: filtered}
}

func (m *MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, obs := range m.observers {
		obs.OnEvent(ctx, event)
	}
}
