package observability

import "context"

// NoOpObserver drops every event. It is the default sink when a deployment
// wants webhook turns handled without any telemetry.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(ctx context.Context, event Event) {}
