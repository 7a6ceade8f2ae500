package actions

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/observability"
	"github.com/delivio/actionserver/session"
)

// Checkout places an order for the user's cart. Checkout requires a real
// authenticated user id — the unauthenticated fallback never places orders.
type Checkout struct {
	Deps
}

func (a *Checkout) Name() string {
	return "action_checkout"
}

func (a *Checkout) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	userID, ok := trk.Slots.String(session.SlotUserID)
	if !ok {
		d.Say("Please log in to proceed to checkout.")
		return nil, nil
	}

	if err := a.Backend.CreateOrder(ctx, userID); err != nil {
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventBackendFail,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    a.Name(),
			Data:      map[string]any{"error": err.Error()},
		})
		// Failing to reach the backend at all reads differently from an
		// answer that declined the order (non-200 or unsuccessful).
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			d.Say("An error occurred during checkout.")
		} else {
			d.Say("Sorry, something went wrong while placing your order.")
		}
		return nil, nil
	}

	d.Say("Your order has been placed successfully!")
	return nil, nil
}
