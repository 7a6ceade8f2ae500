package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/observability"
)

const entityOrderID = "order_id"

// TrackOrder reports the delivery status of an order by id.
type TrackOrder struct {
	Deps
}

func (a *TrackOrder) Name() string {
	return "action_track_order"
}

func (a *TrackOrder) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	orderID, ok := trk.Entity(entityOrderID)
	if !ok {
		d.Say("Please provide your order ID to track it.")
		return nil, nil
	}

	status, err := a.Backend.OrderStatus(ctx, orderID)
	if err != nil {
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventBackendFail,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    a.Name(),
			Data:      map[string]any{"error": err.Error(), "order_id": orderID},
		})
		d.Say("Sorry, I couldn't fetch the order status.")
		return nil, nil
	}

	d.Say(fmt.Sprintf("Status of your order %s is: %s.", orderID, status))
	return nil, nil
}
