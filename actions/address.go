package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/observability"
)

// defaultAddressID matches the staging backend's canned address record.
const defaultAddressID = 306

// GetAddress shows the user's primary delivery address and offers to
// proceed to payment.
type GetAddress struct {
	Deps
}

func (a *GetAddress) Name() string {
	return "action_get_address"
}

func (a *GetAddress) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	userID, err := a.Identity.Resolve(trk.Slots)
	if err != nil {
		d.Say("Please log in to view your addresses.")
		return nil, nil
	}

	addresses, err := a.Backend.Addresses(ctx, userID, "", defaultAddressID)
	if err != nil {
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventBackendFail,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    a.Name(),
			Data:      map[string]any{"error": err.Error()},
		})
		d.Say("Sorry, I couldn't fetch your address details right now.")
		return nil, nil
	}

	if len(addresses) == 0 {
		d.Say("No addresses found for your account.")
		return nil, nil
	}

	address := addresses[0]
	field := func(key string) string {
		v, _ := address.String(key)
		return v
	}

	title := field("address_name")
	if title == "" {
		title = "Home"
	}

	message := fmt.Sprintf("%s\n\n%s\n%s", title, field("name"), field("address"))
	if line2 := field("address2"); line2 != "" {
		message += "\n" + line2
	}
	message += fmt.Sprintf("\n%s, %s, %s\n%s\n\nPhone: %s",
		field("city"), field("state"), field("zip"), field("country_name"), field("phone"))

	d.Say(message)
	d.SayButtons(
		"Would you like to proceed with this address?",
		protocol.Button{Title: "Pay Now", Payload: "Pay Now"},
	)
	return nil, nil
}
