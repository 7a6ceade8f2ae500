package actions

import (
	"context"
	"strings"
	"time"

	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/observability"
	"github.com/delivio/actionserver/session"
)

// CheckPaymentStatus reports whether the hosted payment for the current
// order went through.
type CheckPaymentStatus struct {
	Deps
}

func (a *CheckPaymentStatus) Name() string {
	return "action_check_payment_status"
}

func (a *CheckPaymentStatus) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	userID, ok := trk.Slots.String(session.SlotUserID)
	if !ok {
		userID = "0"
	}
	orderID, ok := trk.Slots.String(session.SlotOrderID)
	if !ok {
		orderID = "0"
	}

	status, err := a.Backend.PaymentStatus(ctx, userID, orderID)
	if err != nil {
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventBackendFail,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    a.Name(),
			Data:      map[string]any{"error": err.Error(), "order_id": orderID},
		})
		d.Say("Sorry, I couldn't check your payment status right now.")
		return nil, nil
	}

	switch strings.ToLower(status) {
	case "":
		d.Say("Sorry, I couldn't find your payment status.")
	case "paid":
		d.Say("Your payment was successful! Thank you.")
	case "failed":
		d.Say("Your payment failed. Please try again or contact support.")
	default:
		d.Say("Your payment is still processing. Please wait and check again.")
	}
	return nil, nil
}
