package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/observability"
	"github.com/delivio/actionserver/resolve"
	"github.com/delivio/actionserver/session"
)

// SelectProduct resolves the user's reply ("2", "milk") against the last
// product snapshot and records the pick. No match leaves all state
// untouched and prompts a retry.
type SelectProduct struct {
	Deps
}

func (a *SelectProduct) Name() string {
	return "action_select_product"
}

func (a *SelectProduct) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	if _, present := trk.Slots.Raw(session.SlotRecentProducts); !present {
		d.Say("I don't have any recently shown products to select from. Please search for products first.")
		return nil, nil
	}

	products := resolve.Products().Candidates(trk.Slots)
	if len(products) == 0 {
		// Slot present but undecodable: degrade to "no prior list".
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventSnapshotEmpty,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    a.Name(),
			Data:      map[string]any{"slot": session.SlotRecentProducts},
		})
		d.Say("Sorry, there was an internal error with product selection. Please show the categories/products again first.")
		return nil, nil
	}

	product, ok := resolve.Match(trk.Text, products)
	if !ok {
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventSelectionMiss,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    a.Name(),
			Data:      map[string]any{"candidates": len(products)},
		})
		d.Say("Sorry, I couldn't find a product matching your selection. Please try again.")
		return nil, nil
	}

	extras := []string{}
	if discount, ok := product.Discount(); ok {
		extras = append(extras, fmt.Sprintf("%g%% off", discount))
	}
	extras = append(extras, product.AvailabilityLabel()+" available")

	d.SayButtons(
		fmt.Sprintf(
			"You selected: %s\nPrice: %s\nType: %s\nStore: %s\nAvailability: %s\nDescription: %s\n\n"+
				"Would you like to add this product to your cart? Please say 'add to cart' or 'no'.",
			product.Title(),
			product.DisplayPrice(),
			product.ProductType(),
			product.StoreName(),
			strings.Join(extras, " | "),
			product.Description(),
		),
		protocol.Button{Title: "Add to cart", Payload: "Add to Cart"},
		protocol.Button{Title: "No", Payload: "No"},
	)

	return []protocol.SlotEvent{
		protocol.SetSlot(session.SlotSelectedProduct, product),
	}, nil
}
