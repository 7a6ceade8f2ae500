package actions

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/delivio/actionserver/backend"
	"github.com/delivio/actionserver/commerce"
	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/observability"
	"github.com/delivio/actionserver/resolve"
	"github.com/delivio/actionserver/session"
)

// AddToCart puts the previously selected product into the user's cart.
type AddToCart struct {
	Deps
}

func (a *AddToCart) Name() string {
	return "action_add_to_cart"
}

func (a *AddToCart) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	userID, err := a.Identity.Resolve(trk.Slots)
	if err != nil {
		d.Say("Please log in to add products to your cart.")
		return nil, nil
	}

	product, ok := resolve.Selection(trk.Slots, session.SlotSelectedProduct)
	if !ok {
		d.Say("You have not selected a product to add. Please select a product first.")
		return nil, nil
	}

	productID, okProduct := product.ProductID()
	shipperID, okShipper := product.ShipperID()
	if !okProduct || !okShipper {
		d.Say("Selected product information incomplete.")
		return nil, nil
	}

	err = a.Backend.AddToCart(ctx, backend.CartItem{
		UserID:    userID,
		ProductID: productID,
		ShipperID: shipperID,
		Quantity:  1,
	})
	if err != nil {
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventBackendFail,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    a.Name(),
			Data:      map[string]any{"error": err.Error(), "product_id": productID},
		})
		if msg, ok := backend.UserMessage(err); ok {
			d.Say(msg)
		} else {
			d.Say("An error occurred while adding to cart.")
		}
		return nil, nil
	}

	d.Say(fmt.Sprintf("%s has been added to your cart.", product.Title()))
	d.SayButtons(
		"Would you want to view your cart?",
		protocol.Button{Title: "Yes", Payload: "View Cart"},
		protocol.Button{Title: "No", Payload: "No"},
	)
	return nil, nil
}

// ViewCart shows the cart lines plus the order totals the backend computed.
type ViewCart struct {
	Deps
}

func (a *ViewCart) Name() string {
	return "action_view_cart"
}

// cartLinePrice renders a cart line's unit price: the discounted price when
// it parses, else the backend's raw price field, else "-".
func cartLinePrice(item commerce.Record) string {
	if price, ok := item.Number("discounted_price"); ok {
		return strconv.FormatFloat(price, 'f', -1, 64)
	}
	if raw, ok := item.String("price"); ok {
		return raw
	}
	return "-"
}

func (a *ViewCart) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	userID, err := a.Identity.Resolve(trk.Slots)
	if err != nil {
		d.Say("Please log in to view your cart.")
		return nil, nil
	}

	cart, err := a.Backend.ViewCart(ctx, userID)
	if err != nil {
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventBackendFail,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    a.Name(),
			Data:      map[string]any{"error": err.Error()},
		})
		if msg, ok := backend.UserMessage(err); ok {
			d.Say(msg)
		} else {
			d.Say("Sorry, I couldn't retrieve your cart details right now.")
		}
		return nil, nil
	}

	if len(cart.Items) == 0 {
		d.Say("Your cart is empty.")
		return nil, nil
	}

	lines := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		qty := 1.0
		if n, ok := item.Number("quantity"); ok {
			qty = n
		}
		discount := "0"
		if raw, ok := item.String("discount"); ok {
			discount = raw
		}
		lines = append(lines, fmt.Sprintf("- %s (Qty: %g, Price: $%s, Discount: %s%%)",
			item.Title(), qty, cartLinePrice(item), discount))
	}

	var totals []string
	addTotal := func(label, key string, skipZero bool) {
		raw, ok := cart.Meta.String(key)
		if !ok {
			return
		}
		if skipZero {
			if n, numOK := cart.Meta.Number(key); !numOK || n <= 0 {
				return
			}
		}
		totals = append(totals, fmt.Sprintf("%s: $%s", label, raw))
	}
	addTotal("Subtotal", "sub_total_amount", false)
	addTotal("Discount", "discount_amount", true)
	addTotal("Tax", "tax", true)
	addTotal("Delivery Fee", "total_delivery_charge", true)
	addTotal("Cart Total", "total", false)

	message := "Your cart:\n" + strings.Join(lines, "\n")
	if len(totals) > 0 {
		message += "\n\n" + strings.Join(totals, "\n")
	}

	d.SayButtons(
		message,
		protocol.Button{Title: "View your Addresses", Payload: "View Address"},
		protocol.Button{Title: "No", Payload: "No"},
	)
	return nil, nil
}
