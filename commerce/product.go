package commerce

import (
	"fmt"
	"math"
)

// UnknownAvailability is shown when quantity fields are missing or
// non-numeric.
const UnknownAvailability = "Unknown"

// Title returns the product title, falling back to the backend's alternate
// product_name field, then a placeholder.
func (r Record) Title() string {
	if name := r.DisplayName(); name != "" {
		return name
	}
	return "Unnamed Product"
}

// ProductID returns the product identifier.
func (r Record) ProductID() (string, bool) {
	return r.String("product_id")
}

// ShipperID returns the shipper identifier.
func (r Record) ShipperID() (string, bool) {
	return r.String("shipper_id")
}

// Description returns the product description or a placeholder.
func (r Record) Description() string {
	if desc, ok := r.String("description"); ok {
		return desc
	}
	return "No description available."
}

// ProductType returns the product type or "Unknown".
func (r Record) ProductType() string {
	if t, ok := r.String("product_type"); ok {
		return t
	}
	return "Unknown"
}

// StoreName returns the selling store's name or a placeholder.
func (r Record) StoreName() string {
	if name, ok := r.String("store_name"); ok {
		return name
	}
	return "Unknown Store"
}

// Price returns the effective price: discounted_price when present and
// truthy, otherwise product_price. Not ok when neither parses.
func (r Record) Price() (float64, bool) {
	if price, ok := r.Number("discounted_price"); ok && price != 0 {
		return price, true
	}
	return r.Number("product_price")
}

// DisplayPrice renders the effective price, or "-" when no price parses.
func (r Record) DisplayPrice() string {
	price, ok := r.Price()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("$%.2f", price)
}

// Available derives the purchasable quantity: floor(quantity - ordered_qty).
// Not ok when either field is missing or non-numeric.
func (r Record) Available() (int, bool) {
	qty, ok := r.Number("quantity")
	if !ok {
		return 0, false
	}
	ordered, ok := r.Number("ordered_qty")
	if !ok {
		return 0, false
	}
	return int(math.Floor(qty - ordered)), true
}

// AvailabilityLabel renders the derived availability for display.
func (r Record) AvailabilityLabel() string {
	available, ok := r.Available()
	if !ok {
		return UnknownAvailability
	}
	return fmt.Sprintf("%d", available)
}

// Discount returns the discount percentage when present and positive.
func (r Record) Discount() (float64, bool) {
	discount, ok := r.Number("discount")
	if !ok || discount <= 0 {
		return 0, false
	}
	return discount, true
}
