package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/delivio/actionserver/commerce"
)

// Category is one catalog category with its featured products.
type Category struct {
	Name     string
	Products []commerce.Record
}

// Categories lists catalog categories, each carrying its master products.
func (c *Client) Categories(ctx context.Context, zipcode string) ([]Category, error) {
	data, err := c.postEnvelope(ctx, "categories", "/getCategories", map[string]any{
		"zipcode": zipcode,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		GetCategories []struct {
			Name     string            `json:"name"`
			Products []commerce.Record `json:"getMasterProductOfCategory"`
		} `json:"getCategories"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("categories: %w: decode data: %w", ErrUnavailable, err)
	}

	categories := make([]Category, 0, len(payload.GetCategories))
	for _, cat := range payload.GetCategories {
		name := cat.Name
		if name == "" {
			name = "Unnamed Category"
		}
		categories = append(categories, Category{Name: name, Products: cat.Products})
	}
	return categories, nil
}

// SearchQuery parameterizes a product search.
type SearchQuery struct {
	Term    string
	Page    int
	Items   int
	UserID  string
	Zipcode string
}

// SearchProducts runs a paginated master-product search. The backend
// returns the product list either bare or wrapped in a getMasterProducts
// object; both decode.
func (c *Client) SearchProducts(ctx context.Context, query SearchQuery) ([]commerce.Record, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	items := query.Items
	if items < 1 {
		items = 10
	}

	data, err := c.postEnvelope(ctx, "search", "/getMasterProducts", map[string]any{
		"wh_account_id":  "",
		"upc":            "",
		"ai_category_id": "",
		"ai_product_id":  "",
		"product_id":     "",
		"search_string":  query.Term,
		"zipcode":        query.Zipcode,
		"user_id":        query.UserID,
		"page":           strconv.Itoa(page),
		"items":          strconv.Itoa(items),
	})
	if err != nil {
		return nil, err
	}

	var bare []commerce.Record
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	var wrapped struct {
		GetMasterProducts []commerce.Record `json:"getMasterProducts"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("search: %w: decode data: %w", ErrUnavailable, err)
	}
	return wrapped.GetMasterProducts, nil
}

// CartItem identifies a product to add to a user's cart.
type CartItem struct {
	UserID    string
	ProductID string
	ShipperID string
	Quantity  int
}

// AddToCart adds one product to the user's cart.
func (c *Client) AddToCart(ctx context.Context, item CartItem) error {
	quantity := item.Quantity
	if quantity < 1 {
		quantity = 1
	}

	_, err := c.postEnvelope(ctx, "add-to-cart", "/add-product-to-cart", map[string]any{
		"user_id":    item.UserID,
		"quantity":   quantity,
		"product_id": item.ProductID,
		"shipper_id": item.ShipperID,
	})
	return err
}

// Cart is the user's current cart: line items plus order-level metadata
// (subtotal, tax, delivery charge, total).
type Cart struct {
	Items []commerce.Record `json:"cartlist"`
	Meta  commerce.Record   `json:"orderMetaData"`
}

// ViewCart fetches the user's cart.
func (c *Client) ViewCart(ctx context.Context, userID string) (*Cart, error) {
	data, err := c.postEnvelope(ctx, "view-cart", "/cart-list", map[string]any{
		"user_id":   userID,
		"coupon_id": "",
	})
	if err != nil {
		return nil, err
	}

	var cart Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("view-cart: %w: decode data: %w", ErrUnavailable, err)
	}
	return &cart, nil
}

// CreateOrder places an order for the user's cart. This endpoint predates
// the envelope convention and reports a bare success flag.
func (c *Client) CreateOrder(ctx context.Context, userID string) error {
	var result struct {
		Success bool `json:"success"`
	}
	if err := c.postJSON(ctx, "create-order", "/orders/create", map[string]any{
		"user_id": userID,
	}, &result); err != nil {
		return err
	}

	if !result.Success {
		return &APIError{Op: "create-order"}
	}
	return nil
}

// OrderStatus fetches the delivery status line for an order. Unknown or
// missing statuses read as "Unknown".
func (c *Client) OrderStatus(ctx context.Context, orderID string) (string, error) {
	var result commerce.Record
	if err := c.getJSON(ctx, "order-status", "/orders/"+url.PathEscape(orderID), nil, &result); err != nil {
		return "", err
	}

	status, ok := result.String("status")
	if !ok {
		return "Unknown", nil
	}
	return status, nil
}

// Addresses fetches the user's saved delivery addresses.
func (c *Client) Addresses(ctx context.Context, userID, shipperID string, addressID int) ([]commerce.Record, error) {
	data, err := c.postEnvelope(ctx, "addresses", "/getAddress", map[string]any{
		"user_id":    userID,
		"shipper_id": shipperID,
		"address_id": addressID,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		AddressList []commerce.Record `json:"addressList"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("addresses: %w: decode data: %w", ErrUnavailable, err)
	}
	return payload.AddressList, nil
}

// NearestStores lists stores serving a zipcode, optionally filtered by a
// store-name search string.
func (c *Client) NearestStores(ctx context.Context, zipcode, term string) ([]commerce.Record, error) {
	query := url.Values{}
	query.Set("zipcode", zipcode)
	query.Set("search_string", term)

	var result struct {
		Stores []commerce.Record `json:"stores"`
	}
	if err := c.getJSON(ctx, "nearest-stores", "/getNearestStore", query, &result); err != nil {
		return nil, err
	}
	return result.Stores, nil
}

// PaymentStatus fetches the payment state of an order: "paid", "failed", or
// anything else meaning still processing.
func (c *Client) PaymentStatus(ctx context.Context, userID, orderID string) (string, error) {
	data, err := c.postEnvelope(ctx, "payment-status", "/bot-payment-status", map[string]any{
		"user_id":  userID,
		"order_id": orderID,
	})
	if err != nil {
		return "", err
	}

	var payload commerce.Record
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("payment-status: %w: decode data: %w", ErrUnavailable, err)
	}

	status, _ := payload.String("payment_status")
	return status, nil
}
