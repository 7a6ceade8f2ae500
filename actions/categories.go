package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/delivio/actionserver/commerce"
	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/observability"
	"github.com/delivio/actionserver/resolve"
)

const productsPerCategory = 5

// ShowCategories lists catalog categories with up to five products each,
// numbered globally so a follow-up ordinal picks across the whole listing.
type ShowCategories struct {
	Deps
}

func (a *ShowCategories) Name() string {
	return "action_show_categories_with_products"
}

func (a *ShowCategories) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	categories, err := a.Backend.Categories(ctx, "")
	if err != nil {
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventBackendFail,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    a.Name(),
			Data:      map[string]any{"error": err.Error()},
		})
		d.Say("Sorry, I couldn't fetch categories right now.")
		return nil, nil
	}

	if len(categories) == 0 {
		d.Say("Sorry, no categories found.")
		return nil, nil
	}

	var shown []commerce.Record
	var sections []string
	idx := 1 // global numbering across categories
	for _, category := range categories {
		products := category.Products
		if len(products) > productsPerCategory {
			products = products[:productsPerCategory]
		}

		var body string
		if len(products) == 0 {
			body = "No products available"
		} else {
			lines := make([]string, 0, len(products))
			for _, p := range products {
				lines = append(lines, productLine(idx, p))
				shown = append(shown, p)
				idx++
			}
			body = strings.Join(lines, "\n")
		}
		sections = append(sections, fmt.Sprintf("Category: %s\n%s", category.Name, body))
	}

	d.Say(strings.Join(sections, "\n\n") + "\n\nReply with the product number or name to select it.")

	return []protocol.SlotEvent{resolve.Products().Snapshot(shown)}, nil
}
