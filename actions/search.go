package actions

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/delivio/actionserver/backend"
	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/observability"
	"github.com/delivio/actionserver/paginate"
	"github.com/delivio/actionserver/resolve"
	"github.com/delivio/actionserver/session"
)

// Entity types consumed by the search handlers.
const (
	entityProductCategory = "product_category"
	entityProductName     = "product_name"
)

// SearchProducts runs an entity-driven, single-page product search. A
// product_name entity wins over product_category.
type SearchProducts struct {
	Deps
}

func (a *SearchProducts) Name() string {
	return "action_search_products"
}

func (a *SearchProducts) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	term, ok := trk.Entity(entityProductName)
	if !ok {
		term, ok = trk.Entity(entityProductCategory)
	}
	if !ok {
		d.Say("Please specify a product name or category to search for.")
		return nil, nil
	}

	products, err := a.Backend.SearchProducts(ctx, backend.SearchQuery{
		Term:  term,
		Page:  1,
		Items: 10,
	})
	if err != nil {
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventBackendFail,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    a.Name(),
			Data:      map[string]any{"error": err.Error(), "term": term},
		})
		d.Say("Sorry, I couldn't fetch products right now.")
		return nil, nil
	}

	if len(products) == 0 {
		d.Say(fmt.Sprintf("No products found matching '%s'.", term))
		return nil, nil
	}

	top := products
	if len(top) > 5 {
		top = top[:5]
	}
	lines := make([]string, 0, len(top))
	for i, p := range top {
		lines = append(lines, productLine(i+1, p))
	}

	d.Say("Here are some products:\n" + strings.Join(lines, "\n") +
		"\n\nReply with the product number or name to select it.")

	// The full result set is snapshotted so name references can reach
	// products beyond the five displayed.
	return []protocol.SlotEvent{resolve.Products().Snapshot(products)}, nil
}

// ProductSearch is the paginated free-text search. A new-search intent
// extracts the keyword and resets the page; the next-page intent reuses the
// stored term at the current page. The page counter itself is advanced by
// NextProductPage, not here.
type ProductSearch struct {
	Deps
}

func (a *ProductSearch) Name() string {
	return "action_product_search"
}

func (a *ProductSearch) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	text := trk.TrimmedText()
	if text == "" {
		d.Say("Please tell me what product or category you want to search for.")
		return nil, nil
	}

	var term string
	page := paginate.Page(trk.Slots)

	switch trk.Intent {
	case protocol.IntentSearchProducts:
		term = paginate.ExtractKeyword(text)
		page = paginate.FirstPage
	default:
		// search_products_next and all fallback intents continue the
		// stored search, defaulting to the raw text when no search was
		// ever recorded.
		term = paginate.ContinueSearch(trk.Slots, text)
	}

	products, err := a.Backend.SearchProducts(ctx, backend.SearchQuery{
		Term:  term,
		Page:  page,
		Items: 5,
	})
	if err != nil {
		a.observer().OnEvent(ctx, observability.Event{
			Type:      EventBackendFail,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    a.Name(),
			Data:      map[string]any{"error": err.Error(), "term": term, "page": page},
		})
		d.Say("Sorry, I couldn't fetch products right now. Please try again.")
		return nil, nil
	}

	if len(products) == 0 {
		d.Say("Sorry, I couldn't find any products for your search. Please try a different keyword or category.")
		return []protocol.SlotEvent{
			resolve.Products().Snapshot(nil),
			paginate.ResetPage(),
			protocol.SetSlot(session.SlotLastSearchString, term),
		}, nil
	}

	lines := make([]string, 0, len(products))
	buttons := make([]protocol.Button, 0, len(products)+1)
	for i, p := range products {
		line := fmt.Sprintf("%d. %s\n%s", i+1, p.Title(), p.DisplayPrice())
		if desc, ok := p.String("description"); ok {
			line += "\n" + shorten(desc, 80)
		}
		lines = append(lines, line)

		num := strconv.Itoa(i + 1)
		buttons = append(buttons, protocol.Button{Title: num, Payload: num})
	}
	buttons = append(buttons, protocol.Button{Title: "Next", Payload: "next"})

	d.SayButtons(
		"Products found:\n\n"+strings.Join(lines, "\n\n")+
			"\n\nReply with the product number to see details, or type 'next' to see more options.",
		buttons...,
	)

	events := []protocol.SlotEvent{resolve.Products().Snapshot(products)}
	if trk.Intent == protocol.IntentSearchProducts {
		events = append(events, paginate.StartNewSearch(term)...)
	} else {
		events = append(events,
			protocol.SetSlot(session.SlotSearchPage, page),
			protocol.SetSlot(session.SlotLastSearchString, term),
		)
	}
	return events, nil
}
