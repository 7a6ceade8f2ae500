package actions

import (
	"context"

	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/paginate"
)

// NextProductPage bumps the search page counter. It does not run a search —
// the follow-up search action reads the advanced counter on its turn, and
// repeated taps keep advancing even when no fetch happened in between.
type NextProductPage struct {
	Deps
}

func (a *NextProductPage) Name() string {
	return "action_next_product_page"
}

func (a *NextProductPage) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	return []protocol.SlotEvent{paginate.AdvancePage(trk.Slots)}, nil
}

// ResetSearchPage rewinds the page counter to the first page.
type ResetSearchPage struct {
	Deps
}

func (a *ResetSearchPage) Name() string {
	return "action_reset_search_page"
}

func (a *ResetSearchPage) Run(ctx context.Context, trk *Tracker, d *Dispatcher) ([]protocol.SlotEvent, error) {
	return []protocol.SlotEvent{paginate.ResetPage()}, nil
}
