// Package paginate tracks search continuity across turns: the last search
// term and a monotonic page counter, independent of any single result set.
// Advancing the page and executing a search at the current page are two
// separately callable operations — the dialogue runtime triggers them from
// different actions, and repeated "next" taps must keep incrementing even
// when no new results were fetched in between.
package paginate

import (
	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/session"
)

// FirstPage is where every new search starts.
const FirstPage = 1

// Page returns the current search page, defaulting to the first page when
// the slot is absent or unparsable.
func Page(slots session.Slots) int {
	page, ok := slots.Int(session.SlotSearchPage)
	if !ok || page < FirstPage {
		return FirstPage
	}
	return page
}

// Term returns the stored search term, empty when absent.
func Term(slots session.Slots) string {
	term, _ := slots.String(session.SlotLastSearchString)
	return term
}

// StartNewSearch records keyword as the active search term and resets the
// page counter, regardless of its prior value.
func StartNewSearch(keyword string) []protocol.SlotEvent {
	return []protocol.SlotEvent{
		protocol.SetSlot(session.SlotLastSearchString, keyword),
		protocol.SetSlot(session.SlotSearchPage, FirstPage),
	}
}

// ContinueSearch returns the term an ongoing search should use: the stored
// term, or fallback when no term was ever stored. It never advances the
// page — that is AdvancePage's job.
func ContinueSearch(slots session.Slots, fallback string) string {
	if term := Term(slots); term != "" {
		return term
	}
	return fallback
}

// AdvancePage increments the page counter. An absent or unparsable counter
// advances to page 2, as if the first page had been shown.
func AdvancePage(slots session.Slots) protocol.SlotEvent {
	page, ok := slots.Int(session.SlotSearchPage)
	if !ok || page < FirstPage {
		page = FirstPage
	}
	return protocol.SetSlot(session.SlotSearchPage, page+1)
}

// ResetPage forces the counter back to the first page. Used when a
// brand-new search intent is detected, whatever the keyword.
func ResetPage() protocol.SlotEvent {
	return protocol.SetSlot(session.SlotSearchPage, FirstPage)
}
