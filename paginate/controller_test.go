package paginate_test

import (
	"testing"

	"github.com/delivio/actionserver/paginate"
	"github.com/delivio/actionserver/session"
)

func TestPage_Defaults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "absent", raw: "", want: 1},
		{name: "number", raw: "3", want: 3},
		{name: "numeric string", raw: `"4"`, want: 4},
		{name: "garbage", raw: `"next"`, want: 1},
		{name: "below first", raw: "0", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := session.Slots{}
			if tt.raw != "" {
				slots[session.SlotSearchPage] = []byte(tt.raw)
			}
			if got := paginate.Page(slots); got != tt.want {
				t.Errorf("Page = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStartNewSearch(t *testing.T) {
	slots := session.Slots{}
	slots.Set(session.SlotSearchPage, 7)

	events := paginate.StartNewSearch("milk")
	if len(events) != 2 {
		t.Fatalf("StartNewSearch emitted %d events, want 2", len(events))
	}
	for _, event := range events {
		slots[event.Name] = event.Value
	}

	if got := paginate.Term(slots); got != "milk" {
		t.Errorf("Term = %q, want %q", got, "milk")
	}
	if got := paginate.Page(slots); got != paginate.FirstPage {
		t.Errorf("Page after new search = %d, want %d", got, paginate.FirstPage)
	}
}

func TestAdvancePage_Monotonic(t *testing.T) {
	slots := session.Slots{}

	event := paginate.AdvancePage(slots)
	slots[event.Name] = event.Value
	if got := paginate.Page(slots); got != 2 {
		t.Fatalf("Page after first advance = %d, want 2", got)
	}

	event = paginate.AdvancePage(slots)
	slots[event.Name] = event.Value
	if got := paginate.Page(slots); got != 3 {
		t.Errorf("Page after second advance = %d, want 3", got)
	}
}

func TestAdvancePage_DoesNotTouchTerm(t *testing.T) {
	slots := session.Slots{}
	slots.Set(session.SlotLastSearchString, "milk")

	event := paginate.AdvancePage(slots)
	if event.Name != session.SlotSearchPage {
		t.Errorf("AdvancePage touched slot %q, want %q", event.Name, session.SlotSearchPage)
	}
}

func TestContinueSearch(t *testing.T) {
	slots := session.Slots{}
	slots.Set(session.SlotLastSearchString, "milk")
	slots.Set(session.SlotSearchPage, 3)

	if got := paginate.ContinueSearch(slots, "cheese"); got != "milk" {
		t.Errorf("ContinueSearch with stored term = %q, want %q", got, "milk")
	}
	if got := paginate.Page(slots); got != 3 {
		t.Errorf("ContinueSearch changed page to %d, want 3", got)
	}

	if got := paginate.ContinueSearch(session.Slots{}, "cheese"); got != "cheese" {
		t.Errorf("ContinueSearch without stored term = %q, want fallback %q", got, "cheese")
	}
}

func TestResetPage(t *testing.T) {
	slots := session.Slots{}
	slots.Set(session.SlotSearchPage, 9)

	event := paginate.ResetPage()
	slots[event.Name] = event.Value

	if got := paginate.Page(slots); got != paginate.FirstPage {
		t.Errorf("Page after reset = %d, want %d", got, paginate.FirstPage)
	}
}

func TestExtractKeyword(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "search for", text: "search for milk", want: "milk"},
		{name: "show me", text: "Show me fresh bread", want: "fresh bread"},
		{name: "find", text: "find eggs", want: "eggs"},
		{name: "i want", text: "I want organic apples", want: "organic apples"},
		{name: "no trigger", text: "milk", want: "milk"},
		{name: "no trigger multiword", text: "organic apples", want: "organic apples"},
		{name: "whitespace", text: "  milk  ", want: "milk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paginate.ExtractKeyword(tt.text); got != tt.want {
				t.Errorf("ExtractKeyword(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
