package resolve_test

import (
	"testing"

	"github.com/delivio/actionserver/commerce"
	"github.com/delivio/actionserver/resolve"
	"github.com/delivio/actionserver/session"
)

func listing() []commerce.Record {
	return []commerce.Record{
		{"title": "Milk 1L", "product_id": "p1"},
		{"title": "Bread", "product_id": "p2"},
		{"title": "Eggs", "product_id": "p3"},
	}
}

func TestMatch_Ordinal(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantID string
		wantOK bool
	}{
		{name: "first", text: "1", wantID: "p1", wantOK: true},
		{name: "second", text: "2", wantID: "p2", wantOK: true},
		{name: "last", text: "3", wantID: "p3", wantOK: true},
		{name: "whitespace trimmed", text: "  2  ", wantID: "p2", wantOK: true},
		{name: "out of range", text: "7", wantOK: false},
		{name: "zero", text: "0", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolve.Match(tt.text, listing())
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if id, _ := got.ProductID(); id != tt.wantID {
				t.Errorf("Match(%q) = %v, want product %q", tt.text, got, tt.wantID)
			}
		})
	}
}

func TestMatch_Substring(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantID string
		wantOK bool
	}{
		{name: "exact lowercase", text: "milk", wantID: "p1", wantOK: true},
		{name: "case insensitive", text: "MILK", wantID: "p1", wantOK: true},
		{name: "partial", text: "read", wantID: "p2", wantOK: true},
		{name: "no match", text: "cheese", wantOK: false},
		{name: "empty", text: "   ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolve.Match(tt.text, listing())
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok {
				if id, _ := got.ProductID(); id != tt.wantID {
					t.Errorf("Match(%q) product = %q, want %q", tt.text, id, tt.wantID)
				}
			}
		})
	}
}

func TestMatch_FirstWins(t *testing.T) {
	candidates := []commerce.Record{
		{"title": "Whole Milk", "product_id": "a"},
		{"title": "Almond Milk", "product_id": "b"},
	}

	got, ok := resolve.Match("milk", candidates)
	if !ok {
		t.Fatal("Match(milk) did not resolve")
	}
	if id, _ := got.ProductID(); id != "a" {
		t.Errorf("Match(milk) product = %q, want first candidate %q", id, "a")
	}
}

func TestMatch_EmptyCandidates(t *testing.T) {
	if _, ok := resolve.Match("1", nil); ok {
		t.Error("Match against empty candidates resolved, want miss")
	}
}

func TestCache_SnapshotOverwrites(t *testing.T) {
	cache := resolve.Products()
	slots := session.Slots{}

	first := cache.Snapshot(listing())
	slots[first.Name] = first.Value

	second := cache.Snapshot([]commerce.Record{{"title": "Cheese", "product_id": "p9"}})
	slots[second.Name] = second.Value

	candidates := cache.Candidates(slots)
	if len(candidates) != 1 {
		t.Fatalf("candidates after overwrite = %d, want 1", len(candidates))
	}
	if id, _ := candidates[0].ProductID(); id != "p9" {
		t.Errorf("surviving candidate = %q, want %q", id, "p9")
	}
}

func TestCache_SnapshotEmptyClears(t *testing.T) {
	cache := resolve.Products()
	event := cache.Snapshot(nil)
	if !event.IsClear() {
		t.Error("Snapshot(nil) event is not a clear")
	}
	if event.Name != session.SlotRecentProducts {
		t.Errorf("Snapshot slot = %q, want %q", event.Name, session.SlotRecentProducts)
	}
}

func TestCache_CandidatesFailOpen(t *testing.T) {
	cache := resolve.Products()
	tests := []struct {
		name string
		raw  string
	}{
		{name: "absent slot", raw: ""},
		{name: "garbage", raw: `"not json at all`},
		{name: "wrong shape", raw: `{"title":"Milk"}`},
		{name: "null", raw: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := session.Slots{}
			if tt.raw != "" {
				slots[session.SlotRecentProducts] = []byte(tt.raw)
			}
			if got := cache.Candidates(slots); len(got) != 0 {
				t.Errorf("Candidates = %v, want empty", got)
			}
		})
	}
}

func TestCache_CandidatesStringWrapped(t *testing.T) {
	cache := resolve.Stores()
	slots := session.Slots{}
	slots.Set(session.SlotStoresList, `[{"name":"Corner Shop","address":"1 Main St"}]`)

	candidates := cache.Candidates(slots)
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if name := candidates[0].Name(); name != "Corner Shop" {
		t.Errorf("candidate name = %q, want %q", name, "Corner Shop")
	}
}

func TestSelection(t *testing.T) {
	slots := session.Slots{}
	slots.Set(session.SlotSelectedProduct, commerce.Record{"title": "Milk 1L", "product_id": "p1"})

	got, ok := resolve.Selection(slots, session.SlotSelectedProduct)
	if !ok {
		t.Fatal("Selection did not decode a stored record")
	}
	if id, _ := got.ProductID(); id != "p1" {
		t.Errorf("selection product = %q, want %q", id, "p1")
	}

	if _, ok := resolve.Selection(session.Slots{}, session.SlotSelectedProduct); ok {
		t.Error("Selection on empty slots decoded, want miss")
	}
}
