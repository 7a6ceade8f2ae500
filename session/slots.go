// Package session stores per-conversation slots. A slot is a named,
// JSON-serializable value owned by one conversation; slots persist across
// turns until overwritten or cleared and never cross conversation
// boundaries. Lifecycle is entirely turn-driven — the dialogue runtime
// decides when a conversation is discarded.
package session

import (
	"encoding/json"
	"strconv"
)

// Well-known slot names shared by the turn handlers.
const (
	SlotRecentProducts   = "recent_products"
	SlotSelectedProduct  = "selected_product"
	SlotSearchPage       = "search_page"
	SlotLastSearchString = "last_search_string"
	SlotStoresList       = "stores_list"
	SlotSelectedStore    = "selected_store"
	SlotUserID           = "user_id"
	SlotZipcode          = "zipcode"
	SlotLastZipcode      = "last_zipcode"
	SlotStoreContext     = "store_context"
	SlotOrderID          = "order_id"
)

// Slots is one conversation's slot map. Values are raw JSON; typed reads are
// explicit coercion sites that fail soft (zero value, false) on absent or
// malformed data.
type Slots map[string]json.RawMessage

// Raw returns the raw JSON value of a slot. A stored JSON null reads as
// absent.
func (s Slots) Raw(name string) (json.RawMessage, bool) {
	raw, ok := s[name]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

// String reads a slot as a string. Numeric values are accepted and
// stringified, matching runtimes that store numbers in text slots.
func (s Slots) String(name string) (string, bool) {
	raw, ok := s.Raw(name)
	if !ok {
		return "", false
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str, true
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return strconv.FormatFloat(num, 'f', -1, 64), true
	}

	return "", false
}

// Int reads a slot as an integer, accepting both JSON numbers and numeric
// strings.
func (s Slots) Int(name string) (int, bool) {
	raw, ok := s.Raw(name)
	if !ok {
		return 0, false
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return int(num), true
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if n, err := strconv.Atoi(str); err == nil {
			return n, true
		}
	}

	return 0, false
}

// Set stores the JSON encoding of value under name. Unmarshallable values
// clear the slot instead of failing.
func (s Slots) Set(name string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		raw = json.RawMessage("null")
	}
	s[name] = raw
}

// Clone returns a deep copy of the slot map.
func (s Slots) Clone() Slots {
	copied := make(Slots, len(s))
	for name, raw := range s {
		dup := make(json.RawMessage, len(raw))
		copy(dup, raw)
		copied[name] = dup
	}
	return copied
}

// Merge overlays updates onto s, with updates winning on conflicts.
// Null values in updates clear the corresponding slot.
func (s Slots) Merge(updates Slots) {
	for name, raw := range updates {
		if len(raw) == 0 || string(raw) == "null" {
			delete(s, name)
			continue
		}
		s[name] = raw
	}
}
