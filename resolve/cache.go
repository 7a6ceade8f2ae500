package resolve

import (
	"encoding/json"

	"github.com/delivio/actionserver/commerce"
	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/session"
)

// Cache snapshots one listing's candidates into a named slot. Each Snapshot
// fully overwrites the prior one — snapshots are never merged across
// queries, so an ordinal reference always resolves against exactly one
// listing. Decoding fails open: absent or unparsable state reads as empty
// and never surfaces as an error.
type Cache struct {
	Slot string
}

// Products is the cache for product listings.
func Products() Cache {
	return Cache{Slot: session.SlotRecentProducts}
}

// Stores is the cache for store listings.
func Stores() Cache {
	return Cache{Slot: session.SlotStoresList}
}

// Snapshot encodes the candidate list into a slot event that overwrites the
// prior snapshot. An empty list clears the slot.
func (c Cache) Snapshot(items []commerce.Record) protocol.SlotEvent {
	if len(items) == 0 {
		return protocol.ClearSlot(c.Slot)
	}
	return protocol.SetSlot(c.Slot, items)
}

// Candidates decodes the current snapshot from the slot map. It accepts
// both a bare JSON array and a JSON-string-wrapped array, since some
// dialogue runtimes stringify slot values. Anything undecodable is an empty
// snapshot.
func (c Cache) Candidates(slots session.Slots) []commerce.Record {
	raw, ok := slots.Raw(c.Slot)
	if !ok {
		return nil
	}

	if items, ok := decodeRecords(raw); ok {
		return items
	}

	// String-wrapped encoding: the slot holds a JSON string whose content
	// is itself a JSON array.
	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if items, ok := decodeRecords([]byte(wrapped)); ok {
			return items
		}
	}

	return nil
}

// Selection decodes a single stored record (a selected product or store)
// from the named slot, accepting the same encodings as Candidates.
func Selection(slots session.Slots, slot string) (commerce.Record, bool) {
	raw, ok := slots.Raw(slot)
	if !ok {
		return nil, false
	}

	var item commerce.Record
	if err := json.Unmarshal(raw, &item); err == nil && len(item) > 0 {
		return item, true
	}

	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if err := json.Unmarshal([]byte(wrapped), &item); err == nil && len(item) > 0 {
			return item, true
		}
	}

	return nil, false
}

func decodeRecords(data []byte) ([]commerce.Record, bool) {
	var items []commerce.Record
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}
