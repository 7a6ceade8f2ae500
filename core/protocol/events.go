package protocol

import "encoding/json"

// EventSlot is the only event type the action server emits.
const EventSlot = "slot"

// SlotEvent instructs the runtime to set (or clear) one named slot.
// A JSON null Value clears the slot.
type SlotEvent struct {
	Event string          `json:"event"`
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

var jsonNull = json.RawMessage("null")

// SetSlot creates a slot event carrying the JSON encoding of value.
// Values that cannot be marshalled degrade to a clear (null) rather than
// failing the turn; every value the server emits is marshallable.
func SetSlot(name string, value any) SlotEvent {
	raw, err := json.Marshal(value)
	if err != nil {
		raw = jsonNull
	}
	return SlotEvent{Event: EventSlot, Name: name, Value: raw}
}

// ClearSlot creates a slot event that clears the named slot.
func ClearSlot(name string) SlotEvent {
	return SlotEvent{Event: EventSlot, Name: name, Value: jsonNull}
}

// IsClear reports whether the event clears its slot.
func (e SlotEvent) IsClear() bool {
	return len(e.Value) == 0 || string(e.Value) == "null"
}
