// Package protocol defines the webhook wire types exchanged with the
// dialogue runtime. The runtime posts one request per turn carrying the
// tracker (slots, latest message, detected intent and entities); the action
// server answers with slot events and outbound messages.
package protocol

import "encoding/json"

// Intent is the intent detected by the runtime's NLU for the latest message.
type Intent struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Intent names with dedicated handling; every other name is treated as
// continue/fallback by the handlers that inspect intents.
const (
	IntentSearchProducts     = "search_products"
	IntentSearchProductsNext = "search_products_next"
)

// Entity is a single entity extracted from the latest user message.
type Entity struct {
	Entity string `json:"entity"`
	Value  string `json:"value"`
}

// LatestMessage carries the raw user text plus NLU annotations for the turn.
type LatestMessage struct {
	Text     string   `json:"text"`
	Intent   Intent   `json:"intent"`
	Entities []Entity `json:"entities,omitempty"`
}

// Tracker is the runtime's view of the conversation at the start of a turn.
// Slot values are arbitrary JSON and pass through undecoded.
type Tracker struct {
	SenderID      string                     `json:"sender_id"`
	Slots         map[string]json.RawMessage `json:"slots,omitempty"`
	LatestMessage LatestMessage              `json:"latest_message"`
}

// WebhookRequest is the body of POST /webhook.
type WebhookRequest struct {
	NextAction string  `json:"next_action"`
	SenderID   string  `json:"sender_id"`
	Tracker    Tracker `json:"tracker"`
}

// WebhookResponse is the per-turn answer: zero or more slot events followed
// by zero or more outbound messages, both in emission order.
type WebhookResponse struct {
	Events    []SlotEvent  `json:"events"`
	Responses []BotMessage `json:"responses"`
}
