package actions

import (
	"strings"

	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/session"
)

// Tracker is the handler-facing view of one turn: the conversation id, the
// latest user message with its NLU annotations, and the merged slot state.
type Tracker struct {
	ConversationID string
	Text           string
	Intent         string
	Entities       []protocol.Entity
	Slots          session.Slots
}

// NewTracker builds a Tracker from a webhook request and the merged slots.
func NewTracker(req *protocol.WebhookRequest, slots session.Slots) *Tracker {
	conversationID := req.SenderID
	if conversationID == "" {
		conversationID = req.Tracker.SenderID
	}
	if slots == nil {
		slots = session.Slots{}
	}

	return &Tracker{
		ConversationID: conversationID,
		Text:           req.Tracker.LatestMessage.Text,
		Intent:         req.Tracker.LatestMessage.Intent.Name,
		Entities:       req.Tracker.LatestMessage.Entities,
		Slots:          slots,
	}
}

// Entity returns the first detected entity value of the given type. At most
// one value per type is consumed per turn.
func (t *Tracker) Entity(name string) (string, bool) {
	for _, entity := range t.Entities {
		if entity.Entity == name && entity.Value != "" {
			return entity.Value, true
		}
	}
	return "", false
}

// TrimmedText is the latest user text with surrounding whitespace removed.
func (t *Tracker) TrimmedText() string {
	return strings.TrimSpace(t.Text)
}
