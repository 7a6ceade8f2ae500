package protocol

// Button is a tappable choice rendered under a message. Payload is sent back
// verbatim as the next user message when tapped.
type Button struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// BotMessage is one outbound display message.
type BotMessage struct {
	Text    string   `json:"text"`
	Buttons []Button `json:"buttons,omitempty"`
}

// NewMessage creates a text-only message.
func NewMessage(text string) BotMessage {
	return BotMessage{Text: text}
}

// NewButtonMessage creates a message with choice buttons.
func NewButtonMessage(text string, buttons ...Button) BotMessage {
	return BotMessage{Text: text, Buttons: buttons}
}
