package actions

import "github.com/delivio/actionserver/core/protocol"

// Dispatcher collects the outbound messages a handler produces during one
// turn, in emission order.
type Dispatcher struct {
	messages []protocol.BotMessage
}

// Say queues a text-only message.
func (d *Dispatcher) Say(text string) {
	d.messages = append(d.messages, protocol.NewMessage(text))
}

// SayButtons queues a message with choice buttons.
func (d *Dispatcher) SayButtons(text string, buttons ...protocol.Button) {
	d.messages = append(d.messages, protocol.NewButtonMessage(text, buttons...))
}

// Messages returns the queued messages.
func (d *Dispatcher) Messages() []protocol.BotMessage {
	return d.messages
}
