package queue

import "context"

// Client sends messages to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// Nop discards every message. Used when no broker is configured.
type Nop struct{}

// Send implements Client.
func (Nop) Send(context.Context, Message) error { return nil }

var _ Client = Nop{}
