package domain

import "context"

// Provider is one outbound delivery channel (email, SMS). Implementations
// must honor ctx deadlines; the dispatcher bounds every send with a timeout.
type Provider interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Message is a rendered alert ready for delivery.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}
