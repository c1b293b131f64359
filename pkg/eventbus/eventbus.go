package eventbus

import "context"

// Event is anything that can be dispatched on a Bus.
type Event interface {
	Type() string
}

// HandlerFunc reacts to one event.
type HandlerFunc func(ctx context.Context, e Event) error

// Bus dispatches events to the handlers registered for their type.
type Bus interface {
	Register(eventType string, handler HandlerFunc)
	Emit(ctx context.Context, event Event) error
}
