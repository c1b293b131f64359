package testutils

import (
	"context"
	"sync"

	"github.com/adu-coder/nineteen/pkg/eventbus"
)

// EventRecorder keeps the events a bus dispatched to it.
type EventRecorder struct {
	mu     sync.Mutex
	events []eventbus.Event
}

// RecordEvents subscribes a new recorder to eventTypes on bus.
func RecordEvents(bus eventbus.Bus, eventTypes ...string) *EventRecorder {
	r := &EventRecorder{}
	for _, eventType := range eventTypes {
		bus.Register(eventType, r.record)
	}
	return r
}

func (r *EventRecorder) record(_ context.Context, e eventbus.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns the recorded events in dispatch order.
func (r *EventRecorder) Events() []eventbus.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]eventbus.Event(nil), r.events...)
}

// Clear forgets the recorded events.
func (r *EventRecorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
