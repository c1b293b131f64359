package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/adu-coder/nineteen/pkg/eventbus"
	"github.com/adu-coder/nineteen/pkg/testutils"
	"github.com/stretchr/testify/assert"
)

type pinged struct{ n int }

func (pinged) Type() string { return "Pinged" }

type ponged struct{}

func (ponged) Type() string { return "Ponged" }

func TestMemoryEventBus_Dispatch(t *testing.T) {
	bus := NewWithMemory(testutils.Logger())

	var got []int
	bus.Register("Pinged", func(_ context.Context, e eventbus.Event) error {
		got = append(got, e.(pinged).n)
		return nil
	})
	bus.Register("Pinged", func(_ context.Context, e eventbus.Event) error {
		got = append(got, e.(pinged).n*10)
		return nil
	})

	assert.NoError(t, bus.Emit(context.Background(), pinged{n: 1}))
	assert.NoError(t, bus.Emit(context.Background(), ponged{}), "no handlers is fine")

	assert.Equal(t, []int{1, 10}, got)
}

func TestMemoryEventBus_OnlySubscribersSeeEvents(t *testing.T) {
	bus := NewWithMemory(testutils.Logger())
	rec := testutils.RecordEvents(bus, "Pinged")

	for i := range 10000 {
		assert.NoError(t, bus.Emit(context.Background(), pinged{n: i}))
	}
	assert.NoError(t, bus.Emit(context.Background(), ponged{}))

	events := rec.Events()
	assert.Len(t, events, 10000)
	assert.Equal(t, pinged{n: 9999}, events[9999])

	rec.Clear()
	assert.NoError(t, bus.Emit(context.Background(), pinged{n: 1}))
	assert.Equal(t, []eventbus.Event{pinged{n: 1}}, rec.Events())
	assert.Empty(t, bus.handlers["Ponged"], "emitting an unsubscribed type leaves nothing behind")
}

func TestMemoryEventBus_HandlerErrors(t *testing.T) {
	bus := NewWithMemory(testutils.Logger())
	boom := errors.New("boom")

	ran := false
	bus.Register("Pinged", func(context.Context, eventbus.Event) error { return boom })
	bus.Register("Pinged", func(context.Context, eventbus.Event) error {
		ran = true
		return nil
	})

	err := bus.Emit(context.Background(), pinged{})
	assert.ErrorIs(t, err, boom)
	assert.True(t, ran, "later handlers still run")
}
