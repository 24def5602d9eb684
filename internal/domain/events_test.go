package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleEventBus(t *testing.T) {
	t.Run("DeliversToMatchingSubscriber", func(t *testing.T) {
		bus := NewEventBus()
		ch := bus.Subscribe([]EventType{EventTypeTypingChanged})

		bus.Publish(TypingChangedEvent{UserID: "2", IsTyping: true, EventTime: time.Now()})

		select {
		case evt := <-ch:
			typing, ok := evt.(TypingChangedEvent)
			require.True(t, ok)
			assert.Equal(t, "2", typing.UserID)
			assert.True(t, typing.IsTyping)
		case <-time.After(time.Second):
			t.Fatal("expected a typing event")
		}
	})

	t.Run("FiltersByEventType", func(t *testing.T) {
		bus := NewEventBus()
		ch := bus.Subscribe([]EventType{EventTypeMessageRead})

		bus.Publish(TypingChangedEvent{UserID: "2", IsTyping: true, EventTime: time.Now()})
		bus.Publish(MessageReadEvent{RoomID: "general", EventTime: time.Now()})

		evt := <-ch
		read, ok := evt.(MessageReadEvent)
		require.True(t, ok, "typing event must have been filtered out")
		assert.Equal(t, "general", read.RoomID)
		assert.Empty(t, ch)
	})

	t.Run("EmptyTypeListReceivesEverything", func(t *testing.T) {
		bus := NewEventBus()
		ch := bus.Subscribe(nil)

		bus.Publish(MessageReadEvent{RoomID: "general", EventTime: time.Now()})
		bus.Publish(RoomSwitchedEvent{Room: &Room{ID: "technology"}, EventTime: time.Now()})

		assert.Len(t, ch, 2)
	})

	t.Run("UnsubscribeClosesChannel", func(t *testing.T) {
		bus := NewEventBus()
		ch := bus.Subscribe([]EventType{EventTypeMessageAppended})

		bus.Unsubscribe(ch)

		_, open := <-ch
		assert.False(t, open)

		// Publishing after unsubscribe must not panic on the closed channel
		bus.Publish(MessageAppendedEvent{Message: &Message{ID: "1"}, EventTime: time.Now()})
	})

	t.Run("SlowSubscriberNeverBlocksPublish", func(t *testing.T) {
		bus := NewEventBus()
		ch := bus.Subscribe([]EventType{EventTypeMessageRead})

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 200; i++ {
				bus.Publish(MessageReadEvent{RoomID: "general", EventTime: time.Now()})
			}
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("publish blocked on a full subscriber channel")
		}
		assert.Equal(t, 100, len(ch), "overflow events are dropped, not queued")
	})
}
