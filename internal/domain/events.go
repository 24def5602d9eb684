package domain

import (
	"sync"
	"time"
)

type EventType string

const (
	EventTypeMessageAppended EventType = "message.appended"
	EventTypeMessageRead     EventType = "message.read"
	EventTypeTypingChanged   EventType = "typing.changed"
	EventTypeRoomSwitched    EventType = "room.switched"
	EventTypePresenceUpdated EventType = "presence.updated"
)

type Event interface {
	Type() EventType
	Timestamp() time.Time
}

type MessageAppendedEvent struct {
	Message   *Message
	EventTime time.Time
}

func (e MessageAppendedEvent) Type() EventType      { return EventTypeMessageAppended }
func (e MessageAppendedEvent) Timestamp() time.Time { return e.EventTime }

type MessageReadEvent struct {
	RoomID    string
	EventTime time.Time
}

func (e MessageReadEvent) Type() EventType      { return EventTypeMessageRead }
func (e MessageReadEvent) Timestamp() time.Time { return e.EventTime }

type TypingChangedEvent struct {
	UserID    string
	IsTyping  bool
	EventTime time.Time
}

func (e TypingChangedEvent) Type() EventType      { return EventTypeTypingChanged }
func (e TypingChangedEvent) Timestamp() time.Time { return e.EventTime }

type RoomSwitchedEvent struct {
	Room      *Room
	EventTime time.Time
}

func (e RoomSwitchedEvent) Type() EventType      { return EventTypeRoomSwitched }
func (e RoomSwitchedEvent) Timestamp() time.Time { return e.EventTime }

type PresenceUpdatedEvent struct {
	UserID    string
	IsOnline  bool
	EventTime time.Time
}

func (e PresenceUpdatedEvent) Type() EventType      { return EventTypePresenceUpdated }
func (e PresenceUpdatedEvent) Timestamp() time.Time { return e.EventTime }

// EventBus provides pub/sub for domain events
type EventBus interface {
	Publish(event Event)
	Subscribe(eventTypes []EventType) <-chan Event
	Unsubscribe(ch <-chan Event)
}

// SimpleEventBus is a basic in-memory implementation of EventBus
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers map[<-chan Event]subscription
}

type subscription struct {
	ch         chan Event
	eventTypes map[EventType]bool
}

func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make(map[<-chan Event]subscription),
	}
}

func (b *SimpleEventBus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		if len(sub.eventTypes) == 0 || sub.eventTypes[event.Type()] {
			select {
			case sub.ch <- event:
			default:
				// Channel full, skip this subscriber
			}
		}
	}
}

func (b *SimpleEventBus) Subscribe(eventTypes []EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 100)
	typeMap := make(map[EventType]bool)
	for _, t := range eventTypes {
		typeMap[t] = true
	}

	b.subscribers[ch] = subscription{
		ch:         ch,
		eventTypes: typeMap,
	}

	return ch
}

func (b *SimpleEventBus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subscribers[ch]; ok {
		close(sub.ch)
		delete(b.subscribers, ch)
	}
}
