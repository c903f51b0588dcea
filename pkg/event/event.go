// pkg/event/event.go
package event

import (
	"image/color"
	"sync"
)

// Type represents the type of event
type Type string

// Show lifecycle event types
const (
	FireworkCreated  Type = "firework_created"
	RocketLaunched   Type = "rocket_launched"
	FireworkExploded Type = "firework_exploded"
	FireworkRecycled Type = "firework_recycled"
	ShowStarted      Type = "show_started"
	ShowStopped      Type = "show_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler so it can be removed later.
type Subscription uint64

type subscriber struct {
	id      Subscription
	handler Handler
}

// Bus manages event subscriptions and dispatching. Publish runs handlers
// synchronously on the caller's goroutine.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   Subscription
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: b.nextID, handler: handler})
	return b.nextID
}

// Unsubscribe removes a handler for a specific event type
func (b *Bus) Unsubscribe(eventType Type, id Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// FireworkEvent describes something that happened to one firework of a show.
type FireworkEvent struct {
	BaseEvent
	Index int
	X     float64
	Y     float64
	Color color.RGBA
}

// NewFireworkEvent creates a new firework event
func NewFireworkEvent(eventType Type, source interface{}, index int, x, y float64, c color.RGBA) *FireworkEvent {
	return &FireworkEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Index: index,
		X:     x,
		Y:     y,
		Color: c,
	}
}
