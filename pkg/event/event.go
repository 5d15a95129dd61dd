// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-narrowphase/pkg/physics"
)

// Type represents the type of event
type Type string

// Event types published while evaluating scenarios
const (
	PairCollided      Type = "pair_collided"
	PairSeparated     Type = "pair_separated"
	PairRejected      Type = "pair_rejected"
	ScenarioStarted   Type = "scenario_started"
	ScenarioCompleted Type = "scenario_completed"
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

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type registeredHandler struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registeredHandler
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registeredHandler),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registeredHandler{id: id, handler: handler})

	return &Subscription{
		ID:   id,
		Type: eventType,
		Cancel: func() {
			b.unsubscribe(eventType, id)
		},
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if h.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on the
// caller's goroutine in subscription order.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]registeredHandler(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h.handler(event)
	}
}

// CollisionEvent reports the outcome of one evaluated pair
type CollisionEvent struct {
	BaseEvent
	Pair        string
	EntityA     uint64
	EntityB     uint64
	Normal      physics.Vector2
	Penetration float32
}

// NewCollisionEvent creates a PairCollided event
func NewCollisionEvent(source interface{}, pair string, entityA, entityB uint64, m physics.Manifold) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: PairCollided,
			Source:    source,
		},
		Pair:        pair,
		EntityA:     entityA,
		EntityB:     entityB,
		Normal:      m.Normal,
		Penetration: m.Penetration,
	}
}

// NewSeparationEvent creates a PairSeparated event
func NewSeparationEvent(source interface{}, pair string, entityA, entityB uint64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: PairSeparated,
			Source:    source,
		},
		Pair:    pair,
		EntityA: entityA,
		EntityB: entityB,
	}
}

// ScenarioEvent marks the start or end of a scenario run
type ScenarioEvent struct {
	BaseEvent
	Scenario   string
	Pairs      int
	Collisions int
	Digest     uint64
}

// NewScenarioEvent creates a scenario lifecycle event
func NewScenarioEvent(eventType Type, source interface{}, scenario string, pairs, collisions int, digest uint64) *ScenarioEvent {
	return &ScenarioEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Scenario:   scenario,
		Pairs:      pairs,
		Collisions: collisions,
		Digest:     digest,
	}
}
