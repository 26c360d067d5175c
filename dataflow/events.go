package dataflow

import (
	"sync"
	"time"
)

// EventType represents the type of dataflow event.
type EventType string

const (
	// Run lifecycle events
	EventRunStarted   EventType = "run_started"
	EventRunCompleted EventType = "run_completed"
	EventRunFailed    EventType = "run_failed"

	// Entity lifecycle events
	EventEntityStarted   EventType = "entity_started"
	EventEntityCompleted EventType = "entity_completed"

	// Outcome routing events
	EventOutcomeRouted  EventType = "outcome_routed"
	EventOutcomeDropped EventType = "outcome_dropped"
)

// Event represents an observable dataflow event with typed data.
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// EventEmitter manages event listeners and dispatches events.
type EventEmitter struct {
	mu        sync.RWMutex
	listeners []func(Event)
}

// NewEventEmitter creates a new EventEmitter.
func NewEventEmitter() *EventEmitter {
	return &EventEmitter{
		listeners: make([]func(Event), 0),
	}
}

// On registers a listener function to receive events.
// Listeners are called synchronously in registration order.
func (e *EventEmitter) On(listener func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, listener)
}

// Emit dispatches an event to all registered listeners.
func (e *EventEmitter) Emit(event Event) {
	e.mu.RLock()
	listeners := make([]func(Event), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// ListenerCount returns the number of registered listeners.
func (e *EventEmitter) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}

// Helper constructors for creating typed events

// RunStartedEvent creates a run_started event.
func RunStartedEvent(entityCount int) Event {
	return Event{
		Type:      EventRunStarted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"entity_count": entityCount,
		},
	}
}

// RunCompletedEvent creates a run_completed event.
func RunCompletedEvent(duration time.Duration, entityCount int) Event {
	return Event{
		Type:      EventRunCompleted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"duration_ms":  duration.Milliseconds(),
			"entity_count": entityCount,
		},
	}
}

// RunFailedEvent creates a run_failed event.
func RunFailedEvent(err string, duration time.Duration) Event {
	return Event{
		Type:      EventRunFailed,
		Timestamp: time.Now(),
		Data: map[string]any{
			"error":       err,
			"duration_ms": duration.Milliseconds(),
		},
	}
}

// EntityStartedEvent creates an entity_started event.
func EntityStartedEvent(name string, index int) Event {
	return Event{
		Type:      EventEntityStarted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"name":  name,
			"index": index,
		},
	}
}

// EntityCompletedEvent creates an entity_completed event.
func EntityCompletedEvent(name string, index, produced int, duration time.Duration) Event {
	return Event{
		Type:      EventEntityCompleted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"name":        name,
			"index":       index,
			"produced":    produced,
			"duration_ms": duration.Milliseconds(),
		},
	}
}

// OutcomeRoutedEvent creates an outcome_routed event.
func OutcomeRoutedEvent(entity, outcome string, destinations []string) Event {
	return Event{
		Type:      EventOutcomeRouted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"entity":       entity,
			"outcome":      outcome,
			"destinations": destinations,
		},
	}
}

// OutcomeDroppedEvent creates an outcome_dropped event.
func OutcomeDroppedEvent(entity, outcome string) Event {
	return Event{
		Type:      EventOutcomeDropped,
		Timestamp: time.Now(),
		Data: map[string]any{
			"entity":  entity,
			"outcome": outcome,
		},
	}
}
