package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventActivityCreated    = "activity_created"
	EventActivityUpdated    = "activity_updated"
	EventActivityDeleted    = "activity_deleted"
	EventBookingPlaced      = "booking_placed"
	EventBookingUpdated     = "booking_updated"
	EventBookingRemoved     = "booking_removed"
	EventTripResized        = "trip_resized"
	EventPropagationApplied = "propagation_applied"
)

// ActivityEventPayload describes the activity snapshot for event consumers.
type ActivityEventPayload struct {
	ActivityID int64   `json:"activity_id"`
	Title      string  `json:"title"`
	Cost       float64 `json:"cost"`
}

// BookingEventPayload describes a booking mutation on a specific day.
type BookingEventPayload struct {
	Day        int     `json:"day"`
	BookingID  string  `json:"booking_id"`
	ActivityID int64   `json:"activity_id"`
	Title      string  `json:"title"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Cost       float64 `json:"cost"`
}

// TripEventPayload describes a change to the trip frame.
type TripEventPayload struct {
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	People      int    `json:"people"`
	DaysTrimmed int    `json:"days_trimmed,omitempty"`
}

// PropagationEventPayload reports an explicit snapshot rewrite.
type PropagationEventPayload struct {
	ActivityID      int64 `json:"activity_id"`
	BookingsUpdated int   `json:"bookings_updated"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
