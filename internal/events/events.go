package events

import (
	"strconv"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	EventBookingCreated  = "booking_created"
	EventBookingApproved = "booking_approved"
	EventBookingRejected = "booking_rejected"
)

// BookingEventTypes lists every event the booking service emits.
var BookingEventTypes = []string{
	EventBookingCreated,
	EventBookingApproved,
	EventBookingRejected,
}

// BookingEventPayload is the booking snapshot handed to event consumers.
type BookingEventPayload struct {
	BookingID int64     `json:"booking_id"`
	ItemID    int64     `json:"item_id"`
	OwnerID   int64     `json:"owner_id"`
	BookerID  int64     `json:"booker_id"`
	Status    string    `json:"status"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	ActorID   int64     `json:"actor_id"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Key       string
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

// Publish notifies subscribers of the event type and returns the first handler error.
// Every handler runs even if an earlier one fails.
func (b *EventBus) Publish(event *Event) error {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var firstErr error
	for _, handler := range handlers {
		if err := handler(event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	event, err := NewJSONEvent(eventType, payload)
	if err != nil {
		return err
	}
	return b.Publish(&event)
}

// NewJSONEvent builds an Event with JSON payload for manual publishing.
// Booking payloads are keyed by booking id so a partitioned transport keeps per-booking order.
func NewJSONEvent(eventType string, payload interface{}) (Event, error) {
	raw, err := jsoniter.ConfigFastest.Marshal(payload)
	if err != nil {
		return Event{}, err
	}

	event := Event{Type: eventType, Payload: raw, CreatedAt: time.Now()}
	switch p := payload.(type) {
	case BookingEventPayload:
		event.Key = bookingKey(p.BookingID)
	case *BookingEventPayload:
		if p != nil {
			event.Key = bookingKey(p.BookingID)
		}
	}
	return event, nil
}

func bookingKey(id int64) string {
	return "booking-" + strconv.FormatInt(id, 10)
}
