package events

import (
	"errors"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var received *Event
	var callCount int

	handler := func(event *Event) error {
		received = event
		callCount++
		return nil
	}

	bus.Subscribe("test_event", handler)

	payload := map[string]string{"foo": "bar"}
	err := bus.PublishJSON("test_event", payload)
	if err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}

	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}

	if received.Type != "test_event" {
		t.Errorf("expected type test_event, got %s", received.Type)
	}

	var decoded map[string]string
	if err := jsoniter.Unmarshal(received.Payload, &decoded); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}

	if decoded["foo"] != "bar" {
		t.Errorf("expected foo=bar, got %s", decoded["foo"])
	}
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()
	var count1, count2 int

	bus.Subscribe("event", func(_ *Event) error { count1++; return errors.New("boom") })
	bus.Subscribe("event", func(_ *Event) error { count2++; return nil })

	err := bus.Publish(&Event{Type: "event"})
	if err == nil || err.Error() != "boom" {
		t.Errorf("expected first handler error, got %v", err)
	}

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both handlers to be called once, got %d and %d", count1, count2)
	}
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus()
	// Should not panic
	if err := bus.Publish(&Event{Type: "unknown"}); err != nil {
		t.Errorf("Publish failed: %v", err)
	}
	if err := bus.PublishJSON("unknown", nil); err != nil {
		t.Errorf("PublishJSON failed: %v", err)
	}

	var nilBus *EventBus
	if err := nilBus.PublishJSON(EventBookingCreated, nil); err != nil {
		t.Errorf("nil bus should be a no-op, got %v", err)
	}
}

func TestNewJSONEvent(t *testing.T) {
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	payload := BookingEventPayload{BookingID: 123, Status: "WAITING", Start: start}
	event, err := NewJSONEvent(EventBookingCreated, payload)
	if err != nil {
		t.Fatalf("NewJSONEvent failed: %v", err)
	}

	if event.Type != EventBookingCreated {
		t.Errorf("expected %s, got %s", EventBookingCreated, event.Type)
	}
	if event.Key != "booking-123" {
		t.Errorf("expected booking key, got %q", event.Key)
	}

	var decoded BookingEventPayload
	if err := jsoniter.Unmarshal(event.Payload, &decoded); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if decoded.BookingID != 123 || !decoded.Start.Equal(start) {
		t.Errorf("unexpected payload %+v", decoded)
	}

	ptrEvent, err := NewJSONEvent(EventBookingApproved, &payload)
	if err != nil {
		t.Fatalf("NewJSONEvent failed: %v", err)
	}
	if ptrEvent.Key != "booking-123" {
		t.Errorf("expected booking key for pointer payload, got %q", ptrEvent.Key)
	}

	other, _ := NewJSONEvent("other", map[string]int{"a": 1})
	if other.Key != "" {
		t.Errorf("expected empty key, got %q", other.Key)
	}

	if _, err := NewJSONEvent("bad", make(chan int)); err == nil {
		t.Error("expected marshal error for channel payload")
	}
}
