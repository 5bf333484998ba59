package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shareit/internal/events"

	"github.com/alicebob/miniredis/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	failures int
	calls    int
	messages []kafka.Message
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	if w.failures > 0 {
		w.failures--
		return errors.New("broker unavailable")
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWriter) snapshot() (int, []kafka.Message, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls, append([]kafka.Message(nil), w.messages...), w.closed
}

func fastPolicy(retries int) RetryPolicy {
	return RetryPolicy{MaxRetries: retries, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, BackoffFactor: 2}
}

func TestRetryPolicyNextDelay(t *testing.T) {
	p := RetryPolicy{InitialDelay: time.Second, MaxDelay: 5 * time.Second, BackoffFactor: 2}
	assert.Equal(t, time.Second, p.NextDelay(0))
	assert.Equal(t, time.Second, p.NextDelay(1))
	assert.Equal(t, 2*time.Second, p.NextDelay(2))
	assert.Equal(t, 4*time.Second, p.NextDelay(3))
	assert.Equal(t, 5*time.Second, p.NextDelay(4))

	assert.Equal(t, time.Second, RetryPolicy{}.NextDelay(1))
}

func TestRetryPolicyDo(t *testing.T) {
	ctx := context.Background()

	t.Run("EventualSuccess", func(t *testing.T) {
		calls := 0
		var retried []int
		err := fastPolicy(3).Do(ctx, func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("fail")
			}
			return nil
		}, func(attempt int, _ error) { retried = append(retried, attempt) })
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int{1, 2}, retried)
	})

	t.Run("Exhausted", func(t *testing.T) {
		calls := 0
		err := fastPolicy(2).Do(ctx, func(context.Context) error {
			calls++
			return errors.New("fail")
		}, nil)
		assert.EqualError(t, err, "fail")
		assert.Equal(t, 2, calls)
	})

	t.Run("Canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		p := RetryPolicy{MaxRetries: 5, InitialDelay: time.Hour}
		err := p.Do(cctx, func(context.Context) error { return errors.New("fail") }, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestEventRelayDelivers(t *testing.T) {
	writer := &fakeWriter{failures: 1}
	logger := zerolog.Nop()
	relay := NewEventRelay(writer, nil, fastPolicy(3), &logger)

	bus := events.NewEventBus()
	relay.Attach(bus)

	ctx, cancel := context.WithCancel(context.Background())
	go relay.Start(ctx)

	payload := events.BookingEventPayload{BookingID: 7, Status: "WAITING"}
	require.NoError(t, bus.PublishJSON(events.EventBookingCreated, payload))

	assert.Eventually(t, func() bool {
		_, msgs, _ := writer.snapshot()
		return len(msgs) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-relay.Done()

	calls, msgs, closed := writer.snapshot()
	assert.Equal(t, 2, calls)
	assert.True(t, closed)
	assert.Equal(t, "booking-7", string(msgs[0].Key))
	assert.Equal(t, "event_type", msgs[0].Headers[0].Key)
	assert.Equal(t, events.EventBookingCreated, string(msgs[0].Headers[0].Value))

	var decoded events.BookingEventPayload
	require.NoError(t, jsoniter.Unmarshal(msgs[0].Value, &decoded))
	assert.Equal(t, int64(7), decoded.BookingID)
}

func TestEventRelayDeadLetter(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	writer := &fakeWriter{failures: 100}
	relay := NewEventRelay(writer, client, fastPolicy(2), nil)

	event, err := events.NewJSONEvent(events.EventBookingRejected, events.BookingEventPayload{BookingID: 9})
	require.NoError(t, err)
	relay.deliver(context.Background(), event)

	items, err := s.List(deadLetterKey)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var letter deadLetter
	require.NoError(t, jsoniter.Unmarshal([]byte(items[0]), &letter))
	assert.Equal(t, events.EventBookingRejected, letter.Type)
	assert.Equal(t, "booking-9", letter.Key)
	assert.Equal(t, "broker unavailable", letter.Error)
}

func TestEventRelayQueueFull(t *testing.T) {
	relay := NewEventRelay(&fakeWriter{}, nil, RetryPolicy{}, nil)
	relay.queue = make(chan events.Event, 1)

	require.NoError(t, relay.Enqueue(&events.Event{Type: events.EventBookingCreated}))
	err := relay.Enqueue(&events.Event{Type: events.EventBookingCreated})
	assert.ErrorIs(t, err, ErrRelayQueueFull)
}

func TestEventRelayDrainsOnStop(t *testing.T) {
	writer := &fakeWriter{}
	relay := NewEventRelay(writer, nil, fastPolicy(1), nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, relay.Enqueue(&events.Event{Type: events.EventBookingApproved, Key: "k"}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	relay.Start(ctx)

	_, msgs, closed := writer.snapshot()
	assert.Len(t, msgs, 3)
	assert.True(t, closed)
}
