package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/models"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const (
	deadLetterKey = "shareit:events:deadletter"
	drainTimeout  = 5 * time.Second
)

var ErrRelayQueueFull = errors.New("event relay queue is full")

// MessageWriter is the part of kafka.Writer the relay needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter builds a synchronous writer so the relay sees delivery errors.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
}

// deadLetter is what ends up in redis when an event could not be delivered.
type deadLetter struct {
	Type      string    `json:"type"`
	Key       string    `json:"key"`
	Payload   string    `json:"payload"`
	Error     string    `json:"error"`
	CreatedAt time.Time `json:"created_at"`
	FailedAt  time.Time `json:"failed_at"`
}

// EventRelay forwards booking events from the in-process bus to Kafka.
// Publishing never blocks the request path: events are queued and sent by Start.
type EventRelay struct {
	writer      MessageWriter
	redis       *redis.Client
	retryPolicy RetryPolicy
	queue       chan events.Event
	logger      *zerolog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

func NewEventRelay(writer MessageWriter, redisClient *redis.Client, retry RetryPolicy, logger *zerolog.Logger) *EventRelay {
	if retry.MaxRetries == 0 {
		retry = DefaultRetryPolicy()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	l := logger.With().Str("component", "event_relay").Logger()

	return &EventRelay{
		writer:      writer,
		redis:       redisClient,
		retryPolicy: retry,
		queue:       make(chan events.Event, models.EventQueueSize),
		logger:      &l,
		done:        make(chan struct{}),
	}
}

// Attach subscribes the relay to every booking event on the bus.
func (r *EventRelay) Attach(bus *events.EventBus) {
	for _, eventType := range events.BookingEventTypes {
		bus.Subscribe(eventType, r.Enqueue)
	}
}

// Enqueue schedules an event for delivery without blocking.
func (r *EventRelay) Enqueue(event *events.Event) error {
	select {
	case r.queue <- *event:
		return nil
	default:
		r.logger.Warn().Str("event", event.Type).Str("key", event.Key).Msg("relay queue full, event dropped")
		metrics.IncRelayed(event.Type, "dropped")
		return ErrRelayQueueFull
	}
}

// Start delivers queued events until ctx is done, then drains what is left.
func (r *EventRelay) Start(ctx context.Context) {
	r.logger.Info().Msg("event relay started")
	defer func() {
		r.drain()
		r.closeOnce.Do(func() { close(r.done) })
		r.logger.Info().Msg("event relay stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-r.queue:
			r.deliver(ctx, event)
		}
	}
}

// Done is closed after Start has returned.
func (r *EventRelay) Done() <-chan struct{} {
	return r.done
}

func (r *EventRelay) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case event := <-r.queue:
			r.deliver(ctx, event)
		default:
			if err := r.writer.Close(); err != nil {
				r.logger.Warn().Err(err).Msg("failed to close kafka writer")
			}
			return
		}
	}
}

func (r *EventRelay) deliver(ctx context.Context, event events.Event) {
	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: event.Payload,
		Time:  event.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	err := r.retryPolicy.Do(ctx, func(ctx context.Context) error {
		return r.writer.WriteMessages(ctx, msg)
	}, func(attempt int, err error) {
		metrics.IncRelayed(event.Type, "retried")
		r.logger.Warn().Err(err).Int("attempt", attempt).Str("event", event.Type).Msg("event delivery failed, retrying")
	})
	if err == nil {
		metrics.IncRelayed(event.Type, "sent")
		return
	}

	r.logger.Error().Err(err).Str("event", event.Type).Str("key", event.Key).Msg("event delivery failed")
	r.pushDeadLetter(event, err)
}

func (r *EventRelay) pushDeadLetter(event events.Event, cause error) {
	metrics.IncRelayed(event.Type, "dead_letter")
	if r.redis == nil {
		return
	}

	data, err := jsoniter.ConfigFastest.Marshal(deadLetter{
		Type:      event.Type,
		Key:       event.Key,
		Payload:   string(event.Payload),
		Error:     cause.Error(),
		CreatedAt: event.CreatedAt,
		FailedAt:  time.Now(),
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to encode dead letter")
		return
	}

	// the request context may already be gone
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := r.redis.LPush(ctx, deadLetterKey, data).Err(); err != nil {
		r.logger.Error().Err(fmt.Errorf("deadletter push: %w", err)).Str("event", event.Type).Msg("event lost")
	}
}
