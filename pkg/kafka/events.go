// Package kafka publishes booking lifecycle events. The calendar itself
// never consumes them; they feed whatever notification pipeline the host
// wires up (a Telegram bot, a mail digest). Publishing is best-effort: a
// broker outage must never fail a booking.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"divano/pkg/logger"
	"divano/pkg/model"
)

const (
	EventBookingCreated = "booking.created"
	EventBookingDeleted = "booking.deleted"

	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
)

var ErrProducerClosed = errors.New("producer is closed")

// Event is the payload written for every booking mutation.
type Event struct {
	Type      string         `json:"type"`
	BookingID string         `json:"bookingId"`
	Booking   *model.Booking `json:"booking,omitempty"`
	At        time.Time      `json:"at"`
}

// Producer writes booking events, keyed by booking id so all events for
// one booking land on the same partition in order.
type Producer struct {
	writer *kafka.Writer
	source string
	log    *logger.Logger

	mu     sync.RWMutex
	closed bool
}

func NewProducer(brokers []string, topic, source string, log *logger.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if topic == "" {
		return nil, errors.New("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("kafka producer error", "detail", msg)
		}),
	}

	return &Producer{writer: writer, source: source, log: log}, nil
}

func (p *Producer) BookingCreated(ctx context.Context, b model.Booking) error {
	return p.publish(ctx, Event{
		Type:      EventBookingCreated,
		BookingID: b.ID,
		Booking:   &b,
		At:        time.Now().UTC(),
	})
}

func (p *Producer) BookingDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, Event{
		Type:      EventBookingDeleted,
		BookingID: id,
		At:        time.Now().UTC(),
	})
}

func (p *Producer) publish(ctx context.Context, ev Event) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrProducerClosed
	}
	p.mu.RUnlock()

	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(ev.BookingID),
		Value: value,
		Time:  ev.At,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(uuid.NewString())},
			{Key: HeaderEventType, Value: []byte(ev.Type)},
			{Key: HeaderSource, Value: []byte(p.source)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
