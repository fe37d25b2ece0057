// Package events publishes journey lifecycle events to RabbitMQ so downstream
// consumers (reporting, notifications) can react without polling the API.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jornada-app/backend/internal/domain"
)

const (
	// Exchange is the topic exchange all journey events go through.
	Exchange = "jornada.events"

	// RoutingKeyJourneyCompleted is the routing key for completion events.
	RoutingKeyJourneyCompleted = "journey.completed"
)

// JourneyCompletedMessage is the wire payload for a completion event.
// Amounts are integer minor currency units, matching the API representation.
type JourneyCompletedMessage struct {
	JourneyID     string                  `json:"journey_id"`
	VehicleID     string                  `json:"vehicle_id"`
	StartedAt     time.Time               `json:"started_at"`
	EndedAt       time.Time               `json:"ended_at"`
	DistanceKm    int64                   `json:"distance_km"`
	ActiveSeconds int64                   `json:"active_seconds"`
	Earnings      *domain.EarningsSummary `json:"earnings,omitempty"`
}

// channel is the subset of *amqp.Channel the publisher uses, extracted so
// tests can substitute a fake without a broker.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher emits journey events on an AMQP channel.
// The topic exchange is declared once at construction; Publish calls are then
// a single basic.publish each.
type Publisher struct {
	ch channel
}

// NewPublisher declares the events exchange on ch and returns a Publisher
// bound to it.
func NewPublisher(ch channel) (*Publisher, error) {
	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("events.NewPublisher: declare exchange: %w", err)
	}
	return &Publisher{ch: ch}, nil
}

// Dial connects to the broker at url, opens a channel, and returns a
// Publisher plus a close function releasing both.
func Dial(url string) (*Publisher, func(), error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("events.Dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("events.Dial: open channel: %w", err)
	}
	p, err := NewPublisher(ch)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	closeFn := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	return p, closeFn, nil
}

// PublishJourneyCompleted emits a journey.completed event for a completed
// journey. The caller treats failures as non-fatal; the journey is already
// committed by the time this runs.
func (p *Publisher) PublishJourneyCompleted(ctx context.Context, j domain.Journey) error {
	msg := JourneyCompletedMessage{
		JourneyID: j.ID.String(),
		VehicleID: j.VehicleID.String(),
		StartedAt: j.StartedAt,
		Earnings:  j.Earnings,
	}
	if j.EndedAt != nil {
		msg.EndedAt = *j.EndedAt
	}
	if j.DistanceKm != nil {
		msg.DistanceKm = *j.DistanceKm
	}
	if j.ActiveSeconds != nil {
		msg.ActiveSeconds = *j.ActiveSeconds
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("events.Publisher.PublishJourneyCompleted: marshal: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, Exchange, RoutingKeyJourneyCompleted, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("events.Publisher.PublishJourneyCompleted: %w", err)
	}
	return nil
}
