package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jornada-app/backend/internal/domain"
	"github.com/jornada-app/backend/internal/events"
)

// fakeChannel records declarations and publishes in memory.
type fakeChannel struct {
	declared   []string
	declareErr error
	published  []amqp.Publishing
	keys       []string
	publishErr error
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declared = append(f.declared, name+"/"+kind)
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.keys = append(f.keys, exchange+"/"+key)
	f.published = append(f.published, msg)
	return f.publishErr
}

func completedJourney() domain.Journey {
	ended := time.Date(2025, 3, 11, 2, 30, 0, 0, time.UTC)
	distance := int64(180)
	secs := int64(19800)
	return domain.Journey{
		ID:            uuid.New(),
		VehicleID:     uuid.New(),
		Status:        domain.JourneyCompleted,
		StartedAt:     time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC),
		EndedAt:       &ended,
		DistanceKm:    &distance,
		ActiveSeconds: &secs,
		Earnings: &domain.EarningsSummary{
			Platforms:  []domain.PlatformEarnings{{Platform: "uber", BeforeCents: 3000}},
			TotalCents: 3000,
		},
	}
}

func TestNewPublisher_DeclaresTopicExchange(t *testing.T) {
	ch := &fakeChannel{}

	_, err := events.NewPublisher(ch)

	require.NoError(t, err)
	require.Equal(t, []string{events.Exchange + "/topic"}, ch.declared)
}

func TestNewPublisher_DeclareFails(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}

	_, err := events.NewPublisher(ch)

	assert.Error(t, err)
}

func TestPublishJourneyCompleted_Payload(t *testing.T) {
	ch := &fakeChannel{}
	p, err := events.NewPublisher(ch)
	require.NoError(t, err)

	j := completedJourney()
	require.NoError(t, p.PublishJourneyCompleted(context.Background(), j))

	require.Len(t, ch.published, 1)
	assert.Equal(t, []string{events.Exchange + "/" + events.RoutingKeyJourneyCompleted}, ch.keys)
	assert.Equal(t, "application/json", ch.published[0].ContentType)

	var msg events.JourneyCompletedMessage
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &msg))
	assert.Equal(t, j.ID.String(), msg.JourneyID)
	assert.Equal(t, int64(180), msg.DistanceKm)
	assert.Equal(t, int64(19800), msg.ActiveSeconds)
	require.NotNil(t, msg.Earnings)
	assert.Equal(t, int64(3000), msg.Earnings.TotalCents)
}

func TestPublishJourneyCompleted_BrokerError(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := events.NewPublisher(ch)
	require.NoError(t, err)

	err = p.PublishJourneyCompleted(context.Background(), completedJourney())

	assert.Error(t, err)
}
