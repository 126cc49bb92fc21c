// Package events publishes profile lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/alirk24/sejam-porfiling/internal/platform/kafka/producer"
	"github.com/alirk24/sejam-porfiling/internal/profile/models"
)

// EventProfileVerified is emitted after a profile has been fetched,
// normalized and persisted.
const EventProfileVerified = "profile.verified"

// ProfileVerified is the payload published when a profile is persisted.
type ProfileVerified struct {
	Event            string    `json:"event"`
	UniqueIdentifier string    `json:"uniqueIdentifier"`
	PersonType       string    `json:"personType"`
	Shareholders     int       `json:"shareholders"`
	OccurredAt       time.Time `json:"occurredAt"`
}

// MessageProducer is the subset of the Kafka producer used by the publisher.
type MessageProducer interface {
	ProduceAsync(msg *producer.Message) error
}

// Publisher emits profile events to a Kafka topic. A nil Publisher is a
// valid no-op, so callers need no conditional wiring when Kafka is disabled.
type Publisher struct {
	producer MessageProducer
	topic    string
	logger   *slog.Logger
}

// NewPublisher creates a publisher bound to the given topic.
func NewPublisher(p MessageProducer, topic string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{producer: p, topic: topic, logger: logger}
}

// ProfileVerified publishes a verification event for the given profile.
// Delivery is best effort: failures are logged, never propagated, so the
// request path does not depend on broker availability.
func (p *Publisher) ProfileVerified(ctx context.Context, profile *models.Profile, shareholders int) {
	if p == nil || p.producer == nil {
		return
	}

	payload := ProfileVerified{
		Event:            EventProfileVerified,
		UniqueIdentifier: profile.UniqueIdentifier,
		PersonType:       string(profile.Kind),
		Shareholders:     shareholders,
		OccurredAt:       time.Now().UTC(),
	}

	value, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("marshal profile event", "error", err)
		return
	}

	msg := &producer.Message{
		Topic: p.topic,
		Key:   []byte(profile.UniqueIdentifier),
		Value: value,
		Headers: map[string]string{
			"event": EventProfileVerified,
		},
	}

	if err := p.producer.ProduceAsync(msg); err != nil {
		p.logger.Error("publish profile event",
			"topic", p.topic,
			"identifier", profile.UniqueIdentifier,
			"error", err,
		)
	}
}
