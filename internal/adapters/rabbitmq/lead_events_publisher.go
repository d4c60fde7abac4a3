package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/keertiraj-bot/realstate/internal/constants"
	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/contracts"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the part of rabbitmq_producer.Publisher this adapter needs.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// LeadEventsPublisher emits a LeadSubmittedEvent for each stored lead.
type LeadEventsPublisher struct {
	producer   Publisher
	routingKey string
}

func NewLeadEventsPublisher(producer Publisher, routingKey string) (*LeadEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("routingKey cannot be empty")
	}
	return &LeadEventsPublisher{producer: producer, routingKey: routingKey}, nil
}

func (a *LeadEventsPublisher) PublishLeadSubmitted(ctx context.Context, lead domain.Lead) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "LeadEventsPublisher",
		"routing_key": a.routingKey,
		"lead_id":     lead.ID.String(),
	})

	eventDTO := LeadSubmittedEventDTO{
		LeadID:      lead.ID,
		Source:      string(lead.Source),
		PropertyID:  lead.PropertyID,
		PropertyRef: lead.PropertyRef(),
		City:        lead.City,
		Budget:      lead.Budget,
		SubmittedAt: lead.CreatedAt.UTC(),
	}

	body, err := json.Marshal(eventDTO)
	if err != nil {
		adapterLogger.Error("Failed to marshal lead event", err, nil)
		return fmt.Errorf("failed to marshal lead event: %w", err)
	}

	if err := contracts.ValidateEvent(constants.LeadSubmittedEventType, constants.LeadSubmittedEventSchema, body); err != nil {
		adapterLogger.Error("Lead event does not match its schema", err, nil)
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    constants.LeadSubmittedEventType,
			"event-version": constants.LeadSubmittedEventSchema,
		},
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers[constants.EventTraceIDHeader] = traceID
	}

	if err := a.producer.Publish(ctx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish lead event", err, nil)
		return err
	}

	adapterLogger.Info("Lead event published", port.Fields{"source": eventDTO.Source})
	return nil
}
