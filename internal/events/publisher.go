package events

import (
	"context"
	"encoding/json"
	"time"

	"beautyvault/internal/logger"

	"github.com/segmentio/kafka-go"
)

const Topic = "catalog-events"

// Event types understood by the worker.
const (
	TypeImportCompleted       = "import.completed"
	TypeOutboundSyncRequested = "sync.outbound.requested"
	TypeInboundSyncRequested  = "sync.inbound.requested"
)

type Event struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Publisher emits catalog events. Publishing is best effort: a broker outage
// must never fail the import or sync run that triggered the event, so Publish
// logs failures instead of returning them.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(brokers string, logger *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: writer, logger: logger}
}

func (p *Publisher) Publish(eventType string, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal %s event: %v", eventType, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: value,
	}); err != nil {
		p.logger.Error("failed to publish %s event: %v", eventType, err)
		return
	}
	p.logger.Debug("published %s event", eventType)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
