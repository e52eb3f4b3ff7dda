package worker

import (
	"context"
	"encoding/json"
	"time"

	"beautyvault/internal/config"
	"beautyvault/internal/events"
	"beautyvault/internal/logger"
	"beautyvault/internal/sync"

	"github.com/segmentio/kafka-go"
)

// Worker consumes catalog events and runs the synchronizer passes off the
// request path, so admin endpoints can enqueue a sync instead of blocking on
// the Wix API.
type Worker struct {
	config   *config.Config
	logger   *logger.Logger
	reader   *kafka.Reader
	outbound *sync.Outbound
	inbound  *sync.Inbound
}

func New(cfg *config.Config, logger *logger.Logger, outbound *sync.Outbound, inbound *sync.Inbound) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.KafkaBrokers},
		GroupID:        "beautyvault-worker",
		Topic:          events.Topic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config:   cfg,
		logger:   logger,
		reader:   reader,
		outbound: outbound,
		inbound:  inbound,
	}
}

func (w *Worker) Start() {
	w.logger.Info("Worker started, listening for catalog events...")

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			// Usually just the poll deadline expiring on an idle topic.
			w.logger.Debug("Failed to read message: %v", err)
			continue
		}

		var event events.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("Failed to parse event: %v", err)
			continue
		}

		w.process(event)
	}
}

func (w *Worker) process(event events.Event) {
	switch event.Type {
	case events.TypeOutboundSyncRequested:
		report, err := w.outbound.Run()
		if err != nil {
			w.logger.Error("Outbound sync failed: %v", err)
			return
		}
		w.logger.Info("Outbound sync done: %d synced, %d errors", report.Count, len(report.Errors))

	case events.TypeInboundSyncRequested:
		report, err := w.inbound.Run()
		if err != nil {
			w.logger.Error("Inbound sync failed: %v", err)
			return
		}
		w.logger.Info("Inbound sync done: %d updated, %d errors", report.Count, len(report.Errors))

	case events.TypeImportCompleted:
		// Imports feed the outbound pass: freshly imported rows have no Wix
		// id yet.
		report, err := w.outbound.Run()
		if err != nil {
			w.logger.Error("Post-import outbound sync failed: %v", err)
			return
		}
		w.logger.Info("Post-import sync done: %d synced, %d errors", report.Count, len(report.Errors))

	default:
		w.logger.Debug("Ignoring event type %s", event.Type)
	}
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.reader.Close()
}
