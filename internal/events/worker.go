package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"sedprefill/internal/platform/config"
)

// Sink delivers serialized events. The kafka client satisfies it; tests swap
// in a recorder.
type Sink interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// NewKafkaClient builds the franz-go producer. Returns nil when no brokers
// are configured, leaving the worker idle.
func NewKafkaClient(cfg config.KafkaConfig) (*kgo.Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	return kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
	)
}

// Worker drains the publisher's inbox into kafka.
type Worker struct {
	inbox  <-chan PrefillCompleted
	sink   Sink
	topic  string
	logger *slog.Logger
}

func NewWorker(inbox <-chan PrefillCompleted, sink Sink, topic string, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{inbox: inbox, sink: sink, topic: topic, logger: logger}
}

// Run consumes until the context is cancelled. Delivery failures are logged
// and the event is discarded; prefill results are never blocked on the
// broker.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if w.sink == nil {
				continue
			}
			payload, err := json.Marshal(event)
			if err != nil {
				w.logger.ErrorContext(ctx, "marshal prefill event", "error", err)
				continue
			}
			record := &kgo.Record{
				Topic: w.topic,
				Key:   []byte(event.RinaCaseID),
				Value: payload,
			}
			if err := w.sink.ProduceSync(ctx, record).FirstErr(); err != nil {
				w.logger.WarnContext(ctx, "prefill event delivery failed",
					"error", err,
					"rina_case_id", event.RinaCaseID,
				)
			}
		}
	}
}
