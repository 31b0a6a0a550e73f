// Package events publishes prefill-completed events. Publishing is fire and
// forget from the prefill path: a full queue or broker outage never fails the
// document.
package events

import (
	"context"
	"log/slog"
	"time"

	"sedprefill/pkg/requestcontext"
)

// PrefillCompleted is emitted after a document is successfully assembled.
type PrefillCompleted struct {
	SedType    string    `json:"sedType"`
	BucType    string    `json:"bucType"`
	RinaCaseID string    `json:"rinaCaseId"`
	SakNummer  string    `json:"sakNummer"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher queues events onto a bounded channel drained by a Worker.
type Publisher struct {
	inbox  chan PrefillCompleted
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	if buffer <= 0 {
		buffer = 64
	}
	return &Publisher{
		inbox:  make(chan PrefillCompleted, buffer),
		logger: logger,
	}
}

// Publish enqueues without blocking. Dropped events are logged, not retried;
// the event stream is an operational aid, not a system of record. The
// timestamp defaults to the request clock so the event carries the same
// instant the document was assembled under.
func (p *Publisher) Publish(ctx context.Context, event PrefillCompleted) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx).UTC()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "event queue full, dropping prefill event",
			"sed_type", event.SedType,
			"rina_case_id", event.RinaCaseID,
		)
	}
}

// Inbox exposes the receive side for the worker.
func (p *Publisher) Inbox() <-chan PrefillCompleted {
	return p.inbox
}
