// Package auditservice fans audit events out to the configured sinks.
package auditservice

import (
	"context"
	"time"

	"github.com/hamrobank/ledger/internal/domain"

	"github.com/rs/zerolog"
)

const recordTimeout = 5 * time.Second

// Sink is one destination for audit events.
//
//go:generate mockgen -source service.go -destination service_mock.go -package auditservice
type Sink interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// Service delivers audit events to every sink best-effort.
//
// Record returns immediately; a sink failure is logged at error level and
// never affects the outcome of the operation being audited.
type Service struct {
	sinks []Sink
}

// New returns audit service struct fanning out to the given sinks.
func New(sinks ...Sink) *Service {
	return &Service{sinks: sinks}
}

// Record delivers the event to all sinks without blocking the caller.
func (s *Service) Record(ctx context.Context, event domain.AuditEvent) {
	l := zerolog.Ctx(ctx).With().Logger()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	// The request context may be cancelled before the sinks finish;
	// delivery runs on its own deadline.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		for _, sink := range s.sinks {
			if err := sink.Record(ctx, event); err != nil {
				l.Error().Err(err).
					Str("activity_type", event.ActivityType).
					Msg("audit sink failed")
			}
		}
	}()
}
