// Package auditrepo manages the persistent activity log.
package auditrepo

import (
	"context"

	"github.com/hamrobank/ledger/internal/domain"
	"github.com/hamrobank/ledger/pkg/dbpkg"
	"github.com/hamrobank/ledger/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS facilitates activity log repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns audit RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    activity_logs (actor_id, activity_type, description, ip_address, user_agent)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, created_at
`

// Record persists one audit event.
func (r *RepoPGS) Record(ctx context.Context, event domain.AuditEvent) error {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		event.ActorID,
		event.ActivityType,
		event.Description,
		event.IPAddress,
		event.UserAgent,
	)

	if err := row.Scan(&event.ID, &event.CreatedAt); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
