// Package transactionrepo manages the append-only transaction journal.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/hamrobank/ledger/internal/domain"
	"github.com/hamrobank/ledger/pkg/dbpkg"
	"github.com/hamrobank/ledger/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (type, amount, source_account_id, destination_account_id, description, status, reference_number)
VALUES
    ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, type, amount, source_account_id, destination_account_id, description, status, reference_number, created_at
`

// Create appends a transaction record to the journal and returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Type,
		arg.Amount,
		arg.SourceAccountID,
		arg.DestinationAccountID,
		arg.Description,
		arg.Status,
		arg.ReferenceNumber,
	)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_source_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_destination_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_reference_number_key":
				return t, domain.ErrReferenceTaken
			case "transactions_amount_check":
				return t, domain.ErrNonPositiveAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	id, type, amount, source_account_id, destination_account_id, description, status, reference_number, created_at
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getByReferenceQuery = `
SELECT
	id, type, amount, source_account_id, destination_account_id, description, status, reference_number, created_at
FROM transactions
WHERE reference_number = $1
`

// GetByReference returns the transaction with the given reference number.
func (r *RepoPGS) GetByReference(ctx context.Context, ref string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByReferenceQuery, ref)

	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listByAccountQuery = `
SELECT
	id, type, amount, source_account_id, destination_account_id, description, status, reference_number, created_at
FROM transactions
WHERE source_account_id = $1 OR destination_account_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

// ListByAccount returns transactions referencing the account as source or
// destination, most recent first.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID int64, limit, offset int32) ([]domain.Transaction, error) {
	return r.list(ctx, listByAccountQuery, accountID, limit, offset)
}

const listRecentQuery = `
SELECT
	id, type, amount, source_account_id, destination_account_id, description, status, reference_number, created_at
FROM transactions
WHERE source_account_id = $1 OR destination_account_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`

// ListRecent returns up to limit most recent transactions for the account.
// Ties on created_at are broken by insertion order.
func (r *RepoPGS) ListRecent(ctx context.Context, accountID int64, limit int32) ([]domain.Transaction, error) {
	return r.list(ctx, listRecentQuery, accountID, limit)
}

const referenceExistsQuery = `
SELECT EXISTS (
	SELECT 1 FROM transactions WHERE reference_number = $1
)
`

// ReferenceExists reports whether a transaction already carries the given
// reference number.
func (r *RepoPGS) ReferenceExists(ctx context.Context, ref string) (bool, error) {
	l := zerolog.Ctx(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, referenceExistsQuery, ref).Scan(&exists); err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return exists, nil
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...interface{}) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.Type,
			&t.Amount,
			&t.SourceAccountID,
			&t.DestinationAccountID,
			&t.Description,
			&t.Status,
			&t.ReferenceNumber,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanTransaction(row *sql.Row) (domain.Transaction, error) {
	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.Type,
		&t.Amount,
		&t.SourceAccountID,
		&t.DestinationAccountID,
		&t.Description,
		&t.Status,
		&t.ReferenceNumber,
		&t.CreatedAt,
	)

	return t, err
}
