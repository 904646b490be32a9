// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/hamrobank/ledger/internal/domain"
	"github.com/hamrobank/ledger/pkg/dbpkg"
	"github.com/hamrobank/ledger/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const getQuery = `
SELECT
	id, account_number, owner_id, balance, status, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.AccountNumber,
		&a.OwnerID,
		&a.Balance,
		&a.Status,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByNumberQuery = `
SELECT
	id, account_number, owner_id, balance, status, created_at
FROM accounts
WHERE account_number = $1
`

// GetByNumber returns the account with the given 10-digit account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByNumberQuery, number)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.AccountNumber,
		&a.OwnerID,
		&a.Balance,
		&a.Status,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listByOwnerQuery = `
SELECT
	id, account_number, owner_id, balance, status, created_at
FROM accounts
WHERE owner_id = $1
ORDER BY id
`

// ListByOwner returns all accounts owned by the given user.
func (r *RepoPGS) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByOwnerQuery, ownerID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.AccountNumber, &a.OwnerID, &a.Balance, &a.Status, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateBalanceIfQuery = `
UPDATE accounts
SET balance = $1
WHERE id = $2 AND balance = $3
RETURNING id, account_number, owner_id, balance, status, created_at
`

// UpdateBalanceIf applies newBalance only if the stored balance still equals
// expectedBalance and returns the updated account.
//
// A plain read-then-write loses updates under concurrent transfers; every
// balance mutation must go through this conditional write. When the stored
// balance no longer matches, the write affects no rows and
// domain.ErrConcurrentModification is returned.
func (r *RepoPGS) UpdateBalanceIf(ctx context.Context, id int64, expectedBalance, newBalance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateBalanceIfQuery, newBalance, id, expectedBalance)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.AccountNumber,
		&a.OwnerID,
		&a.Balance,
		&a.Status,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrConcurrentModification
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientFunds
			}
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
