// Package transferrepo manages the atomic unit of work for balance mutations.
package transferrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hamrobank/ledger/internal/accountrepo"
	"github.com/hamrobank/ledger/internal/domain"
	"github.com/hamrobank/ledger/internal/transactionrepo"
	"github.com/hamrobank/ledger/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS executes balance mutations and the journal write inside a single
// database transaction.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns transfer RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{
		conn: conn,
	}
}

// Transfer moves money between two accounts.
//
// Both conditional balance updates and the journal record commit together or
// not at all. Updates run in ascending account id order so that concurrent
// opposite transfers cannot deadlock. A failed balance condition surfaces as
// domain.ErrConcurrentModification with every tentative change rolled back.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	journal := transactionrepo.NewRepoPGS(tx)

	first, second := arg.Source, arg.Destination
	if second.AccountID < first.AccountID {
		first, second = second, first
	}

	accounts := make(map[int64]domain.Account, 2)

	for _, change := range []domain.BalanceChange{first, second} {
		account, err := accountRepo.UpdateBalanceIf(ctx, change.AccountID, change.ExpectedBalance, change.NewBalance)
		if err != nil {
			return result, err
		}

		accounts[change.AccountID] = account
	}

	result.SourceAccount = accounts[arg.Source.AccountID]
	result.DestinationAccount = accounts[arg.Destination.AccountID]

	result.Transaction, err = journal.Create(ctx, arg.Transaction)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

// Adjust applies a deposit or withdrawal to one account together with its
// journal record, atomically.
func (r *RepoPGS) Adjust(ctx context.Context, arg domain.AdjustTxParams) (domain.AdjustTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.AdjustTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	journal := transactionrepo.NewRepoPGS(tx)

	result.Account, err = accountRepo.UpdateBalanceIf(ctx,
		arg.Change.AccountID, arg.Change.ExpectedBalance, arg.Change.NewBalance)
	if err != nil {
		return result, err
	}

	result.Transaction, err = journal.Create(ctx, arg.Transaction)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.AdjustTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}
