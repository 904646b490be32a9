// Package transactionservice manages read access to the transaction journal.
package transactionservice

import (
	"context"

	"github.com/hamrobank/ledger/internal/domain"
)

const (
	defaultLimit int32 = 10
	maxLimit     int32 = 100
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	GetByReference(ctx context.Context, ref string) (domain.Transaction, error)
	ListRecent(ctx context.Context, accountID int64, limit int32) ([]domain.Transaction, error)
}

// Service facilitates transaction journal reads.
type Service struct {
	repo Repo
}

// New returns transaction service struct to manage journal reads.
func New(tr Repo) *Service {
	return &Service{repo: tr}
}

// Get returns the transaction with the given ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	return s.repo.Get(ctx, id)
}

// GetByReference returns the transaction with the given reference number.
func (s *Service) GetByReference(ctx context.Context, ref string) (domain.Transaction, error) {
	return s.repo.GetByReference(ctx, ref)
}

// ListRecent returns up to limit most recent transactions for the account,
// clamping the limit to a sane window.
func (s *Service) ListRecent(ctx context.Context, accountID int64, limit int32) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	return s.repo.ListRecent(ctx, accountID, limit)
}
