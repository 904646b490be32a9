// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/hamrobank/ledger/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Get(ctx context.Context, id int64) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Get returns the account with the given ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// GetByNumber returns the account with the given account number.
func (s *Service) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	return s.repo.GetByNumber(ctx, number)
}

// ListByOwner returns the accounts owned by the given user.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Account, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
