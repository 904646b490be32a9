// Package transferservice manages business logic layer of fund movements.
package transferservice

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/hamrobank/ledger/internal/domain"
	"github.com/hamrobank/ledger/pkg/errorspkg"
	"github.com/hamrobank/ledger/pkg/sanitizepkg"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	// maxAttempts bounds retries after optimistic-update conflicts.
	maxAttempts = 3
	// refAttempts bounds reference number regeneration on collision.
	refAttempts = 3
)

var accountNumberRE = regexp.MustCompile(`^[0-9]{10}$`)

// AccountRepo provides the account lookups needed by the engine.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type AccountRepo interface {
	Get(ctx context.Context, id int64) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
}

// TxRepo provides the atomic unit of work for balance mutations.
type TxRepo interface {
	Transfer(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error)
	Adjust(ctx context.Context, arg domain.AdjustTxParams) (domain.AdjustTxResult, error)
}

// Journal provides the reference number uniqueness check.
type Journal interface {
	ReferenceExists(ctx context.Context, ref string) (bool, error)
}

// ReferenceGenerator produces candidate transaction reference numbers.
type ReferenceGenerator interface {
	Next() string
}

// Auditor records operation events best-effort, without blocking the caller.
type Auditor interface {
	Record(ctx context.Context, event domain.AuditEvent)
}

// Service facilitates fund movement business logic.
type Service struct {
	repo     TxRepo
	accounts AccountRepo
	journal  Journal
	refs     ReferenceGenerator
	auditor  Auditor
}

// New returns transfer service struct to manage fund movement business logic.
func New(repo TxRepo, accounts AccountRepo, journal Journal, refs ReferenceGenerator, auditor Auditor) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		journal:  journal,
		refs:     refs,
		auditor:  auditor,
	}
}

type transferPlan struct {
	source      domain.Account
	destination domain.Account
	amount      decimal.Decimal
}

// Transfer validates the request and atomically moves money between the two
// accounts, appending one COMPLETED journal record.
//
// Balance mutations use conditional updates; on a concurrent-modification
// conflict the whole transfer is revalidated against fresh balances and
// retried a bounded number of times before the conflict is surfaced.
func (s *Service) Transfer(ctx context.Context, caller domain.Caller, req domain.TransferRequest) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		plan, err := s.validateTransfer(ctx, req)
		if err != nil {
			return domain.TransferTxResult{}, err
		}

		ref, err := s.uniqueReference(ctx)
		if err != nil {
			return domain.TransferTxResult{}, err
		}

		sourceBalance, err := decimal.NewFromString(plan.source.Balance)
		if err != nil {
			l.Error().Err(err).Send()
			return domain.TransferTxResult{}, errorspkg.ErrInternal
		}

		destinationBalance, err := decimal.NewFromString(plan.destination.Balance)
		if err != nil {
			l.Error().Err(err).Send()
			return domain.TransferTxResult{}, errorspkg.ErrInternal
		}

		sourceID, destinationID := plan.source.ID, plan.destination.ID

		arg := domain.TransferTxParams{
			Source: domain.BalanceChange{
				AccountID:       sourceID,
				ExpectedBalance: plan.source.Balance,
				NewBalance:      sourceBalance.Sub(plan.amount).String(),
			},
			Destination: domain.BalanceChange{
				AccountID:       destinationID,
				ExpectedBalance: plan.destination.Balance,
				NewBalance:      destinationBalance.Add(plan.amount).String(),
			},
			Transaction: domain.CreateTransactionParams{
				Type:                 domain.TypeTransfer,
				Amount:               plan.amount.String(),
				SourceAccountID:      &sourceID,
				DestinationAccountID: &destinationID,
				Description:          sanitizepkg.Markup(req.Description),
				Status:               domain.StatusCompleted,
				ReferenceNumber:      ref,
			},
		}

		result, err := s.repo.Transfer(ctx, arg)
		if errors.Is(err, domain.ErrConcurrentModification) {
			l.Info().Int("attempt", attempt).Msg("transfer conflict, retrying")
			continue
		}

		if err != nil {
			return domain.TransferTxResult{}, fmt.Errorf("%w: %w", domain.ErrTransferFailed, err)
		}

		s.auditor.Record(ctx, domain.AuditEvent{
			ActorID:      caller.PrincipalID,
			ActivityType: domain.ActivityTransfer,
			Description: fmt.Sprintf("Transfer of %s from account %s to account %s",
				plan.amount, plan.source.AccountNumber, plan.destination.AccountNumber),
			IPAddress: caller.IP,
			UserAgent: caller.UserAgent,
		})

		return result, nil
	}

	return domain.TransferTxResult{}, fmt.Errorf("%w: %w", domain.ErrTransferFailed, domain.ErrConcurrentModification)
}

// Deposit atomically credits the account and appends a DEPOSIT journal record.
func (s *Service) Deposit(ctx context.Context, caller domain.Caller, accountID int64, amount, description string) (domain.AdjustTxResult, error) {
	return s.adjust(ctx, caller, accountID, amount, description, domain.TypeDeposit)
}

// Withdraw atomically debits the account and appends a WITHDRAWAL journal record.
func (s *Service) Withdraw(ctx context.Context, caller domain.Caller, accountID int64, amount, description string) (domain.AdjustTxResult, error) {
	return s.adjust(ctx, caller, accountID, amount, description, domain.TypeWithdrawal)
}

func (s *Service) adjust(ctx context.Context, caller domain.Caller, accountID int64, amount, description string,
	txType domain.TransactionType) (domain.AdjustTxResult, error) {
	l := zerolog.Ctx(ctx)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		account, amountDecimal, err := s.validateAdjust(ctx, accountID, amount, txType)
		if err != nil {
			return domain.AdjustTxResult{}, err
		}

		ref, err := s.uniqueReference(ctx)
		if err != nil {
			return domain.AdjustTxResult{}, err
		}

		balance, err := decimal.NewFromString(account.Balance)
		if err != nil {
			l.Error().Err(err).Send()
			return domain.AdjustTxResult{}, errorspkg.ErrInternal
		}

		newBalance := balance.Add(amountDecimal)
		params := domain.CreateTransactionParams{
			Type:                 txType,
			Amount:               amountDecimal.String(),
			DestinationAccountID: &account.ID,
			Description:          sanitizepkg.Markup(description),
			Status:               domain.StatusCompleted,
			ReferenceNumber:      ref,
		}

		if txType == domain.TypeWithdrawal {
			newBalance = balance.Sub(amountDecimal)
			params.DestinationAccountID = nil
			params.SourceAccountID = &account.ID
		}

		arg := domain.AdjustTxParams{
			Change: domain.BalanceChange{
				AccountID:       account.ID,
				ExpectedBalance: account.Balance,
				NewBalance:      newBalance.String(),
			},
			Transaction: params,
		}

		result, err := s.repo.Adjust(ctx, arg)
		if errors.Is(err, domain.ErrConcurrentModification) {
			l.Info().Int("attempt", attempt).Msg("balance conflict, retrying")
			continue
		}

		if err != nil {
			return domain.AdjustTxResult{}, fmt.Errorf("%w: %w", domain.ErrTransferFailed, err)
		}

		activity := domain.ActivityDeposit
		if txType == domain.TypeWithdrawal {
			activity = domain.ActivityWithdrawal
		}

		s.auditor.Record(ctx, domain.AuditEvent{
			ActorID:      caller.PrincipalID,
			ActivityType: activity,
			Description:  fmt.Sprintf("%s of %s on account %s", activity, amountDecimal, account.AccountNumber),
			IPAddress:    caller.IP,
			UserAgent:    caller.UserAgent,
		})

		return result, nil
	}

	return domain.AdjustTxResult{}, fmt.Errorf("%w: %w", domain.ErrTransferFailed, domain.ErrConcurrentModification)
}

// validateTransfer checks every rule and reports all violations together.
// Nothing is mutated on failure.
func (s *Service) validateTransfer(ctx context.Context, req domain.TransferRequest) (transferPlan, error) {
	var (
		plan       transferPlan
		violations []error
	)

	amount, amountViolations := parseAmount(req.Amount)
	violations = append(violations, amountViolations...)

	if req.SourceAccountID <= 0 {
		violations = append(violations, domain.ErrSourceAccountRequired)
	} else {
		source, err := s.accounts.Get(ctx, req.SourceAccountID)

		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			violations = append(violations, fmt.Errorf("source: %w", domain.ErrAccountNotFound))
		case err != nil:
			return plan, err
		default:
			plan.source = source

			if source.Status != domain.StatusActive {
				violations = append(violations, fmt.Errorf("source: %w", domain.ErrAccountInactive))
			} else if len(amountViolations) == 0 {
				balance, err := decimal.NewFromString(source.Balance)
				if err != nil {
					zerolog.Ctx(ctx).Error().Err(err).Send()
					return plan, errorspkg.ErrInternal
				}

				if balance.LessThan(amount) {
					violations = append(violations, domain.ErrInsufficientFunds)
				}
			}
		}
	}

	// A malformed number never reaches the store.
	if !accountNumberRE.MatchString(req.DestinationAccountNumber) {
		violations = append(violations, domain.ErrInvalidAccountNumber)
	} else {
		destination, err := s.accounts.GetByNumber(ctx, req.DestinationAccountNumber)

		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			violations = append(violations, fmt.Errorf("destination: %w", domain.ErrAccountNotFound))
		case err != nil:
			return plan, err
		default:
			plan.destination = destination

			if destination.Status != domain.StatusActive {
				violations = append(violations, fmt.Errorf("destination: %w", domain.ErrAccountInactive))
			}
		}
	}

	if plan.source.ID != 0 && plan.destination.ID != 0 && plan.source.ID == plan.destination.ID {
		violations = append(violations, domain.ErrSameAccount)
	}

	if len(violations) > 0 {
		return plan, &domain.ValidationError{Violations: violations}
	}

	plan.amount = amount

	return plan, nil
}

func (s *Service) validateAdjust(ctx context.Context, accountID int64, amount string,
	txType domain.TransactionType) (domain.Account, decimal.Decimal, error) {
	var violations []error

	amountDecimal, amountViolations := parseAmount(amount)
	violations = append(violations, amountViolations...)

	account, err := s.accounts.Get(ctx, accountID)

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		violations = append(violations, domain.ErrAccountNotFound)
	case err != nil:
		return domain.Account{}, decimal.Zero, err
	default:
		if account.Status != domain.StatusActive {
			violations = append(violations, domain.ErrAccountInactive)
		} else if txType == domain.TypeWithdrawal && len(amountViolations) == 0 {
			balance, err := decimal.NewFromString(account.Balance)
			if err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Send()
				return domain.Account{}, decimal.Zero, errorspkg.ErrInternal
			}

			if balance.LessThan(amountDecimal) {
				violations = append(violations, domain.ErrInsufficientFunds)
			}
		}
	}

	if len(violations) > 0 {
		return domain.Account{}, decimal.Zero, &domain.ValidationError{Violations: violations}
	}

	return account, amountDecimal, nil
}

// uniqueReference returns a reference number verified to be unused in the
// journal, regenerating on the rare collision.
func (s *Service) uniqueReference(ctx context.Context) (string, error) {
	l := zerolog.Ctx(ctx)

	for i := 0; i < refAttempts; i++ {
		ref := s.refs.Next()

		taken, err := s.journal.ReferenceExists(ctx, ref)
		if err != nil {
			return "", err
		}

		if !taken {
			return ref, nil
		}

		l.Warn().Str("reference", ref).Msg("reference number collision, regenerating")
	}

	return "", errorspkg.ErrInternal
}

func parseAmount(s string) (decimal.Decimal, []error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, []error{domain.ErrInvalidAmount}
	}

	var violations []error

	if amount.LessThanOrEqual(decimal.Zero) {
		violations = append(violations, domain.ErrNonPositiveAmount)
	}

	if amount.Exponent() < -2 {
		violations = append(violations, domain.ErrAmountPrecision)
	}

	return amount, violations
}
