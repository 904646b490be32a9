package domain

import (
	"errors"
	"strings"
)

var (
	// ErrSourceAccountRequired indicates a missing source account id.
	ErrSourceAccountRequired = errors.New("source account is required")
	// ErrInvalidAccountNumber indicates that the account number is not exactly 10 digits.
	ErrInvalidAccountNumber = errors.New("invalid account number")
	// ErrInvalidAmount indicates an unparsable amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount indicates a zero or negative amount.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	// ErrAmountPrecision indicates an amount with more than two decimal places.
	ErrAmountPrecision = errors.New("amount exceeds two decimal places")
	// ErrSameAccount indicates that source and destination resolve to the same account.
	ErrSameAccount = errors.New("source and destination accounts cannot be the same")
	// ErrTransferFailed indicates that the transfer could not be committed.
	ErrTransferFailed = errors.New("transfer failed")
)

// TransferRequest is the input data for a fund transfer.
type TransferRequest struct {
	SourceAccountID          int64  `json:"source_account_id"`
	DestinationAccountNumber string `json:"destination_account_number"`
	Amount                   string `json:"amount"`
	Description              string `json:"description"`
}

// BalanceChange is one conditional balance mutation.
type BalanceChange struct {
	AccountID       int64
	ExpectedBalance string
	NewBalance      string
}

// TransferTxParams is the input data for the atomic transfer transaction.
type TransferTxParams struct {
	Source      BalanceChange
	Destination BalanceChange
	Transaction CreateTransactionParams
}

// AdjustTxParams is the input data for an atomic deposit or withdrawal.
type AdjustTxParams struct {
	Change      BalanceChange
	Transaction CreateTransactionParams
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	Transaction        Transaction `json:"transaction"`
	SourceAccount      Account     `json:"source_account"`
	DestinationAccount Account     `json:"destination_account"`
}

// AdjustTxResult is the result of a deposit or withdrawal transaction.
type AdjustTxResult struct {
	Transaction Transaction `json:"transaction"`
	Account     Account     `json:"account"`
}

// ValidationError aggregates every rule a request violated.
//
// It matches any of its violations through errors.Is so that callers
// can branch on the individual rules.
type ValidationError struct {
	Violations []error
}

// Error joins the violated rule messages.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}

	return strings.Join(msgs, "; ")
}

// Is reports whether any violation matches target.
func (e *ValidationError) Is(target error) bool {
	for _, v := range e.Violations {
		if errors.Is(v, target) {
			return true
		}
	}

	return false
}
