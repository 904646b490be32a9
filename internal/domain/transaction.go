package domain

import (
	"errors"
	"time"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrReferenceTaken indicates that the reference number is already used by another transaction.
	ErrReferenceTaken = errors.New("reference number already taken")
)

// TransactionType enumerates the kinds of ledger records.
type TransactionType string

// Transaction types.
const (
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
	TypeTransfer   TransactionType = "TRANSFER"
)

// TransactionStatus enumerates the states of a ledger record.
type TransactionStatus string

// Transaction statuses.
const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// Transaction is an append-only ledger record.
//
// Once persisted with StatusCompleted it is never altered or removed.
// For TypeTransfer both account ids are present and distinct.
type Transaction struct {
	ID                   int64             `json:"id"`
	Type                 TransactionType   `json:"type"`
	Amount               string            `json:"amount"` // must be positive
	SourceAccountID      *int64            `json:"source_account_id,omitempty"`
	DestinationAccountID *int64            `json:"destination_account_id,omitempty"`
	Description          string            `json:"description,omitempty"`
	Status               TransactionStatus `json:"status"`
	ReferenceNumber      string            `json:"reference_number"`
	CreatedAt            time.Time         `json:"created_at"`
}

// CreateTransactionParams is the input data for a new ledger record.
type CreateTransactionParams struct {
	Type                 TransactionType
	Amount               string
	SourceAccountID      *int64
	DestinationAccountID *int64
	Description          string
	Status               TransactionStatus
	ReferenceNumber      string
}
