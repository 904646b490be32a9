// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountInactive indicates that the account is not in ACTIVE status.
	ErrAccountInactive = errors.New("account is not active")
	// ErrInsufficientFunds indicates that the account balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrConcurrentModification indicates that the account balance changed between read and write.
	ErrConcurrentModification = errors.New("account modified concurrently")
)

// AccountStatus enumerates the lifecycle states of an account.
type AccountStatus string

// Account statuses.
const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusInactive AccountStatus = "INACTIVE"
	StatusClosed   AccountStatus = "CLOSED"
)

// Account holds balance data for a single account.
//
// Balance is an exact decimal with scale 2 transported as a string.
// It is mutated only through the conditional update in accountrepo.
type Account struct {
	ID            int64         `json:"id"`
	AccountNumber string        `json:"account_number"`
	OwnerID       int64         `json:"owner_id"`
	Balance       string        `json:"balance"`
	Status        AccountStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}
