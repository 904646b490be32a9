package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationErrorIs(t *testing.T) {
	err := &ValidationError{Violations: []error{
		ErrNonPositiveAmount,
		fmt.Errorf("destination: %w", ErrAccountNotFound),
	}}

	require.ErrorIs(t, err, ErrNonPositiveAmount)
	require.ErrorIs(t, err, ErrAccountNotFound)
	require.NotErrorIs(t, err, ErrInsufficientFunds)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Violations: []error{
		ErrInvalidAmount,
		ErrSameAccount,
	}}

	require.Equal(t, "invalid amount; source and destination accounts cannot be the same", err.Error())
}

func TestValidationErrorAs(t *testing.T) {
	var wrapped error = fmt.Errorf("rejected: %w",
		&ValidationError{Violations: []error{ErrInvalidAccountNumber}})

	var ve *ValidationError
	require.True(t, errors.As(wrapped, &ve))
	require.Len(t, ve.Violations, 1)
}
