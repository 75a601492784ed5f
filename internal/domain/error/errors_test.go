package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError(1001, "60.00", "50.00")

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Contains(t, err.Error(), "required 60.00")
	assert.Contains(t, err.Error(), "available 50.00")

	var ibe *InsufficientBalanceError
	assert.True(t, errors.As(err, &ibe))
	assert.Equal(t, uint32(1001), ibe.UserID)
	assert.Equal(t, "insufficient_balance", ibe.LogFields()["error_type"])
}

func TestStorageError(t *testing.T) {
	cause := errors.New("short write")
	err := NewStorageError("accounts.db", "write", cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "accounts.db")
	assert.True(t, IsStorageError(err))
	assert.False(t, IsStorageError(ErrUserNotFound))
}

func TestAbortError(t *testing.T) {
	t.Run("with underlying error", func(t *testing.T) {
		err := &AbortError{Reason: "balance would go negative", Err: ErrInsufficientBalance}
		assert.ErrorIs(t, err, ErrUpdateAborted)
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("reason only", func(t *testing.T) {
		err := &AbortError{Reason: "no change needed"}
		assert.ErrorIs(t, err, ErrUpdateAborted)
		assert.Contains(t, err.Error(), "no change needed")
	})
}

func TestErrorClassification(t *testing.T) {
	notFound := []error{ErrUserNotFound, ErrAccountNotFound, ErrLoanNotFound, ErrFeedbackNotFound}
	for _, err := range notFound {
		assert.True(t, IsNotFound(err), err.Error())
		assert.False(t, IsInvariantViolation(err), err.Error())
	}

	invariant := []error{
		ErrInsufficientBalance, ErrAccountInactive, ErrUserInactive,
		ErrDuplicateUser, ErrWrongLoanState, ErrNotAssignee,
		ErrRoleMismatch, ErrSameAccount, ErrNegativeAmount,
	}
	for _, err := range invariant {
		assert.True(t, IsInvariantViolation(err), err.Error())
		assert.False(t, IsNotFound(err), err.Error())
	}

	// Wrapping must not hide the classification.
	wrapped := fmt.Errorf("recipient: %w", ErrAccountInactive)
	assert.True(t, IsInvariantViolation(wrapped))
}
