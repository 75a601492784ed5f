package error

import (
	"errors"
	"fmt"
)

// Base error types
var (
	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrAccountNotFound is returned when the requested account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrLoanNotFound is returned when the requested loan doesn't exist
	ErrLoanNotFound = errors.New("loan not found")

	// ErrFeedbackNotFound is returned when the requested feedback doesn't exist
	ErrFeedbackNotFound = errors.New("feedback not found")

	// ErrInsufficientBalance is returned when an account has insufficient funds
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAccountInactive is returned when the target account is deactivated
	ErrAccountInactive = errors.New("account is inactive")

	// ErrUserInactive is returned when the user record is deactivated
	ErrUserInactive = errors.New("user is deactivated")

	// ErrInvalidAmount is returned when the amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when the amount is zero or negative
	ErrNegativeAmount = errors.New("amount must be positive")

	// ErrInvalidCredentials is returned on a failed login; deliberately the
	// same for unknown username and wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAlreadyLoggedIn is returned when a second concurrent login is attempted
	ErrAlreadyLoggedIn = errors.New("user is already logged in elsewhere")

	// ErrSessionsFull is returned when the session registry is at capacity
	ErrSessionsFull = errors.New("maximum concurrent sessions reached")

	// ErrDuplicateUser is returned when username, email or phone is taken
	ErrDuplicateUser = errors.New("username, email or phone already in use")

	// ErrWrongLoanState is returned when a loan transition is not allowed
	// from its current state
	ErrWrongLoanState = errors.New("loan is not in a state that allows this operation")

	// ErrNotAssignee is returned when an employee decides a loan assigned to
	// someone else
	ErrNotAssignee = errors.New("loan not assigned to you")

	// ErrRoleMismatch is returned when an operation targets a user of the
	// wrong role
	ErrRoleMismatch = errors.New("operation not allowed for this user role")

	// ErrSameAccount is returned on a transfer where sender equals receiver
	ErrSameAccount = errors.New("cannot transfer to the same account")

	// ErrCompensationFailed is returned when a transfer fails after the
	// withdrawal leg and the compensating deposit also fails
	ErrCompensationFailed = errors.New("transfer failed after withdrawal and could not be rolled back")

	// ErrStorage is returned for file open/read/write/lock failures
	ErrStorage = errors.New("storage failure")

	// ErrUpdateAborted is returned when a record mutator declines the change
	ErrUpdateAborted = errors.New("update aborted")
)

// IsNotFound reports whether err is any of the "not found" errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrLoanNotFound) ||
		errors.Is(err, ErrFeedbackNotFound)
}

// IsInvariantViolation reports whether err is a domain-rule rejection, as
// opposed to a missing record or an I/O failure.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrAccountInactive) ||
		errors.Is(err, ErrUserInactive) ||
		errors.Is(err, ErrDuplicateUser) ||
		errors.Is(err, ErrWrongLoanState) ||
		errors.Is(err, ErrNotAssignee) ||
		errors.Is(err, ErrRoleMismatch) ||
		errors.Is(err, ErrSameAccount) ||
		errors.Is(err, ErrNegativeAmount)
}

// IsStorageError reports whether err is an I/O or locking failure.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}

// InsufficientBalanceError carries the balance context of a rejected debit.
type InsufficientBalanceError struct {
	UserID      uint32
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: required %s, available %s",
		e.UserID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID uint32, amount, currentBalance string) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// StorageError wraps a low-level file error with the file and operation that
// produced it.
type StorageError struct {
	File string
	Op   string
	Err  error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s on %s: %v", e.Op, e.File, e.Err)
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrStorage
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// LogFields returns a map of fields for structured logging
func (e *StorageError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "storage_error",
		"file":       e.File,
		"op":         e.Op,
		"error":      e.Err.Error(),
	}
}

// NewStorageError creates a StorageError for the given file and operation.
func NewStorageError(file, op string, err error) error {
	return &StorageError{File: file, Op: op, Err: err}
}

// AbortError carries the mutator's caller-visible rejection reason out of an
// atomic update.
type AbortError struct {
	Reason string
	Err    error
}

// Error implements the error interface
func (e *AbortError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("update aborted: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("update aborted: %s", e.Reason)
}

// Unwrap returns the underlying error
func (e *AbortError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUpdateAborted
}

// Is checks if the target error is an ErrUpdateAborted
func (e *AbortError) Is(target error) bool {
	return target == ErrUpdateAborted
}
