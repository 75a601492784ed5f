package entity

import (
	"time"

	errs "github.com/flatbank/flatbank/internal/domain/error"
)

// Account holds the authoritative current balance for one customer. The
// balance field is the single source of truth; transactions are audit-only.
type Account struct {
	AccountID uint32 // equals the owner's user id
	UserID    uint32
	Balance   int64 // paise, see money.go
	Active    bool
	CreatedAt time.Time
}

// Credit adds amount to the balance. Fails on an inactive account.
func (a *Account) Credit(amount int64) error {
	if !a.Active {
		return errs.ErrAccountInactive
	}
	a.Balance += amount
	return nil
}

// Debit removes amount from the balance. Fails on an inactive account or
// when the balance would go negative.
func (a *Account) Debit(amount int64) error {
	if !a.Active {
		return errs.ErrAccountInactive
	}
	if a.Balance < amount {
		return errs.ErrInsufficientBalance
	}
	a.Balance -= amount
	return nil
}

// StatusString renders the active flag for response messages.
func (a *Account) StatusString() string {
	if a.Active {
		return "Active"
	}
	return "Inactive"
}
