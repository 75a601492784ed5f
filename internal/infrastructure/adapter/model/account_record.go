package model

import (
	"time"

	"github.com/flatbank/flatbank/internal/domain/entity"
)

// AccountRecord is the on-disk shape of an account.
type AccountRecord struct {
	AccountID uint32
	UserID    uint32
	Balance   int64 // paise
	Active    uint8
	CreatedAt int64 // unix seconds
}

// FromAccount fills the record from a domain account.
func FromAccount(a *entity.Account) *AccountRecord {
	return &AccountRecord{
		AccountID: a.AccountID,
		UserID:    a.UserID,
		Balance:   a.Balance,
		Active:    boolToByte(a.Active),
		CreatedAt: a.CreatedAt.Unix(),
	}
}

// ToAccount converts the record back to a domain account.
func (r *AccountRecord) ToAccount() *entity.Account {
	return &entity.Account{
		AccountID: r.AccountID,
		UserID:    r.UserID,
		Balance:   r.Balance,
		Active:    r.Active == 1,
		CreatedAt: time.Unix(r.CreatedAt, 0),
	}
}
