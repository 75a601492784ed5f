package repository

import (
	"context"
	"errors"

	"github.com/flatbank/flatbank/internal/domain/entity"
	errs "github.com/flatbank/flatbank/internal/domain/error"
	"github.com/flatbank/flatbank/internal/domain/port/core"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/model"
	"github.com/flatbank/flatbank/internal/infrastructure/filestore"
)

// AccountsFile is the entity file name for accounts.
const AccountsFile = "accounts.db"

// AccountRepository implements persistence.AccountRepository over accounts.db.
type AccountRepository struct {
	store  *filestore.Store[model.AccountRecord]
	logger core.Logger
}

// NewAccountRepository opens (or prepares) accounts.db inside dir.
func NewAccountRepository(dir string, logger core.Logger) (*AccountRepository, error) {
	store, err := filestore.Open[model.AccountRecord](dir, AccountsFile)
	if err != nil {
		return nil, err
	}
	return &AccountRepository{store: store, logger: logger}, nil
}

// GetByUserID returns the account owned by the user.
func (r *AccountRepository) GetByUserID(_ context.Context, userID uint32) (*entity.Account, error) {
	rec, err := r.store.Find(func(a *model.AccountRecord) bool { return a.UserID == userID })
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		return nil, err
	}
	return rec.ToAccount(), nil
}

// Save inserts the account or overwrites the record with the same user id.
func (r *AccountRepository) Save(_ context.Context, a *entity.Account) error {
	rec := model.FromAccount(a)
	return r.store.Overwrite(func(existing *model.AccountRecord) bool {
		return existing.UserID == a.UserID
	}, rec)
}

// AtomicUpdate applies the mutator to the account record under a record lock.
func (r *AccountRepository) AtomicUpdate(_ context.Context, userID uint32, m persistence.AccountMutator) error {
	err := r.store.AtomicUpdate(
		func(rec *model.AccountRecord) bool { return rec.UserID == userID },
		func(rec *model.AccountRecord) (bool, error) {
			acc := rec.ToAccount()
			outcome := m(acc)
			if !outcome.Committed() {
				return false, outcome.Err()
			}
			*rec = *model.FromAccount(acc)
			return true, nil
		},
	)
	if errors.Is(err, filestore.ErrNotFound) {
		return errs.ErrAccountNotFound
	}
	return err
}
