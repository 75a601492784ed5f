package persistence

import (
	"context"

	"github.com/flatbank/flatbank/internal/domain/entity"
)

// AccountRepository persists customer balances.
type AccountRepository interface {
	// GetByUserID returns the account owned by the user or ErrAccountNotFound
	GetByUserID(ctx context.Context, userID uint32) (*entity.Account, error)
	// Save inserts the account or overwrites the record with the same user id
	Save(ctx context.Context, a *entity.Account) error
	// AtomicUpdate applies the mutator to the account record under a record lock
	AtomicUpdate(ctx context.Context, userID uint32, m AccountMutator) error
}
