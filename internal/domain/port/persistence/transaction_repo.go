package persistence

import (
	"context"

	"github.com/flatbank/flatbank/internal/domain/entity"
)

// TransactionRepository persists the append-only audit ledger.
type TransactionRepository interface {
	// Append writes the transaction and returns its assigned id
	Append(ctx context.Context, t *entity.Transaction) (uint64, error)
	// ListByAccount returns the transactions touching the account,
	// most recent first
	ListByAccount(ctx context.Context, accountID uint32) ([]entity.Transaction, error)
	// List returns the whole ledger in append order
	List(ctx context.Context) ([]entity.Transaction, error)
}
