package repository

import (
	"context"

	"github.com/flatbank/flatbank/internal/domain/entity"
	"github.com/flatbank/flatbank/internal/domain/port/core"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/model"
	"github.com/flatbank/flatbank/internal/infrastructure/filestore"
)

// TransactionsFile is the entity file name for the ledger.
const TransactionsFile = "transactions.db"

// TransactionRepository implements persistence.TransactionRepository over the
// append-only transactions.db ledger.
type TransactionRepository struct {
	store  *filestore.Store[model.TransactionRecord]
	logger core.Logger
}

// NewTransactionRepository opens (or prepares) transactions.db inside dir.
func NewTransactionRepository(dir string, logger core.Logger) (*TransactionRepository, error) {
	store, err := filestore.Open[model.TransactionRecord](dir, TransactionsFile)
	if err != nil {
		return nil, err
	}
	return &TransactionRepository{store: store, logger: logger}, nil
}

// Append writes the transaction at EOF; the ledger position becomes its id.
func (r *TransactionRepository) Append(_ context.Context, t *entity.Transaction) (uint64, error) {
	rec := model.FromTransaction(t)
	id, err := r.store.Append(rec, func(rec *model.TransactionRecord, seq uint64) {
		rec.ID = seq
	})
	if err != nil {
		return 0, err
	}
	t.ID = id
	return id, nil
}

// ListByAccount returns the transactions touching the account, most recent
// first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID uint32) ([]entity.Transaction, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var matched []entity.Transaction
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Touches(accountID) {
			matched = append(matched, all[i])
		}
	}
	return matched, nil
}

// List returns the whole ledger in append order.
func (r *TransactionRepository) List(_ context.Context) ([]entity.Transaction, error) {
	var txns []entity.Transaction
	err := r.store.Scan(func(rec *model.TransactionRecord) bool {
		txns = append(txns, *rec.ToTransaction())
		return true
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}
