package model

import (
	"time"

	"github.com/flatbank/flatbank/internal/domain/entity"
)

// NarrationLen is the width of the narration tag field.
const NarrationLen = 32

// TransactionRecord is the on-disk shape of one ledger entry.
type TransactionRecord struct {
	ID          uint64
	FromAccount uint32
	ToAccount   uint32
	Amount      int64 // paise
	Narration   [NarrationLen]byte
	Timestamp   int64 // unix seconds
}

// FromTransaction fills the record from a domain transaction.
func FromTransaction(t *entity.Transaction) *TransactionRecord {
	var r TransactionRecord
	r.ID = t.ID
	r.FromAccount = t.FromAccount
	r.ToAccount = t.ToAccount
	r.Amount = t.Amount
	putString(r.Narration[:], t.Narration)
	r.Timestamp = t.Timestamp.Unix()
	return &r
}

// ToTransaction converts the record back to a domain transaction.
func (r *TransactionRecord) ToTransaction() *entity.Transaction {
	return &entity.Transaction{
		ID:          r.ID,
		FromAccount: r.FromAccount,
		ToAccount:   r.ToAccount,
		Amount:      r.Amount,
		Narration:   getString(r.Narration[:]),
		Timestamp:   time.Unix(r.Timestamp, 0),
	}
}
