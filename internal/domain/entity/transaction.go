package entity

import "time"

// Narration tags classifying a transaction's nature. History rendering keys
// off these exact strings.
const (
	NarrationDeposit     = "deposit"
	NarrationWithdraw    = "withdraw"
	NarrationTransferOut = "transfer_out"
	NarrationTransferIn  = "transfer_in"
	NarrationLoanDeposit = "loan_deposit"
)

// Transaction is one immutable ledger entry. FromAccount or ToAccount is 0
// when the money enters or leaves the system (cash deposit/withdrawal).
type Transaction struct {
	ID          uint64
	FromAccount uint32
	ToAccount   uint32
	Amount      int64
	Narration   string
	Timestamp   time.Time
}

// Touches reports whether the transaction involves the given account on
// either side.
func (t *Transaction) Touches(accountID uint32) bool {
	return t.FromAccount == accountID || t.ToAccount == accountID
}

// CounterpartyFor returns the other account id from the viewpoint of
// accountID, following the narration conventions of the ledger.
func (t *Transaction) CounterpartyFor(accountID uint32) uint32 {
	switch t.Narration {
	case NarrationDeposit, NarrationLoanDeposit, NarrationTransferIn:
		return t.FromAccount
	case NarrationWithdraw, NarrationTransferOut:
		return t.ToAccount
	default:
		if t.FromAccount == accountID {
			return t.ToAccount
		}
		return t.FromAccount
	}
}
