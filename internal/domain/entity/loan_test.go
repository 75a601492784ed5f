package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/flatbank/flatbank/internal/domain/error"
)

func TestLoanAssign(t *testing.T) {
	t.Run("pending loan accepts assignment", func(t *testing.T) {
		l := &Loan{Status: LoanPending}
		require.NoError(t, l.Assign(2))
		assert.Equal(t, LoanAssigned, l.Status)
		assert.Equal(t, uint32(2), l.AssignedTo)
	})

	t.Run("non-pending states refuse assignment", func(t *testing.T) {
		for _, status := range []LoanStatus{LoanAssigned, LoanApproved, LoanRejected} {
			l := &Loan{Status: status}
			assert.ErrorIs(t, l.Assign(2), errs.ErrWrongLoanState, status.String())
		}
	})
}

func TestLoanEnsureDecidableBy(t *testing.T) {
	l := &Loan{Status: LoanAssigned, AssignedTo: 2}

	assert.NoError(t, l.EnsureDecidableBy(2))
	assert.ErrorIs(t, l.EnsureDecidableBy(3), errs.ErrNotAssignee)

	l.Status = LoanPending
	assert.ErrorIs(t, l.EnsureDecidableBy(2), errs.ErrWrongLoanState)
}

func TestAccountCreditDebit(t *testing.T) {
	t.Run("active account moves money", func(t *testing.T) {
		a := &Account{Balance: 100, Active: true}
		require.NoError(t, a.Credit(50))
		require.NoError(t, a.Debit(120))
		assert.Equal(t, int64(30), a.Balance)
	})

	t.Run("overdraft refused", func(t *testing.T) {
		a := &Account{Balance: 100, Active: true}
		assert.ErrorIs(t, a.Debit(101), errs.ErrInsufficientBalance)
		assert.Equal(t, int64(100), a.Balance)
	})

	t.Run("inactive account refuses both directions", func(t *testing.T) {
		a := &Account{Balance: 100, Active: false}
		assert.ErrorIs(t, a.Credit(1), errs.ErrAccountInactive)
		assert.ErrorIs(t, a.Debit(1), errs.ErrAccountInactive)
	})
}
