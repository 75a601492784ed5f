package manager

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatbank/flatbank/internal/domain/entity"
	errs "github.com/flatbank/flatbank/internal/domain/error"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/logger"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/repository"
)

type testEnv struct {
	svc      *Service
	users    *repository.UserRepository
	accounts *repository.AccountRepository
	loans    *repository.LoanRepository
	feedback *repository.FeedbackRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	log := logger.NewNoopLogger()

	users, err := repository.NewUserRepository(dir, log)
	require.NoError(t, err)
	accounts, err := repository.NewAccountRepository(dir, log)
	require.NoError(t, err)
	loans, err := repository.NewLoanRepository(dir, log)
	require.NoError(t, err)
	feedback, err := repository.NewFeedbackRepository(dir, log)
	require.NoError(t, err)

	svc := NewService(users, accounts, loans, feedback, log)
	return &testEnv{svc: svc, users: users, accounts: accounts, loans: loans, feedback: feedback}
}

func (e *testEnv) seedUser(t *testing.T, id uint32, role entity.Role) {
	t.Helper()
	ctx := context.Background()
	err := e.users.Save(ctx, &entity.User{
		ID: id, Username: "u", Role: role, Active: true,
	})
	require.NoError(t, err)
	if role == entity.RoleCustomer {
		err = e.accounts.Save(ctx, &entity.Account{AccountID: id, UserID: id, Active: true})
		require.NoError(t, err)
	}
}

func TestSetAccountStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivate and reactivate", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, 1001, entity.RoleCustomer)

		msg, err := env.svc.SetAccountStatus(ctx, 1001, false)
		require.NoError(t, err)
		assert.Equal(t, "Account 1001 Deactivated", msg)

		acc, err := env.accounts.GetByUserID(ctx, 1001)
		require.NoError(t, err)
		assert.False(t, acc.Active)

		msg, err = env.svc.SetAccountStatus(ctx, 1001, true)
		require.NoError(t, err)
		assert.Equal(t, "Account 1001 Activated", msg)
	})

	t.Run("staff have no account to deactivate", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, 2, entity.RoleEmployee)

		_, err := env.svc.SetAccountStatus(ctx, 2, false)
		assert.ErrorIs(t, err, errs.ErrRoleMismatch)
	})

	t.Run("unknown user", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.svc.SetAccountStatus(ctx, 42, false)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestAssignLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns pending loan to employee", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, 2, entity.RoleEmployee)
		env.seedUser(t, 1001, entity.RoleCustomer)
		loanID, err := env.loans.Append(ctx, &entity.Loan{UserID: 1001, Amount: 1000, Status: entity.LoanPending})
		require.NoError(t, err)

		msg, err := env.svc.AssignLoan(ctx, loanID, 2)
		require.NoError(t, err)
		assert.Equal(t, "Loan 1 Assigned to Employee 2", msg)

		l, err := env.loans.GetByID(ctx, loanID)
		require.NoError(t, err)
		assert.Equal(t, entity.LoanAssigned, l.Status)
		assert.Equal(t, uint32(2), l.AssignedTo)
	})

	t.Run("assignee must be an employee", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, 3, entity.RoleManager)
		env.seedUser(t, 1001, entity.RoleCustomer)
		loanID, err := env.loans.Append(ctx, &entity.Loan{UserID: 1001, Amount: 1000, Status: entity.LoanPending})
		require.NoError(t, err)

		_, err = env.svc.AssignLoan(ctx, loanID, 3)
		assert.ErrorIs(t, err, errs.ErrRoleMismatch)
	})

	t.Run("assigned loan cannot be reassigned", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, 2, entity.RoleEmployee)
		env.seedUser(t, 1001, entity.RoleCustomer)
		loanID, err := env.loans.Append(ctx, &entity.Loan{UserID: 1001, Amount: 1000, Status: entity.LoanPending})
		require.NoError(t, err)

		_, err = env.svc.AssignLoan(ctx, loanID, 2)
		require.NoError(t, err)
		_, err = env.svc.AssignLoan(ctx, loanID, 2)
		assert.ErrorIs(t, err, errs.ErrWrongLoanState)
	})

	// Two managers race to assign the same loan: the record lock lets
	// exactly one through.
	t.Run("concurrent assignment", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, 2, entity.RoleEmployee)
		env.seedUser(t, 1001, entity.RoleCustomer)
		loanID, err := env.loans.Append(ctx, &entity.Loan{UserID: 1001, Amount: 1000, Status: entity.LoanPending})
		require.NoError(t, err)

		var wg sync.WaitGroup
		outcomes := make(chan error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := env.svc.AssignLoan(ctx, loanID, 2)
				outcomes <- err
			}()
		}
		wg.Wait()
		close(outcomes)

		succeeded := 0
		for err := range outcomes {
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, errs.ErrWrongLoanState)
			}
		}
		assert.Equal(t, 1, succeeded)
	})
}

func TestReviewFeedback(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	msg, err := env.svc.ReviewFeedback(ctx, "noted")
	require.NoError(t, err)
	assert.Equal(t, "No feedback awaiting review.", msg)

	for _, text := range []string{"slow tellers", "great service"} {
		_, err := env.feedback.Append(ctx, &entity.Feedback{UserID: 1001, Message: text})
		require.NoError(t, err)
	}

	msg, err = env.svc.ReviewFeedback(ctx, "noted")
	require.NoError(t, err)
	assert.Contains(t, msg, "Reviewed 2 feedback entries")
	assert.Contains(t, msg, "slow tellers")

	// A second pass finds nothing left.
	msg, err = env.svc.ReviewFeedback(ctx, "noted")
	require.NoError(t, err)
	assert.Equal(t, "No feedback awaiting review.", msg)

	items, err := env.feedback.ListByUser(ctx, 1001)
	require.NoError(t, err)
	for _, f := range items {
		assert.True(t, f.Reviewed)
		assert.Equal(t, "noted", f.ActionTaken)
	}
}
