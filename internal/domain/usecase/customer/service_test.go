package customer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatbank/flatbank/internal/domain/entity"
	errs "github.com/flatbank/flatbank/internal/domain/error"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/logger"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/repository"
	timeProvider "github.com/flatbank/flatbank/internal/infrastructure/adapter/time"
)

type testEnv struct {
	svc          *Service
	users        *repository.UserRepository
	accounts     *repository.AccountRepository
	transactions *repository.TransactionRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	log := logger.NewNoopLogger()

	users, err := repository.NewUserRepository(dir, log)
	require.NoError(t, err)
	accounts, err := repository.NewAccountRepository(dir, log)
	require.NoError(t, err)
	transactions, err := repository.NewTransactionRepository(dir, log)
	require.NoError(t, err)
	loans, err := repository.NewLoanRepository(dir, log)
	require.NoError(t, err)
	feedback, err := repository.NewFeedbackRepository(dir, log)
	require.NoError(t, err)

	svc := NewService(users, accounts, transactions, loans, feedback,
		timeProvider.NewRealTimeProvider(), log)
	return &testEnv{svc: svc, users: users, accounts: accounts, transactions: transactions}
}

func (e *testEnv) seedCustomer(t *testing.T, id uint32, balancePaise int64, active bool) {
	t.Helper()
	ctx := context.Background()
	err := e.users.Save(ctx, &entity.User{
		ID: id, Username: "user", Role: entity.RoleCustomer,
		FirstName: "Test", LastName: "User", Active: true,
	})
	require.NoError(t, err)
	err = e.accounts.Save(ctx, &entity.Account{
		AccountID: id, UserID: id, Balance: balancePaise, Active: active,
	})
	require.NoError(t, err)
}

func (e *testEnv) balance(t *testing.T, id uint32) int64 {
	t.Helper()
	acc, err := e.accounts.GetByUserID(context.Background(), id)
	require.NoError(t, err)
	return acc.Balance
}

func TestViewBalance(t *testing.T) {
	env := newTestEnv(t)
	env.seedCustomer(t, 1001, 123450, true)

	msg, err := env.svc.ViewBalance(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, "Balance: 1234.50 (Status: Active)", msg)
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("credits balance and appends audit", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCustomer(t, 1001, 100000, true)

		msg, err := env.svc.Deposit(ctx, 1001, "250.75")
		require.NoError(t, err)
		assert.Equal(t, "Deposit Successful: 250.75", msg)
		assert.Equal(t, int64(125075), env.balance(t, 1001))

		txns, err := env.transactions.ListByAccount(ctx, 1001)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, entity.NarrationDeposit, txns[0].Narration)
		assert.Equal(t, int64(25075), txns[0].Amount)
	})

	t.Run("rejects bad amounts", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCustomer(t, 1001, 0, true)

		for _, amount := range []string{"0", "-5", "abc", ""} {
			_, err := env.svc.Deposit(ctx, 1001, amount)
			assert.Error(t, err, "amount %q", amount)
		}
		assert.Equal(t, int64(0), env.balance(t, 1001))
	})

	t.Run("inactive account rejects deposits", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCustomer(t, 1001, 0, false)

		_, err := env.svc.Deposit(ctx, 1001, "10")
		assert.ErrorIs(t, err, errs.ErrAccountInactive)
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("debits balance", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCustomer(t, 1001, 10000, true)

		msg, err := env.svc.Withdraw(ctx, 1001, "60")
		require.NoError(t, err)
		assert.Equal(t, "Withdrawal Successful: 60.00", msg)
		assert.Equal(t, int64(4000), env.balance(t, 1001))
	})

	t.Run("insufficient balance aborts with no change", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCustomer(t, 1001, 5000, true)

		_, err := env.svc.Withdraw(ctx, 1001, "60")
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.Equal(t, int64(5000), env.balance(t, 1001))

		txns, err := env.transactions.ListByAccount(ctx, 1001)
		require.NoError(t, err)
		assert.Empty(t, txns)
	})
}

// Balance 100, two concurrent withdrawals of 60: exactly one succeeds and
// the final balance is 40.
func TestWithdrawConcurrent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedCustomer(t, 1001, 10000, true)

	var wg sync.WaitGroup
	outcomes := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.Withdraw(ctx, 1001, "60")
			outcomes <- err
		}()
	}
	wg.Wait()
	close(outcomes)

	var succeeded, failed int
	for err := range outcomes {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
			failed++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, int64(4000), env.balance(t, 1001))
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("moves money and writes both legs", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCustomer(t, 1001, 10000, true)
		env.seedCustomer(t, 1002, 0, true)

		msg, err := env.svc.Transfer(ctx, 1001, 1002, "75.50")
		require.NoError(t, err)
		assert.Equal(t, "Transfer Successful: 75.50 from 1001 to 1002", msg)
		assert.Equal(t, int64(2450), env.balance(t, 1001))
		assert.Equal(t, int64(7550), env.balance(t, 1002))

		sent, err := env.transactions.ListByAccount(ctx, 1001)
		require.NoError(t, err)
		received, err := env.transactions.ListByAccount(ctx, 1002)
		require.NoError(t, err)
		require.Len(t, sent, 2)
		require.Len(t, received, 2)

		narrations := []string{sent[0].Narration, sent[1].Narration}
		assert.ElementsMatch(t, []string{entity.NarrationTransferOut, entity.NarrationTransferIn}, narrations)
	})

	t.Run("same account is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCustomer(t, 1001, 10000, true)

		_, err := env.svc.Transfer(ctx, 1001, 1001, "10")
		assert.ErrorIs(t, err, errs.ErrSameAccount)
	})

	t.Run("unknown recipient leaves sender untouched", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCustomer(t, 1001, 10000, true)

		_, err := env.svc.Transfer(ctx, 1001, 9999, "10")
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
		assert.Equal(t, int64(10000), env.balance(t, 1001))
	})

	t.Run("inactive recipient leaves sender untouched", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCustomer(t, 1001, 10000, true)
		env.seedCustomer(t, 1002, 0, false)

		_, err := env.svc.Transfer(ctx, 1001, 1002, "10")
		assert.ErrorIs(t, err, errs.ErrAccountInactive)
		assert.Equal(t, int64(10000), env.balance(t, 1001))
	})

	t.Run("insufficient balance moves nothing", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCustomer(t, 1001, 500, true)
		env.seedCustomer(t, 1002, 0, true)

		_, err := env.svc.Transfer(ctx, 1001, 1002, "10")
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.Equal(t, int64(500), env.balance(t, 1001))
		assert.Equal(t, int64(0), env.balance(t, 1002))
	})
}

// failingAccounts wraps the real repository and fails AtomicUpdate for
// chosen user ids, simulating an I/O fault on one leg of a transfer.
type failingAccounts struct {
	persistence.AccountRepository
	mu        sync.Mutex
	failIDs   map[uint32]int // id -> remaining allowed successes before failing
	callCount map[uint32]int
}

func (f *failingAccounts) AtomicUpdate(ctx context.Context, userID uint32, m persistence.AccountMutator) error {
	f.mu.Lock()
	allowed, tracked := f.failIDs[userID]
	f.callCount[userID]++
	count := f.callCount[userID]
	f.mu.Unlock()
	if tracked && count > allowed {
		return errs.NewStorageError("accounts.db", "update", errors.New("disk gone"))
	}
	return f.AccountRepository.AtomicUpdate(ctx, userID, m)
}

// Deposit leg fails after the withdrawal succeeded: the compensation puts
// the money back and no audit legs are written.
func TestTransferCompensationReturnsFunds(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedCustomer(t, 1001, 10000, true)
	env.seedCustomer(t, 1002, 0, true)

	accounts := &failingAccounts{
		AccountRepository: env.accounts,
		failIDs:           map[uint32]int{1002: 0}, // every deposit to 1002 fails
		callCount:         make(map[uint32]int),
	}
	svc := NewService(env.users, accounts, env.transactions, nil, nil,
		timeProvider.NewRealTimeProvider(), logger.NewNoopLogger())

	_, err := svc.Transfer(ctx, 1001, 1002, "10")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrCompensationFailed)
	assert.Equal(t, int64(10000), env.balance(t, 1001), "compensation must return the funds")
	assert.Equal(t, int64(0), env.balance(t, 1002))

	txns, err := env.transactions.ListByAccount(ctx, 1001)
	require.NoError(t, err)
	assert.Empty(t, txns, "failed transfer must not write audit legs")
}

// Deposit leg and the compensating deposit both fail: the caller gets the
// contact-support outcome.
func TestTransferCompensationDoubleFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedCustomer(t, 1001, 10000, true)
	env.seedCustomer(t, 1002, 0, true)

	accounts := &failingAccounts{
		AccountRepository: env.accounts,
		// sender: the withdrawal succeeds, the compensation does not
		failIDs:   map[uint32]int{1002: 0, 1001: 1},
		callCount: make(map[uint32]int),
	}
	svc := NewService(env.users, accounts, env.transactions, nil, nil,
		timeProvider.NewRealTimeProvider(), logger.NewNoopLogger())

	_, err := svc.Transfer(ctx, 1001, 1002, "10")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrCompensationFailed)
	assert.Contains(t, err.Error(), "CRITICAL")
	assert.Contains(t, err.Error(), "contact support")
}

func TestLoanAndFeedbackFlows(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedCustomer(t, 1001, 0, true)

	msg, err := env.svc.ApplyLoan(ctx, 1001, "5000")
	require.NoError(t, err)
	assert.Equal(t, "Loan Application Submitted (ID: 1)", msg)

	msg, err = env.svc.ViewLoans(ctx, 1001)
	require.NoError(t, err)
	assert.Contains(t, msg, "Status: PENDING")

	msg, err = env.svc.AddFeedback(ctx, 1001, "the branch queue is too long")
	require.NoError(t, err)
	assert.Equal(t, "Feedback Submitted (ID: 1). Thank you!", msg)

	msg, err = env.svc.ViewFeedback(ctx, 1001)
	require.NoError(t, err)
	assert.Contains(t, msg, "Status: PENDING")
	assert.Contains(t, msg, "the branch queue is too long")
}

func TestViewTransactionsAndDetails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedCustomer(t, 1001, 10000, true)

	msg, err := env.svc.ViewTransactions(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "No transaction history found for your ID.", msg)

	_, err = env.svc.Deposit(ctx, 1001, "10")
	require.NoError(t, err)
	_, err = env.svc.Withdraw(ctx, 1001, "5")
	require.NoError(t, err)

	msg, err = env.svc.ViewTransactions(ctx, 1001)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(msg), "\n")
	require.Len(t, lines, 4) // header, separator, two entries
	assert.Contains(t, lines[2], "WITHDRAW", "most recent entry first")
	assert.Contains(t, lines[3], "DEPOSIT")

	msg, err = env.svc.ViewDetails(ctx, 1001)
	require.NoError(t, err)
	assert.Contains(t, msg, "ID: 1001")
	assert.Contains(t, msg, "Role: customer")
}
