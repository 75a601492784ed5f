package persistence

import (
	"context"

	"github.com/flatbank/flatbank/internal/domain/entity"
)

// LoanRepository persists loan applications.
type LoanRepository interface {
	// GetByID returns the loan with the given id or ErrLoanNotFound
	GetByID(ctx context.Context, id uint64) (*entity.Loan, error)
	// Append writes a new loan and returns its assigned id
	Append(ctx context.Context, l *entity.Loan) (uint64, error)
	// AtomicUpdate applies the mutator to the loan record under a record lock
	AtomicUpdate(ctx context.Context, id uint64, m LoanMutator) error
	// ListByUser returns the user's loans in record order
	ListByUser(ctx context.Context, userID uint32) ([]entity.Loan, error)
	// ListPending returns loans not yet assigned to an employee
	ListPending(ctx context.Context) ([]entity.Loan, error)
	// ListAssignedTo returns loans awaiting a decision by the employee
	ListAssignedTo(ctx context.Context, employeeID uint32) ([]entity.Loan, error)
}
