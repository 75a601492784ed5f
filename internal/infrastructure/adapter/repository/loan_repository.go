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

// LoansFile is the entity file name for loans.
const LoansFile = "loans.db"

// LoanRepository implements persistence.LoanRepository over loans.db.
type LoanRepository struct {
	store  *filestore.Store[model.LoanRecord]
	logger core.Logger
}

// NewLoanRepository opens (or prepares) loans.db inside dir.
func NewLoanRepository(dir string, logger core.Logger) (*LoanRepository, error) {
	store, err := filestore.Open[model.LoanRecord](dir, LoansFile)
	if err != nil {
		return nil, err
	}
	return &LoanRepository{store: store, logger: logger}, nil
}

// GetByID returns the loan with the given id.
func (r *LoanRepository) GetByID(_ context.Context, id uint64) (*entity.Loan, error) {
	rec, err := r.store.Find(func(l *model.LoanRecord) bool { return l.ID == id })
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return nil, errs.ErrLoanNotFound
		}
		return nil, err
	}
	return rec.ToLoan(), nil
}

// Append writes a new loan; the ledger position becomes its id.
func (r *LoanRepository) Append(_ context.Context, l *entity.Loan) (uint64, error) {
	rec := model.FromLoan(l)
	id, err := r.store.Append(rec, func(rec *model.LoanRecord, seq uint64) {
		rec.ID = seq
	})
	if err != nil {
		return 0, err
	}
	l.ID = id
	return id, nil
}

// AtomicUpdate applies the mutator to the loan record under a record lock.
func (r *LoanRepository) AtomicUpdate(_ context.Context, id uint64, m persistence.LoanMutator) error {
	err := r.store.AtomicUpdate(
		func(rec *model.LoanRecord) bool { return rec.ID == id },
		func(rec *model.LoanRecord) (bool, error) {
			loan := rec.ToLoan()
			outcome := m(loan)
			if !outcome.Committed() {
				return false, outcome.Err()
			}
			*rec = *model.FromLoan(loan)
			return true, nil
		},
	)
	if errors.Is(err, filestore.ErrNotFound) {
		return errs.ErrLoanNotFound
	}
	return err
}

func (r *LoanRepository) list(pred func(*entity.Loan) bool) ([]entity.Loan, error) {
	var loans []entity.Loan
	err := r.store.Scan(func(rec *model.LoanRecord) bool {
		l := rec.ToLoan()
		if pred(l) {
			loans = append(loans, *l)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// ListByUser returns the user's loans in record order.
func (r *LoanRepository) ListByUser(_ context.Context, userID uint32) ([]entity.Loan, error) {
	return r.list(func(l *entity.Loan) bool { return l.UserID == userID })
}

// ListPending returns loans not yet assigned to an employee.
func (r *LoanRepository) ListPending(_ context.Context) ([]entity.Loan, error) {
	return r.list(func(l *entity.Loan) bool { return l.Status == entity.LoanPending })
}

// ListAssignedTo returns loans awaiting a decision by the employee.
func (r *LoanRepository) ListAssignedTo(_ context.Context, employeeID uint32) ([]entity.Loan, error) {
	return r.list(func(l *entity.Loan) bool {
		return l.AssignedTo == employeeID && l.Status == entity.LoanAssigned
	})
}
