package entity

import (
	"time"

	errs "github.com/flatbank/flatbank/internal/domain/error"
)

// LoanStatus tracks the loan lifecycle. Approved and rejected are terminal.
type LoanStatus uint8

const (
	LoanPending LoanStatus = iota
	LoanAssigned
	LoanApproved
	LoanRejected
)

// String returns the uppercase display name of the status.
func (s LoanStatus) String() string {
	switch s {
	case LoanPending:
		return "PENDING"
	case LoanAssigned:
		return "ASSIGNED"
	case LoanApproved:
		return "APPROVED"
	case LoanRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Loan is a customer's loan application moving through
// pending -> assigned -> approved/rejected.
type Loan struct {
	ID          uint64
	UserID      uint32
	Amount      int64
	Status      LoanStatus
	AssignedTo  uint32 // employee id, 0 while pending
	AppliedAt   time.Time
	ProcessedAt time.Time
	Remarks     string
}

// Assign hands the loan to an employee. Only pending loans can be assigned.
func (l *Loan) Assign(employeeID uint32) error {
	if l.Status != LoanPending {
		return errs.ErrWrongLoanState
	}
	l.AssignedTo = employeeID
	l.Status = LoanAssigned
	return nil
}

// EnsureDecidableBy checks that the loan is assigned and that employeeID is
// the assignee; both must hold before an approve/reject decision.
func (l *Loan) EnsureDecidableBy(employeeID uint32) error {
	if l.Status != LoanAssigned {
		return errs.ErrWrongLoanState
	}
	if l.AssignedTo != employeeID {
		return errs.ErrNotAssignee
	}
	return nil
}
