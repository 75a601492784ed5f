package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/flatbank/flatbank/internal/domain/entity"
	errs "github.com/flatbank/flatbank/internal/domain/error"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
)

// ViewNonAssignedLoans lists the loan applications no employee holds yet.
func (s *Service) ViewNonAssignedLoans(ctx context.Context) (string, error) {
	loans, err := s.loans.ListPending(ctx)
	if err != nil {
		return "", err
	}
	if len(loans) == 0 {
		return "No unassigned loan applications.", nil
	}

	var b strings.Builder
	for _, l := range loans {
		fmt.Fprintf(&b, "ID: %d, Applicant: %d, Amount: %s, Applied: %s\n",
			l.ID, l.UserID, entity.FormatAmount(l.Amount),
			l.AppliedAt.Format("2006-01-02 15:04:05"))
	}
	return b.String(), nil
}

// AssignLoan hands a pending loan to an employee for a decision. The
// assignee must hold the employee role; the pending check runs inside the
// loan's record lock so two managers cannot assign the same loan twice.
func (s *Service) AssignLoan(ctx context.Context, loanID uint64, employeeID uint32) (string, error) {
	emp, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if emp.Role != entity.RoleEmployee {
		return "", errs.ErrRoleMismatch
	}

	err = s.loans.AtomicUpdate(ctx, loanID, func(l *entity.Loan) persistence.Outcome {
		if err := l.Assign(employeeID); err != nil {
			return persistence.Abort(err)
		}
		return persistence.Commit()
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("loan assigned", map[string]any{
		"loan_id":     loanID,
		"employee_id": employeeID,
	})
	return fmt.Sprintf("Loan %d Assigned to Employee %d", loanID, employeeID), nil
}
