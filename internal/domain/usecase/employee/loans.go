package employee

import (
	"context"
	"fmt"
	"strings"

	"github.com/flatbank/flatbank/internal/domain/entity"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
)

// ProcessLoans lists the pending loan applications awaiting assignment.
func (s *Service) ProcessLoans(ctx context.Context) (string, error) {
	loans, err := s.loans.ListPending(ctx)
	if err != nil {
		return "", err
	}
	if len(loans) == 0 {
		return "No pending loan applications.", nil
	}
	return formatLoanList(loans), nil
}

// ViewAssignedLoans lists the loans awaiting a decision by this employee.
func (s *Service) ViewAssignedLoans(ctx context.Context, employeeID uint32) (string, error) {
	loans, err := s.loans.ListAssignedTo(ctx, employeeID)
	if err != nil {
		return "", err
	}
	if len(loans) == 0 {
		return "No loans assigned to you.", nil
	}
	return formatLoanList(loans), nil
}

// ApproveRejectLoan decides an assigned loan. Only the assignee may decide,
// and only loans in the assigned state are decidable. Approval disburses the
// amount into the applicant's account inside the loan's record lock, so a
// failed disbursement leaves the loan undecided.
func (s *Service) ApproveRejectLoan(ctx context.Context, employeeID uint32, loanID uint64, approve bool, remarks string) (string, error) {
	var disbursed int64
	var applicant uint32

	err := s.loans.AtomicUpdate(ctx, loanID, func(l *entity.Loan) persistence.Outcome {
		if err := l.EnsureDecidableBy(employeeID); err != nil {
			return persistence.Abort(err)
		}
		if approve {
			// Account and loan records live in different files, so the
			// nested update cannot deadlock against the loan lock.
			err := s.accounts.AtomicUpdate(ctx, l.UserID, func(acc *entity.Account) persistence.Outcome {
				if err := acc.Credit(l.Amount); err != nil {
					return persistence.Abort(err)
				}
				return persistence.Commit()
			})
			if err != nil {
				return persistence.Abort(fmt.Errorf("disbursement: %w", err))
			}
			l.Status = entity.LoanApproved
			disbursed = l.Amount
			applicant = l.UserID
		} else {
			l.Status = entity.LoanRejected
		}
		l.Remarks = remarks
		l.ProcessedAt = s.timeProvider.Now()
		return persistence.Commit()
	})
	if err != nil {
		return "", err
	}

	if approve {
		s.appendLoanAudit(ctx, applicant, disbursed)
		s.logger.Info("loan approved and disbursed", map[string]any{
			"loan_id":     loanID,
			"employee_id": employeeID,
			"user_id":     applicant,
			"amount":      entity.FormatAmount(disbursed),
		})
		return fmt.Sprintf("Loan %d Approved and Disbursed", loanID), nil
	}
	s.logger.Info("loan rejected", map[string]any{
		"loan_id":     loanID,
		"employee_id": employeeID,
	})
	return fmt.Sprintf("Loan %d Rejected", loanID), nil
}

func (s *Service) appendLoanAudit(ctx context.Context, userID uint32, paise int64) {
	_, err := s.transactions.Append(ctx, &entity.Transaction{
		ToAccount: userID,
		Amount:    paise,
		Narration: entity.NarrationLoanDeposit,
		Timestamp: s.timeProvider.Now(),
	})
	if err != nil {
		s.logger.Error("audit append failed", map[string]any{
			"narration": entity.NarrationLoanDeposit,
			"error":     err.Error(),
		})
	}
}

func formatLoanList(loans []entity.Loan) string {
	var b strings.Builder
	for _, l := range loans {
		fmt.Fprintf(&b, "ID: %d, Applicant: %d, Amount: %s, Status: %s, Applied: %s\n",
			l.ID, l.UserID, entity.FormatAmount(l.Amount), l.Status,
			l.AppliedAt.Format("2006-01-02 15:04:05"))
	}
	return b.String()
}
