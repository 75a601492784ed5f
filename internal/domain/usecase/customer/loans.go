package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/flatbank/flatbank/internal/domain/entity"
)

// ApplyLoan records a new pending loan application.
func (s *Service) ApplyLoan(ctx context.Context, userID uint32, amount string) (string, error) {
	paise, err := entity.ParseAmount(amount)
	if err != nil {
		return "", err
	}

	loan := &entity.Loan{
		UserID:    userID,
		Amount:    paise,
		Status:    entity.LoanPending,
		AppliedAt: s.timeProvider.Now(),
	}
	id, err := s.loans.Append(ctx, loan)
	if err != nil {
		return "", err
	}

	s.logger.Info("loan application submitted", map[string]any{
		"loan_id": id,
		"user_id": userID,
		"amount":  entity.FormatAmount(paise),
	})
	return fmt.Sprintf("Loan Application Submitted (ID: %d)", id), nil
}

// ViewLoans lists the user's loan applications and their statuses.
func (s *Service) ViewLoans(ctx context.Context, userID uint32) (string, error) {
	loans, err := s.loans.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(loans) == 0 {
		return "No loan applications found for your ID.", nil
	}

	var b strings.Builder
	for _, l := range loans {
		fmt.Fprintf(&b, "ID: %d, Amount: %s, Status: %s\n", l.ID, entity.FormatAmount(l.Amount), l.Status)
	}
	return b.String(), nil
}
