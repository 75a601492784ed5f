package employee

import (
	"context"
	"fmt"

	"github.com/flatbank/flatbank/internal/domain/usecase/customer"
)

// ViewCustTransactions lists any customer's transaction history, most recent
// first, in the same layout the customer sees.
func (s *Service) ViewCustTransactions(ctx context.Context, customerID uint32) (string, error) {
	// Resolve the user first so a bad id yields not-found, not an empty list.
	if _, err := s.users.GetByID(ctx, customerID); err != nil {
		return "", err
	}
	txns, err := s.transactions.ListByAccount(ctx, customerID)
	if err != nil {
		return "", err
	}
	if len(txns) == 0 {
		return fmt.Sprintf("No transaction history found for customer %d.", customerID), nil
	}
	return customer.FormatHistory(txns, customerID), nil
}
