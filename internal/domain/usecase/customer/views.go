package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/flatbank/flatbank/internal/domain/entity"
)

// historyHeader is shared by the customer and employee history listings.
const historyHeader = "Type        | Amount   | Other Acct | Timestamp\n" +
	"------------|----------|------------|-------------------\n"

// FormatHistory renders the transactions touching accountID, most recent
// first, in the fixed tabular layout.
func FormatHistory(txns []entity.Transaction, accountID uint32) string {
	var b strings.Builder
	b.WriteString(historyHeader)
	for _, tx := range txns {
		fmt.Fprintf(&b, "%-11s | %-8s | %-10d | %s\n",
			strings.ToUpper(tx.Narration),
			entity.FormatAmount(tx.Amount),
			tx.CounterpartyFor(accountID),
			tx.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return b.String()
}

// ViewTransactions lists the user's transaction history, most recent first.
func (s *Service) ViewTransactions(ctx context.Context, userID uint32) (string, error) {
	txns, err := s.transactions.ListByAccount(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(txns) == 0 {
		return "No transaction history found for your ID.", nil
	}
	return FormatHistory(txns, userID), nil
}

// ViewDetails returns the user's own profile.
func (s *Service) ViewDetails(ctx context.Context, userID uint32) (string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ID: %d\n", u.ID)
	fmt.Fprintf(&b, "Name: %s\n", u.FullName())
	fmt.Fprintf(&b, "Age: %d\n", u.Age)
	fmt.Fprintf(&b, "Address: %s\n", u.Address)
	fmt.Fprintf(&b, "Email: %s\n", u.Email)
	fmt.Fprintf(&b, "Phone: %s\n", u.Phone)
	fmt.Fprintf(&b, "Username: %s\n", u.Username)
	fmt.Fprintf(&b, "Role: %s\n", u.Role)
	return b.String(), nil
}
