// Package customer implements the customer-facing operations: balance,
// money movement, loan applications, feedback and history.
package customer

import (
	"github.com/flatbank/flatbank/internal/domain/port/core"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
)

// Service composes the repositories behind the customer operations.
type Service struct {
	users        persistence.UserRepository
	accounts     persistence.AccountRepository
	transactions persistence.TransactionRepository
	loans        persistence.LoanRepository
	feedback     persistence.FeedbackRepository
	timeProvider core.TimeProvider
	logger       core.Logger
}

// NewService creates the customer service.
func NewService(
	users persistence.UserRepository,
	accounts persistence.AccountRepository,
	transactions persistence.TransactionRepository,
	loans persistence.LoanRepository,
	feedback persistence.FeedbackRepository,
	timeProvider core.TimeProvider,
	logger core.Logger,
) *Service {
	return &Service{
		users:        users,
		accounts:     accounts,
		transactions: transactions,
		loans:        loans,
		feedback:     feedback,
		timeProvider: timeProvider,
		logger:       logger,
	}
}
