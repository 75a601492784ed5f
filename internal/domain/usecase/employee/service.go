// Package employee implements the teller operations: customer onboarding and
// maintenance, and loan decisions.
package employee

import (
	"github.com/go-playground/validator/v10"

	"github.com/flatbank/flatbank/internal/domain/port/core"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
)

// Service composes the repositories behind the employee operations.
type Service struct {
	users        persistence.UserRepository
	accounts     persistence.AccountRepository
	transactions persistence.TransactionRepository
	loans        persistence.LoanRepository
	hasher       core.PasswordHasher
	timeProvider core.TimeProvider
	logger       core.Logger
	validate     *validator.Validate
}

// NewService creates the employee service.
func NewService(
	users persistence.UserRepository,
	accounts persistence.AccountRepository,
	transactions persistence.TransactionRepository,
	loans persistence.LoanRepository,
	hasher core.PasswordHasher,
	timeProvider core.TimeProvider,
	logger core.Logger,
) *Service {
	return &Service{
		users:        users,
		accounts:     accounts,
		transactions: transactions,
		loans:        loans,
		hasher:       hasher,
		timeProvider: timeProvider,
		logger:       logger,
		validate:     validator.New(),
	}
}
