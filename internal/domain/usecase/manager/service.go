// Package manager implements the branch-manager operations: account status
// control, loan assignment and feedback review.
package manager

import (
	"github.com/flatbank/flatbank/internal/domain/port/core"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
)

// Service composes the repositories behind the manager operations.
type Service struct {
	users    persistence.UserRepository
	accounts persistence.AccountRepository
	loans    persistence.LoanRepository
	feedback persistence.FeedbackRepository
	logger   core.Logger
}

// NewService creates the manager service.
func NewService(
	users persistence.UserRepository,
	accounts persistence.AccountRepository,
	loans persistence.LoanRepository,
	feedback persistence.FeedbackRepository,
	logger core.Logger,
) *Service {
	return &Service{
		users:    users,
		accounts: accounts,
		loans:    loans,
		feedback: feedback,
		logger:   logger,
	}
}
