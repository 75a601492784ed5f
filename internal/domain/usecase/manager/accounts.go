package manager

import (
	"context"
	"fmt"

	"github.com/flatbank/flatbank/internal/domain/entity"
	errs "github.com/flatbank/flatbank/internal/domain/error"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
)

// SetAccountStatus activates or deactivates a customer's account. A
// deactivated account rejects every balance movement and blocks the owner's
// next login; the balance itself is untouched.
func (s *Service) SetAccountStatus(ctx context.Context, customerID uint32, active bool) (string, error) {
	u, err := s.users.GetByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	if u.Role != entity.RoleCustomer {
		return "", errs.ErrRoleMismatch
	}

	err = s.accounts.AtomicUpdate(ctx, customerID, func(acc *entity.Account) persistence.Outcome {
		acc.Active = active
		return persistence.Commit()
	})
	if err != nil {
		return "", err
	}

	state := "Activated"
	if !active {
		state = "Deactivated"
	}
	s.logger.Info("account status changed", map[string]any{
		"user_id": customerID,
		"active":  active,
	})
	return fmt.Sprintf("Account %d %s", customerID, state), nil
}
