package employee

import (
	"context"
	"fmt"

	"github.com/flatbank/flatbank/internal/domain/entity"
	errs "github.com/flatbank/flatbank/internal/domain/error"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
)

// NewCustomerInput carries the fields of an ADD_CUSTOMER request.
type NewCustomerInput struct {
	FirstName string `validate:"required,max=63"`
	LastName  string `validate:"required,max=63"`
	Age       uint8  `validate:"gte=18,lte=120"`
	Address   string `validate:"required,max=255"`
	Email     string `validate:"required,email,max=63"`
	Phone     string `validate:"required,min=7,max=31"`
	Username  string `validate:"required,min=3,max=63"`
	Password  string `validate:"required,min=4"`
}

// AddCustomer creates a user with the customer role and its account in one
// call. Username, email and phone must be unique across all users; the check
// is a full-table scan immediately before the insert.
func (s *Service) AddCustomer(ctx context.Context, in NewCustomerInput) (string, error) {
	if err := s.validate.Struct(in); err != nil {
		return "", validationMessage(err)
	}

	conflict, err := s.users.HasConflict(ctx, in.Username, in.Email, in.Phone, 0)
	if err != nil {
		return "", err
	}
	if conflict {
		return "", errs.ErrDuplicateUser
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", err
	}
	id, err := s.users.NextID(ctx)
	if err != nil {
		return "", err
	}

	now := s.timeProvider.Now()
	user := &entity.User{
		ID:           id,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         entity.RoleCustomer,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Age:          in.Age,
		Address:      in.Address,
		Email:        in.Email,
		Phone:        in.Phone,
		Active:       true,
		CreatedAt:    now,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return "", err
	}

	account := &entity.Account{
		AccountID: id,
		UserID:    id,
		Balance:   0,
		Active:    true,
		CreatedAt: now,
	}
	if err := s.accounts.Save(ctx, account); err != nil {
		return "", err
	}

	s.logger.Info("customer added", map[string]any{
		"user_id":  id,
		"username": in.Username,
	})
	return fmt.Sprintf("Customer Added (ID: %d, Username: %s)", id, in.Username), nil
}

// ModifyCustomerInput carries the editable profile fields.
type ModifyCustomerInput struct {
	UserID    uint32 `validate:"required"`
	FirstName string `validate:"required,max=63"`
	LastName  string `validate:"required,max=63"`
	Age       uint8  `validate:"gte=18,lte=120"`
	Address   string `validate:"required,max=255"`
	Email     string `validate:"required,email,max=63"`
	Phone     string `validate:"required,min=7,max=31"`
}

// ModifyCustomer updates a customer's profile under a record lock. The
// uniqueness of the new email and phone is re-checked against the table
// right before the update.
func (s *Service) ModifyCustomer(ctx context.Context, in ModifyCustomerInput) (string, error) {
	if err := s.validate.Struct(in); err != nil {
		return "", validationMessage(err)
	}

	conflict, err := s.users.HasConflict(ctx, "", in.Email, in.Phone, in.UserID)
	if err != nil {
		return "", err
	}
	if conflict {
		return "", errs.ErrDuplicateUser
	}

	err = s.users.AtomicUpdate(ctx, in.UserID, func(u *entity.User) persistence.Outcome {
		if u.Role != entity.RoleCustomer {
			return persistence.Abort(errs.ErrRoleMismatch)
		}
		u.FirstName = in.FirstName
		u.LastName = in.LastName
		u.Age = in.Age
		u.Address = in.Address
		u.Email = in.Email
		u.Phone = in.Phone
		return persistence.Commit()
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Customer Modified (ID: %d)", in.UserID), nil
}
