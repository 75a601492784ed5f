package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/flatbank/flatbank/internal/domain/entity"
	errs "github.com/flatbank/flatbank/internal/domain/error"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
)

// NewEmployeeInput carries the fields of an ADD_EMPLOYEE request. Role picks
// the staff level the new user starts at.
type NewEmployeeInput struct {
	FirstName string `validate:"required,max=63"`
	LastName  string `validate:"required,max=63"`
	Age       uint8  `validate:"gte=18,lte=120"`
	Address   string `validate:"required,max=255"`
	Email     string `validate:"required,email,max=63"`
	Phone     string `validate:"required,min=7,max=31"`
	Username  string `validate:"required,min=3,max=63"`
	Password  string `validate:"required,min=4"`
	Role      string `validate:"required,oneof=employee manager"`
}

// AddEmployee creates a staff user. Staff users have no account, so no
// account record is written.
func (s *Service) AddEmployee(ctx context.Context, in NewEmployeeInput) (string, error) {
	if err := s.validate.Struct(in); err != nil {
		return "", validationMessage(err)
	}
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return "", err
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

	user := &entity.User{
		ID:           id,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Age:          in.Age,
		Address:      in.Address,
		Email:        in.Email,
		Phone:        in.Phone,
		Active:       true,
		CreatedAt:    s.timeProvider.Now(),
	}
	if err := s.users.Save(ctx, user); err != nil {
		return "", err
	}

	s.logger.Info("staff user added", map[string]any{
		"user_id":  id,
		"username": in.Username,
		"role":     role.String(),
	})
	return fmt.Sprintf("Employee Added (ID: %d, Username: %s, Role: %s)", id, in.Username, role), nil
}

// ModifyUserInput carries the editable profile fields of any user.
type ModifyUserInput struct {
	UserID    uint32 `validate:"required"`
	FirstName string `validate:"required,max=63"`
	LastName  string `validate:"required,max=63"`
	Age       uint8  `validate:"gte=18,lte=120"`
	Address   string `validate:"required,max=255"`
	Email     string `validate:"required,email,max=63"`
	Phone     string `validate:"required,min=7,max=31"`
}

// ModifyUser updates any user's profile under a record lock.
func (s *Service) ModifyUser(ctx context.Context, in ModifyUserInput) (string, error) {
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
	return fmt.Sprintf("User Modified (ID: %d)", in.UserID), nil
}

// ListUsers renders every user, one line per record.
func (s *Service) ListUsers(ctx context.Context) (string, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return "", err
	}
	if len(users) == 0 {
		return "No users found.", nil
	}

	var b strings.Builder
	b.WriteString("ID    | Username         | Role     | Name                 | Active\n")
	b.WriteString("------|------------------|----------|----------------------|-------\n")
	for _, u := range users {
		fmt.Fprintf(&b, "%-5d | %-16s | %-8s | %-20s | %t\n",
			u.ID, u.Username, u.Role, u.FullName(), u.Active)
	}
	return b.String(), nil
}

// ChangeRole moves a staff user between the employee and manager roles.
// Customers keep their account-backed role and admins keep theirs, so
// neither end of the change may be a customer or an admin.
func (s *Service) ChangeRole(ctx context.Context, userID uint32, newRole string) (string, error) {
	role, err := entity.ParseRole(newRole)
	if err != nil {
		return "", err
	}
	if role != entity.RoleEmployee && role != entity.RoleManager {
		return "", errs.ErrRoleMismatch
	}

	err = s.users.AtomicUpdate(ctx, userID, func(u *entity.User) persistence.Outcome {
		if u.Role != entity.RoleEmployee && u.Role != entity.RoleManager {
			return persistence.Abort(errs.ErrRoleMismatch)
		}
		u.Role = role
		return persistence.Commit()
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("role changed", map[string]any{
		"user_id": userID,
		"role":    role.String(),
	})
	return fmt.Sprintf("Role of User %d Changed to %s", userID, role), nil
}
