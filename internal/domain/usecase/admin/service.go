// Package admin implements the administrator operations: staff onboarding,
// user maintenance and role changes.
package admin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/flatbank/flatbank/internal/domain/port/core"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
)

// Service composes the repositories behind the admin operations.
type Service struct {
	users        persistence.UserRepository
	accounts     persistence.AccountRepository
	hasher       core.PasswordHasher
	timeProvider core.TimeProvider
	logger       core.Logger
	validate     *validator.Validate
}

// NewService creates the admin service.
func NewService(
	users persistence.UserRepository,
	accounts persistence.AccountRepository,
	hasher core.PasswordHasher,
	timeProvider core.TimeProvider,
	logger core.Logger,
) *Service {
	return &Service{
		users:        users,
		accounts:     accounts,
		hasher:       hasher,
		timeProvider: timeProvider,
		logger:       logger,
		validate:     validator.New(),
	}
}

func validationMessage(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation (%s)", field, fe.Tag()))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
