// Package auth implements login, logout and password changes, including the
// single-session-per-user rule.
package auth

import (
	"context"
	"errors"

	"github.com/flatbank/flatbank/internal/domain/entity"
	errs "github.com/flatbank/flatbank/internal/domain/error"
	"github.com/flatbank/flatbank/internal/domain/port/core"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
	"github.com/flatbank/flatbank/internal/domain/session"
)

// Service wires credential verification against the user table with the
// session registry.
type Service struct {
	users    persistence.UserRepository
	accounts persistence.AccountRepository
	sessions *session.Registry
	hasher   core.PasswordHasher
	logger   core.Logger
}

// NewService creates the auth service.
func NewService(
	users persistence.UserRepository,
	accounts persistence.AccountRepository,
	sessions *session.Registry,
	hasher core.PasswordHasher,
	logger core.Logger,
) *Service {
	return &Service{
		users:    users,
		accounts: accounts,
		sessions: sessions,
		hasher:   hasher,
		logger:   logger,
	}
}

// Login verifies credentials, checks the active flags, and claims a session
// slot. An unknown username and a wrong password produce the same
// ErrInvalidCredentials so usernames cannot be probed. A deactivated user or
// account yields the distinct ErrUserInactive outcome.
func (s *Service) Login(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		s.logger.Error("login: user lookup failed", map[string]any{
			"username": username,
			"error":    err.Error(),
		})
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, errs.ErrInvalidCredentials
	}

	if err := user.EnsureActive(); err != nil {
		return nil, err
	}
	if user.Role == entity.RoleCustomer {
		acc, err := s.accounts.GetByUserID(ctx, user.ID)
		if err == nil && !acc.Active {
			return nil, errs.ErrUserInactive
		}
	}

	if err := s.sessions.TryAcquire(user.ID); err != nil {
		s.logger.Warn("login refused by session registry", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("user logged in", map[string]any{
		"user_id": user.ID,
		"role":    user.Role.String(),
	})
	return user, nil
}

// Logout frees the user's session slot. Safe to call for a user that never
// logged in.
func (s *Service) Logout(userID uint32) {
	s.sessions.Release(userID)
	s.logger.Info("user logged out", map[string]any{"user_id": userID})
}

// ChangePassword rehashes and stores a new password for the user.
func (s *Service) ChangePassword(ctx context.Context, userID uint32, newPassword string) (string, error) {
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.logger.Error("password hash failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return "", err
	}

	err = s.users.AtomicUpdate(ctx, userID, func(u *entity.User) persistence.Outcome {
		u.PasswordHash = hash
		return persistence.Commit()
	})
	if err != nil {
		return "", err
	}
	return "Password changed successfully", nil
}
