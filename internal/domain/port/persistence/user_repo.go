package persistence

import (
	"context"

	"github.com/flatbank/flatbank/internal/domain/entity"
)

// UserRepository persists login identities.
type UserRepository interface {
	// GetByID returns the user with the given id or ErrUserNotFound
	GetByID(ctx context.Context, id uint32) (*entity.User, error)
	// GetByUsername returns the user with the given username or ErrUserNotFound
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// List returns all users in record order
	List(ctx context.Context) ([]entity.User, error)
	// NextID returns the id the next created user will receive
	NextID(ctx context.Context) (uint32, error)
	// Save inserts the user or overwrites the record with the same id
	Save(ctx context.Context, u *entity.User) error
	// AtomicUpdate applies the mutator to the user record under a record lock
	AtomicUpdate(ctx context.Context, id uint32, m UserMutator) error
	// HasConflict reports whether another user (id != excludeID) already
	// holds the username, email or phone
	HasConflict(ctx context.Context, username, email, phone string, excludeID uint32) (bool, error)
}
