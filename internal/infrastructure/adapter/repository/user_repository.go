package repository

import (
	"context"
	"errors"

	"github.com/flatbank/flatbank/internal/domain/entity"
	errs "github.com/flatbank/flatbank/internal/domain/error"
	"github.com/flatbank/flatbank/internal/domain/port/core"
	"github.com/flatbank/flatbank/internal/domain/port/persistence"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/model"
	"github.com/flatbank/flatbank/internal/infrastructure/filestore"
)

// UsersFile is the entity file name for users.
const UsersFile = "users.db"

// FirstUserID is the id assigned to the first user ever created.
const FirstUserID = 1001

// UserRepository implements persistence.UserRepository over users.db.
type UserRepository struct {
	store  *filestore.Store[model.UserRecord]
	logger core.Logger
}

// NewUserRepository opens (or prepares) users.db inside dir.
func NewUserRepository(dir string, logger core.Logger) (*UserRepository, error) {
	store, err := filestore.Open[model.UserRecord](dir, UsersFile)
	if err != nil {
		return nil, err
	}
	return &UserRepository{store: store, logger: logger}, nil
}

// GetByID returns the user with the given id.
func (r *UserRepository) GetByID(_ context.Context, id uint32) (*entity.User, error) {
	rec, err := r.store.Find(func(u *model.UserRecord) bool { return u.ID == id })
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return rec.ToUser(), nil
}

// GetByUsername returns the user with the given username.
func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	rec, err := r.store.Find(func(u *model.UserRecord) bool {
		return u.ToUser().Username == username
	})
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return rec.ToUser(), nil
}

// List returns every user in record order.
func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	var users []entity.User
	err := r.store.Scan(func(rec *model.UserRecord) bool {
		users = append(users, *rec.ToUser())
		return true
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// NextID returns the id the next created user will receive: ids are assigned
// monotonically from the current record count.
func (r *UserRepository) NextID(_ context.Context) (uint32, error) {
	count, err := r.store.Count()
	if err != nil {
		return 0, err
	}
	return FirstUserID + uint32(count), nil
}

// Save inserts the user or overwrites the record holding the same id.
func (r *UserRepository) Save(_ context.Context, u *entity.User) error {
	rec := model.FromUser(u)
	return r.store.Overwrite(func(existing *model.UserRecord) bool {
		return existing.ID == u.ID
	}, rec)
}

// AtomicUpdate applies the mutator to the user record under a record lock.
func (r *UserRepository) AtomicUpdate(_ context.Context, id uint32, m persistence.UserMutator) error {
	err := r.store.AtomicUpdate(
		func(rec *model.UserRecord) bool { return rec.ID == id },
		func(rec *model.UserRecord) (bool, error) {
			user := rec.ToUser()
			outcome := m(user)
			if !outcome.Committed() {
				return false, outcome.Err()
			}
			*rec = *model.FromUser(user)
			return true, nil
		},
	)
	if errors.Is(err, filestore.ErrNotFound) {
		return errs.ErrUserNotFound
	}
	return err
}

// HasConflict reports whether another user already holds the username, email
// or phone. Empty values are not checked.
func (r *UserRepository) HasConflict(_ context.Context, username, email, phone string, excludeID uint32) (bool, error) {
	conflict := false
	err := r.store.Scan(func(rec *model.UserRecord) bool {
		if rec.ID == excludeID {
			return true
		}
		u := rec.ToUser()
		if (username != "" && u.Username == username) ||
			(email != "" && u.Email == email) ||
			(phone != "" && u.Phone == phone) {
			conflict = true
			return false
		}
		return true
	})
	if err != nil {
		return false, err
	}
	return conflict, nil
}
