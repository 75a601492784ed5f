package model

import (
	"time"

	"github.com/flatbank/flatbank/internal/domain/entity"
)

// Field widths of the user record.
const (
	UsernameLen     = 64
	PasswordHashLen = 128
	NameLen         = 64
	AddressLen      = 256
	EmailLen        = 64
	PhoneLen        = 32
)

// UserRecord is the on-disk shape of a user.
type UserRecord struct {
	ID           uint32
	Username     [UsernameLen]byte
	PasswordHash [PasswordHashLen]byte
	Role         uint8
	FirstName    [NameLen]byte
	LastName     [NameLen]byte
	Age          uint8
	Address      [AddressLen]byte
	Email        [EmailLen]byte
	Phone        [PhoneLen]byte
	Active       uint8
	CreatedAt    int64 // unix seconds
}

// FromUser fills the record from a domain user.
func FromUser(u *entity.User) *UserRecord {
	var r UserRecord
	r.ID = u.ID
	putString(r.Username[:], u.Username)
	putString(r.PasswordHash[:], u.PasswordHash)
	r.Role = uint8(u.Role)
	putString(r.FirstName[:], u.FirstName)
	putString(r.LastName[:], u.LastName)
	r.Age = u.Age
	putString(r.Address[:], u.Address)
	putString(r.Email[:], u.Email)
	putString(r.Phone[:], u.Phone)
	r.Active = boolToByte(u.Active)
	r.CreatedAt = u.CreatedAt.Unix()
	return &r
}

// ToUser converts the record back to a domain user.
func (r *UserRecord) ToUser() *entity.User {
	return &entity.User{
		ID:           r.ID,
		Username:     getString(r.Username[:]),
		PasswordHash: getString(r.PasswordHash[:]),
		Role:         entity.Role(r.Role),
		FirstName:    getString(r.FirstName[:]),
		LastName:     getString(r.LastName[:]),
		Age:          r.Age,
		Address:      getString(r.Address[:]),
		Email:        getString(r.Email[:]),
		Phone:        getString(r.Phone[:]),
		Active:       r.Active == 1,
		CreatedAt:    time.Unix(r.CreatedAt, 0),
	}
}
