package domain

import (
	"errors"
	"time"
)

// Derived roles. A role is never stored: it is computed from which profile
// exists for the user at the moment a credential is issued.
const (
	RoleUser     = "User"
	RoleEmployee = "Employee"
	RoleManager  = "Manager"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidSession = errors.New("invalid session")
var ErrForbidden = errors.New("access forbidden")

// User is the identity record every profile hangs off of.
type User struct {
	ID                 string    `json:"id"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	RefreshToken       string    `json:"-"`
	RefreshTokenExpiry time.Time `json:"-"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// DeriveRole computes the access level from profile existence.
// A manager profile wins over an employee profile.
func DeriveRole(hasEmployeeProfile, hasManagerProfile bool) string {
	switch {
	case hasManagerProfile:
		return RoleManager
	case hasEmployeeProfile:
		return RoleEmployee
	default:
		return RoleUser
	}
}
