package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// timestampFormat is the fixed UTC rendering used for all user timestamps.
const timestampFormat = "2006-01-02T15:04:05Z"

// User represents a user account
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	PasswordHash   string    `json:"-"`
	IsVerified     bool      `json:"-"`
	AccountCreated time.Time `json:"-"`
	AccountUpdated time.Time `json:"-"`
}

// UserProfile is the public projection of a User returned to clients.
// The password hash is never part of it.
type UserProfile struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Username       string    `json:"username"`
	AccountCreated string    `json:"account_created"`
	AccountUpdated string    `json:"account_updated"`
}

// Profile renders the public fields of the user
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Username:       u.Username,
		AccountCreated: u.AccountCreated.UTC().Format(timestampFormat),
		AccountUpdated: u.AccountUpdated.UTC().Format(timestampFormat),
	}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Username  string `json:"username" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Password  string `json:"password" binding:"required"`
}

// UpdateUserInput represents a partial profile update. Absent fields
// keep their stored values; a supplied password is re-hashed.
type UpdateUserInput struct {
	FirstName null.String `json:"first_name"`
	LastName  null.String `json:"last_name"`
	Password  null.String `json:"password"`
}

// Empty reports whether the update carries no fields at all
func (i *UpdateUserInput) Empty() bool {
	return !i.FirstName.Valid && !i.LastName.Valid && !i.Password.Valid
}
