package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	ModifiedAt   time.Time `db:"modified_at" json:"modified_at"`
}

// RegisterInput is the open registration payload. New accounts start
// inactive; an operator flips is_active out of band.
type RegisterInput struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	PasswordRetype string `json:"password_retype"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
}

// ProfileInput updates the bearer's own profile. Pointer fields are
// PATCH-friendly: nil leaves the column untouched.
type ProfileInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type ChangePasswordInput struct {
	CurrentPassword   string `json:"current_password"`
	NewPassword       string `json:"new_password"`
	NewPasswordRetype string `json:"new_password_retype"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshInput struct {
	Refresh string `json:"refresh"`
}
