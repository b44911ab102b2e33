package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidInput covers missing or too-short request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUsernameTaken is returned when registration hits the unique constraint.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials covers both unknown username and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated is returned when a request carries no resolvable token.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUserNotFound is a repository-level miss. The auth service folds it
	// into ErrInvalidCredentials before it reaches a client.
	ErrUserNotFound = errors.New("user not found")
)

// User models a registered account. PasswordHash holds the bcrypt digest;
// the plaintext is never stored.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
