package ports

import (
	"context"

	"github.com/taskline/task-api/internal/core/domain"
)

// AuthService defines the authentication use cases.
type AuthService interface {
	// Register creates a new account with a hashed password.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, username, password string) (string, error)
	// Identify resolves a bearer token to the user it was issued for.
	Identify(token string) (int64, error)
}
