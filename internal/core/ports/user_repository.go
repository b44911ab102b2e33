package ports

import (
	"context"

	"github.com/taskline/task-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Username uniqueness is enforced by the storage layer, not here: Create
// must translate the storage engine's constraint violation into
// domain.ErrUsernameTaken so concurrent registrations never both succeed.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
