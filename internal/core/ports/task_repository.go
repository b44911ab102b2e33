package ports

import (
	"context"

	"github.com/taskline/task-api/internal/core/domain"
)

// UpdateTaskFields carries a partial update. A nil field means "leave
// untouched"; all three nil is a valid no-op update.
type UpdateTaskFields struct {
	Title       *string
	Description *string
	Completed   *bool
}

// HasChanges reports whether any field is set.
func (f UpdateTaskFields) HasChanges() bool {
	return f.Title != nil || f.Description != nil || f.Completed != nil
}

// TaskRepository defines persistence operations for tasks. Every operation
// is scoped by userID; a row owned by another user behaves exactly like a
// missing row.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (int64, error)
	// ListByUser returns the user's tasks, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error)
	Update(ctx context.Context, userID, taskID int64, fields UpdateTaskFields) error
	Delete(ctx context.Context, userID, taskID int64) error
}
