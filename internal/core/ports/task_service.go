package ports

import (
	"context"

	"github.com/taskline/task-api/internal/core/domain"
)

// CreateTaskInput carries the data needed to create a task for a user.
type CreateTaskInput struct {
	UserID      int64
	Title       string
	Description string
}

// TaskService defines use-case operations over tasks. The caller always
// supplies the authenticated user id; ownership is never inferred.
type TaskService interface {
	ListTasks(ctx context.Context, userID int64) ([]*domain.Task, error)
	CreateTask(ctx context.Context, input CreateTaskInput) (int64, error)
	UpdateTask(ctx context.Context, userID, taskID int64, fields UpdateTaskFields) error
	DeleteTask(ctx context.Context, userID, taskID int64) error
}
