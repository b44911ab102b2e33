package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskline/task-api/internal/core/domain"
	"github.com/taskline/task-api/internal/core/ports"
)

// TaskService implements task use cases. Every operation is scoped to the
// authenticated user; the repository folds ownership into its queries so a
// foreign task behaves exactly like a missing one.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

// ListTasks returns the user's tasks, newest first. No tasks is an empty
// slice, not an error.
func (s *TaskService) ListTasks(ctx context.Context, userID int64) ([]*domain.Task, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list tasks")
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task for the user. The title must be non-empty after
// trimming; the description defaults to the empty string.
func (s *TaskService) CreateTask(ctx context.Context, input ports.CreateTaskInput) (int64, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return 0, domain.ErrInvalidInput
	}

	task := &domain.Task{
		UserID:      input.UserID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", input.UserID).Msg("failed to create task")
		return 0, err
	}

	s.logger.Info().Int64("task_id", id).Int64("user_id", input.UserID).Msg("task created")
	return id, nil
}

// UpdateTask applies a partial update. Absent fields are left untouched and
// an update with no fields still succeeds when the task exists and belongs
// to the caller.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID int64, fields ports.UpdateTaskFields) error {
	if err := s.repo.Update(ctx, userID, taskID, fields); err != nil {
		return err
	}
	s.logger.Info().Int64("task_id", taskID).Int64("user_id", userID).Msg("task updated")
	return nil
}

// DeleteTask removes the user's task. A missing or foreign task yields
// ErrTaskNotFound.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	if err := s.repo.Delete(ctx, userID, taskID); err != nil {
		return err
	}
	s.logger.Info().Int64("task_id", taskID).Int64("user_id", userID).Msg("task deleted")
	return nil
}
