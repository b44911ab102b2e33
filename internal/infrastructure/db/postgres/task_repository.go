package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/taskline/task-api/internal/core/domain"
	"github.com/taskline/task-api/internal/core/ports"
)

// TaskRepository persists tasks in the tasks table. Ownership is part of
// every WHERE clause, so a foreign task id behaves like a missing one.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task and returns the assigned id.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(
		ctx,
		`INSERT INTO tasks (user_id, title, description, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		task.UserID, task.Title, task.Description, task.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return id, nil
}

// ListByUser returns the user's tasks ordered most recent first, with id as
// a stable tie-break for equal timestamps.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, title, description, completed, created_at
		 FROM tasks WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies the supplied fields to the user's task. With no fields set
// it degrades to an existence check, so a no-op update still distinguishes
// owned tasks from missing or foreign ones.
func (r *TaskRepository) Update(ctx context.Context, userID, taskID int64, fields ports.UpdateTaskFields) error {
	if !fields.HasChanges() {
		var exists bool
		err := r.db.QueryRowContext(
			ctx,
			`SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1 AND user_id = $2)`,
			taskID, userID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check task: %w", err)
		}
		if !exists {
			return domain.ErrTaskNotFound
		}
		return nil
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 5)
	next := func() int { return len(args) + 1 }

	if fields.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", next()))
		args = append(args, *fields.Title)
	}
	if fields.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", next()))
		args = append(args, *fields.Description)
	}
	if fields.Completed != nil {
		sets = append(sets, fmt.Sprintf("completed = $%d", next()))
		args = append(args, *fields.Completed)
	}

	query := fmt.Sprintf(
		"UPDATE tasks SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(sets, ", "), next(), next()+1,
	)
	args = append(args, taskID, userID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete removes the user's task. Zero rows affected means the task did not
// exist for this user.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID int64) error {
	res, err := r.db.ExecContext(
		ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
