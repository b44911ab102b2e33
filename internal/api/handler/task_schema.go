package handler

import "time"

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
}

type createTaskResponse struct {
	Message string `json:"message"`
	TaskID  int64  `json:"task_id"`
}

// updateTaskRequest carries a partial update. Each field is independently
// optional: nil means "leave untouched", so an empty body is a valid no-op.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// taskResponse is the transport view of a task. It is intentionally
// separate from the domain type so the JSON contract is not coupled to
// internal changes.
type taskResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

type listTasksResponse struct {
	Tasks []taskResponse `json:"tasks"`
}
