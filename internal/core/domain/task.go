package domain

import (
	"errors"
	"time"
)

// ErrTaskNotFound is returned when a task does not exist or belongs to a
// different user. The two cases are deliberately indistinguishable so task
// existence never leaks across accounts.
var ErrTaskNotFound = errors.New("task not found")

// Task is the core record. Completed is the only mutable state flag and can
// be toggled freely in either direction.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}
