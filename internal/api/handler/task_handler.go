package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskline/task-api/internal/api/metrics"
	"github.com/taskline/task-api/internal/core/domain"
	"github.com/taskline/task-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. All routes are
// mounted behind the Auth middleware.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /tasks.
//
// @Summary      List the caller's tasks, newest first
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listTasksResponse
// @Failure      401  {object}  map[string]string
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListTasks(c.Request().Context(), userID)
	if err != nil {
		metrics.TaskOpsTotal.WithLabelValues("list", "error").Inc()
		return err
	}

	metrics.TaskOpsTotal.WithLabelValues("list", "ok").Inc()
	items := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskResponse{
			ID:          t.ID,
			UserID:      t.UserID,
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			CreatedAt:   t.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, listTasksResponse{Tasks: items})
}

// Create handles POST /tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  createTaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	taskID, err := h.service.CreateTask(c.Request().Context(), ports.CreateTaskInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.TaskOpsTotal.WithLabelValues("create", "invalid").Inc()
		} else {
			metrics.TaskOpsTotal.WithLabelValues("create", "error").Inc()
		}
		return err
	}

	metrics.TaskOpsTotal.WithLabelValues("create", "ok").Inc()
	return c.JSON(http.StatusCreated, createTaskResponse{
		Message: "Task created",
		TaskID:  taskID,
	})
}

// Update handles PUT /tasks/:id. Only the supplied fields change; an empty
// body is a successful no-op when the task exists and belongs to the caller.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err = h.service.UpdateTask(c.Request().Context(), userID, taskID, ports.UpdateTaskFields{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			metrics.TaskOpsTotal.WithLabelValues("update", "not_found").Inc()
		} else {
			metrics.TaskOpsTotal.WithLabelValues("update", "error").Inc()
		}
		return err
	}

	metrics.TaskOpsTotal.WithLabelValues("update", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Task updated"})
}

// Delete handles DELETE /tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteTask(c.Request().Context(), userID, taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			metrics.TaskOpsTotal.WithLabelValues("delete", "not_found").Inc()
		} else {
			metrics.TaskOpsTotal.WithLabelValues("delete", "error").Inc()
		}
		return err
	}

	metrics.TaskOpsTotal.WithLabelValues("delete", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted"})
}

// taskIDParam parses the :id path parameter. A non-numeric id cannot match
// any task, so it reports not-found rather than bad-request.
func taskIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrTaskNotFound
	}
	return id, nil
}
