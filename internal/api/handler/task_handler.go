package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-manager/internal/api/metrics"
	"github.com/taskdesk/task-manager/internal/core/ports"
)

// TaskHandler handles HTTP requests for the caller's tasks.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  taskListEnvelope
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, taskListEnvelope{
		Status: true,
		Msg:    "Tasks found successfully..",
		Tasks:  toTaskResponses(tasks),
	})
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createTaskRequest  true   "Task details"
// @Success      201              {object}  taskEnvelope
// @Success      200              {object}  taskEnvelope  "Replay of an earlier create"
// @Failure      400              {object}  ValidationErrorResponse
// @Failure      401              {object}  ErrorResponse
// @Failure      409              {object}  ErrorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := toCreateTaskInput(req, c.Request().Header.Get(headerIdempotencyKey))
	if err != nil {
		return err
	}

	task, err := h.service.Create(c.Request().Context(), caller, in)
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(task.Priority, strconv.FormatBool(task.Replayed)).Inc()

	code := http.StatusCreated
	if task.Replayed {
		code = http.StatusOK
		c.Response().Header().Set(headerIdempotentReplay, "true")
	}
	return c.JSON(code, taskEnvelope{
		Status: true,
		Msg:    "Task created successfully..",
		Task:   toTaskResponse(*task),
	})
}

// Get handles GET /api/tasks/:id.
//
// @Summary      Get one of the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  taskEnvelope
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, taskEnvelope{
		Status: true,
		Msg:    "Task found successfully..",
		Task:   toTaskResponse(*task),
	})
}

// Update handles PUT /api/tasks/:id. Omitted fields are left unchanged.
//
// @Summary      Update one of the caller's tasks
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskEnvelope
// @Failure      400   {object}  ValidationErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := toUpdateTaskInput(req)
	if err != nil {
		return err
	}

	task, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), in)
	if err != nil {
		return err
	}

	metrics.TasksUpdatedTotal.Inc()
	return c.JSON(http.StatusOK, taskEnvelope{
		Status: true,
		Msg:    "Task updated successfully..",
		Task:   toTaskResponse(*task),
	})
}

// Delete handles DELETE /api/tasks/:id.
//
// @Summary      Delete one of the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}

	metrics.TasksDeletedTotal.Inc()
	return c.JSON(http.StatusOK, statusResponse{Status: true, Msg: "Task deleted successfully.."})
}

// Stats handles GET /api/tasks/stats.
//
// @Summary      Count the caller's tasks by status
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  taskStatsEnvelope
// @Failure      401  {object}  ErrorResponse
// @Router       /api/tasks/stats [get]
func (h *TaskHandler) Stats(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	byStatus := make([]statusCountResponse, 0, len(stats.ByStatus))
	for _, sc := range stats.ByStatus {
		byStatus = append(byStatus, statusCountResponse{Status: sc.Status, Count: sc.Count})
	}
	return c.JSON(http.StatusOK, taskStatsEnvelope{
		Status:   true,
		Msg:      "Task stats found successfully..",
		Total:    stats.Total,
		ByStatus: byStatus,
	})
}
