package ports

import (
	"context"
	"time"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

// CreateTaskInput is the DTO passed from the transport layer to TaskService.Create.
// Empty Priority/Status fall back to the domain defaults.
type CreateTaskInput struct {
	Title          string
	Description    string
	DueDate        *time.Time
	Priority       string
	Status         string
	Tags           []string
	IdempotencyKey string
}

// UpdateTaskInput carries a partial update. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *string
	Status      *string
	Tags        *[]string
}

// TaskView is the read model of a task.
type TaskView struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	DueDate     time.Time
	Priority    string
	Status      string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	// Replayed is true when an Idempotency-Key matched an earlier create.
	Replayed bool
}

// StatusCount is one bar of the task progress chart.
type StatusCount struct {
	Status string
	Count  int64
}

// TaskStats summarises a caller's tasks by status.
type TaskStats struct {
	Total    int64
	ByStatus []StatusCount
}

// TaskService defines the owner-scoped task use cases.
type TaskService interface {
	List(ctx context.Context, caller domain.Caller) ([]TaskView, error)
	Create(ctx context.Context, caller domain.Caller, in CreateTaskInput) (*TaskView, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*TaskView, error)
	Update(ctx context.Context, caller domain.Caller, id string, in UpdateTaskInput) (*TaskView, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
	Stats(ctx context.Context, caller domain.Caller) (*TaskStats, error)
}
