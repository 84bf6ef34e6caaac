package ports

import (
	"context"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
// Every lookup by ID also filters by owner, so a task owned by someone else
// is indistinguishable from a missing one (domain.ErrTaskNotFound).
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.Task, error)
	// Update applies patch and returns the task as stored afterwards.
	Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	// StatusCounts groups the owner's tasks by status. Statuses with no
	// tasks are absent from the map.
	StatusCounts(ctx context.Context, ownerID string) (map[domain.TaskStatus]int64, error)
}
