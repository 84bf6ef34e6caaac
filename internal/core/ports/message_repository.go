package ports

import (
	"context"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

// MessageRepository persists chat messages. List results come back in the
// store's natural (insertion) order.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	ListTeam(ctx context.Context) ([]*domain.Message, error)
	// ListPrivate returns the direct messages exchanged between a and b in
	// either direction.
	ListPrivate(ctx context.Context, a, b string) ([]*domain.Message, error)
}
