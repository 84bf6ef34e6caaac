package ports

import (
	"context"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

// UserRepository is the identity store.
type UserRepository interface {
	// Create inserts a user and returns it with its assigned ID.
	// A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// List returns every user in the store's natural order.
	List(ctx context.Context) ([]*domain.User, error)
}
