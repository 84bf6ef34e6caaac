package ports

import (
	"context"
	"time"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

// UserView is the public shape of a user. It has no password field, so no
// code path can render a hash.
type UserView struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserSummary is a UserView plus the number of tasks the user owns.
type UserSummary struct {
	UserView
	TaskCount int64
}

// UserService defines profile and directory use cases.
type UserService interface {
	Profile(ctx context.Context, caller domain.Caller) (*UserView, error)
	ListWithTaskCounts(ctx context.Context) ([]UserSummary, error)
}

// NewUserView projects a domain user onto its public shape.
func NewUserView(u *domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
