package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/taskdesk/task-manager/internal/core/domain"
	"github.com/taskdesk/task-manager/internal/core/ports"
)

const defaultCountConcurrency = 8

// UserService implements profile lookup and the user directory.
type UserService struct {
	users       ports.UserRepository
	tasks       ports.TaskRepository
	concurrency int
	logger      zerolog.Logger
}

// NewUserService returns a UserService. concurrency bounds the number of
// task-count queries in flight during ListWithTaskCounts; values <= 0 use
// defaultCountConcurrency.
func NewUserService(users ports.UserRepository, tasks ports.TaskRepository, concurrency int, logger zerolog.Logger) *UserService {
	if concurrency <= 0 {
		concurrency = defaultCountConcurrency
	}
	return &UserService{users: users, tasks: tasks, concurrency: concurrency, logger: logger}
}

func (s *UserService) Profile(ctx context.Context, caller domain.Caller) (*ports.UserView, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	view := ports.NewUserView(user)
	return &view, nil
}

// ListWithTaskCounts returns every user with the number of tasks they own.
// Counts are read with one independent query per user, so they are not a
// consistent snapshot against concurrent task writes.
func (s *UserService) ListWithTaskCounts(ctx context.Context) ([]ports.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ports.UserSummary, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, u := range users {
		i, u := i, u
		out[i] = ports.UserSummary{UserView: ports.NewUserView(u)}
		g.Go(func() error {
			n, err := s.tasks.CountByOwner(gctx, u.ID)
			if err != nil {
				return fmt.Errorf("count tasks for %s: %w", u.ID, err)
			}
			out[i].TaskCount = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to count tasks per user")
		return nil, err
	}
	return out, nil
}
