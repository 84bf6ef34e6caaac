package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/task-manager/internal/core/domain"
	"github.com/taskdesk/task-manager/internal/core/ports"
)

// TaskService implements the task use cases. Ownership is the only
// authorization rule: every operation is filtered by the caller's ID.
type TaskService struct {
	repo   ports.TaskRepository
	guard  replayGuard
	logger zerolog.Logger
	now    func() time.Time
}

// NewTaskService returns a TaskService. idem may be nil, in which case
// Idempotency-Key headers are ignored.
func NewTaskService(repo ports.TaskRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *TaskService {
	return &TaskService{
		repo:   repo,
		guard:  replayGuard{store: idem, log: logger},
		logger: logger,
		now:    time.Now,
	}
}

// List returns every task the caller owns. There is no pagination.
func (s *TaskService) List(ctx context.Context, caller domain.Caller) ([]ports.TaskView, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	tasks, err := s.repo.ListByOwner(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, toTaskView(t))
	}
	return views, nil
}

// Create validates the input, applies defaults and stores a task owned by
// the caller. Nothing is written when validation fails.
func (s *TaskService) Create(ctx context.Context, caller domain.Caller, in ports.CreateTaskInput) (*ports.TaskView, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	task, err := s.buildTask(caller, in)
	if err != nil {
		return nil, err
	}

	scope := "tasks:" + caller.ID
	existingID, bindKey, err := s.guard.claim(ctx, scope, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if existingID != "" {
		existing, err := s.repo.FindByID(ctx, existingID, caller.ID)
		switch {
		case err == nil:
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("task_id", existing.ID).Msg("idempotent replay")
			view := toTaskView(existing)
			view.Replayed = true
			return &view, nil
		case errors.Is(err, domain.ErrTaskNotFound):
			s.guard.stale(scope, in.IdempotencyKey, existingID)
			bindKey = true
		default:
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, task); err != nil {
		if bindKey {
			s.guard.release(ctx, scope, in.IdempotencyKey)
		}
		s.logger.Error().Err(err).Str("owner", caller.ID).Msg("failed to create task")
		return nil, err
	}
	if bindKey {
		s.guard.bind(ctx, scope, in.IdempotencyKey, task.ID)
	}

	s.logger.Info().Str("task_id", task.ID).Str("owner", caller.ID).Msg("task created")

	view := toTaskView(task)
	return &view, nil
}

func (s *TaskService) buildTask(caller domain.Caller, in ports.CreateTaskInput) (*domain.Task, error) {
	verr := domain.NewValidationError()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		verr.Add("title", "title is required")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		verr.Add("description", "description is required")
	}
	if in.DueDate == nil || in.DueDate.IsZero() {
		verr.Add("dueDate", "dueDate is required")
	}

	priority := domain.PriorityMedium
	if in.Priority != "" {
		priority = domain.Priority(in.Priority)
		if !priority.Valid() {
			verr.Add("priority", "priority must be one of: Low, Medium, High")
		}
	}

	status := domain.StatusPending
	if in.Status != "" {
		status = domain.TaskStatus(in.Status)
		if !status.Valid() {
			verr.Add("status", "status must be one of: Pending, In Progress, Completed")
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return &domain.Task{
		OwnerID:     caller.ID,
		Title:       title,
		Description: description,
		DueDate:     in.DueDate.UTC(),
		Priority:    priority,
		Status:      status,
		Tags:        normalizeTags(in.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Get returns the task only when the caller owns it.
func (s *TaskService) Get(ctx context.Context, caller domain.Caller, id string) (*ports.TaskView, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	task, err := s.repo.FindByID(ctx, id, caller.ID)
	if err != nil {
		return nil, err
	}
	view := toTaskView(task)
	return &view, nil
}

// Update applies the supplied fields to a task the caller owns and bumps
// its modification time.
func (s *TaskService) Update(ctx context.Context, caller domain.Caller, id string, in ports.UpdateTaskInput) (*ports.TaskView, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	patch, err := buildPatch(in)
	if err != nil {
		return nil, err
	}
	patch.UpdatedAt = s.now().UTC()

	task, err := s.repo.Update(ctx, id, caller.ID, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("owner", caller.ID).Msg("task updated")

	view := toTaskView(task)
	return &view, nil
}

func buildPatch(in ports.UpdateTaskInput) (domain.TaskPatch, error) {
	var patch domain.TaskPatch
	verr := domain.NewValidationError()

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			verr.Add("title", "title cannot be empty")
		}
		patch.Title = &title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			verr.Add("description", "description cannot be empty")
		}
		patch.Description = &description
	}
	if in.DueDate != nil {
		if in.DueDate.IsZero() {
			verr.Add("dueDate", "dueDate cannot be empty")
		}
		due := in.DueDate.UTC()
		patch.DueDate = &due
	}
	if in.Priority != nil {
		p := domain.Priority(*in.Priority)
		if !p.Valid() {
			verr.Add("priority", "priority must be one of: Low, Medium, High")
		}
		patch.Priority = &p
	}
	if in.Status != nil {
		st := domain.TaskStatus(*in.Status)
		if !st.Valid() {
			verr.Add("status", "status must be one of: Pending, In Progress, Completed")
		}
		patch.Status = &st
	}
	if in.Tags != nil {
		tags := normalizeTags(*in.Tags)
		patch.Tags = &tags
	}

	if err := verr.OrNil(); err != nil {
		return domain.TaskPatch{}, err
	}
	return patch, nil
}

// Delete permanently removes a task the caller owns.
func (s *TaskService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if caller.IsZero() {
		return domain.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id, caller.ID); err != nil {
		return err
	}

	s.logger.Info().Str("task_id", id).Str("owner", caller.ID).Msg("task deleted")
	return nil
}

// Stats counts the caller's tasks per status. Every status is present in
// the result, in display order, even when its count is zero.
func (s *TaskService) Stats(ctx context.Context, caller domain.Caller) (*ports.TaskStats, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	counts, err := s.repo.StatusCounts(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	stats := &ports.TaskStats{ByStatus: make([]ports.StatusCount, 0, len(domain.TaskStatuses))}
	for _, st := range domain.TaskStatuses {
		n := counts[st]
		stats.Total += n
		stats.ByStatus = append(stats.ByStatus, ports.StatusCount{Status: string(st), Count: n})
	}
	return stats, nil
}

// normalizeTags trims every tag and drops empty ones, keeping order.
// The result is never nil.
func normalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, tag := range in {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func toTaskView(t *domain.Task) ports.TaskView {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return ports.TaskView{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Tags:        tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
