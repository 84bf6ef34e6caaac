package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	order []string
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *user
	clone.ID = fmt.Sprintf("u%d", r.seq)
	r.users[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

// add stores a user with a fixed ID.
func (r *stubUserRepo) add(id, name, email string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := &domain.User{ID: id, Name: name, Email: email}
	r.users[id] = u
	r.order = append(r.order, id)
	return u
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.users[id]
		out = append(out, &clone)
	}
	return out, nil
}

type stubTaskRepo struct {
	mu        sync.Mutex
	order     []string
	tasks     map[string]*domain.Task
	seq       int
	createErr error
	countErr  error
	calls     int
	// onCreate runs at the start of Create, before createErr is returned.
	onCreate func()
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.onCreate != nil {
		r.onCreate()
	}
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	t.ID = fmt.Sprintf("t%d", r.seq)
	clone := *t
	r.tasks[t.ID] = &clone
	r.order = append(r.order, t.ID)
	return nil
}

func (r *stubTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	out := []*domain.Task{}
	for _, id := range r.order {
		if t, ok := r.tasks[id]; ok && t.OwnerID == ownerID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

// owned mirrors the store's {_id, user} filter. Callers hold r.mu.
func (r *stubTaskRepo) owned(id, ownerID string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	return t, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id, ownerID string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	t, err := r.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Update(_ context.Context, id, ownerID string, p domain.TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	t, err := r.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Tags != nil {
		t.Tags = *p.Tags
	}
	t.UpdatedAt = p.UpdatedAt
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, err := r.owned(id, ownerID); err != nil {
		return err
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) CountByOwner(_ context.Context, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) StatusCounts(_ context.Context, ownerID string) (map[domain.TaskStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	out := make(map[domain.TaskStatus]int64)
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			out[t.Status]++
		}
	}
	return out, nil
}

func (r *stubTaskRepo) stored() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

type stubMessageRepo struct {
	mu    sync.Mutex
	msgs  []*domain.Message
	seq   int
	calls int
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.seq++
	m.ID = fmt.Sprintf("m%d", r.seq)
	clone := *m
	r.msgs = append(r.msgs, &clone)
	return nil
}

func (r *stubMessageRepo) FindByID(_ context.Context, id string) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m.ID == id {
			clone := *m
			return &clone, nil
		}
	}
	return nil, domain.ErrMessageNotFound
}

func (r *stubMessageRepo) ListTeam(_ context.Context) ([]*domain.Message, error) {
	return r.filter(func(m *domain.Message) bool { return m.ChatType == domain.ChatTeam }), nil
}

func (r *stubMessageRepo) ListPrivate(_ context.Context, a, b string) ([]*domain.Message, error) {
	return r.filter(func(m *domain.Message) bool {
		if m.ChatType != domain.ChatUser {
			return false
		}
		return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
	}), nil
}

func (r *stubMessageRepo) filter(keep func(*domain.Message) bool) []*domain.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	out := []*domain.Message{}
	for _, m := range r.msgs {
		if keep(m) {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out
}

// stubIdempotency is a map-backed IdempotencyStore. Like a network client,
// Bind and Release fail on a done context.
type stubIdempotency struct {
	mu       sync.Mutex
	entries  map[string]string
	claimErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{entries: make(map[string]string)}
}

func (s *stubIdempotency) Claim(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claimErr != nil {
		return "", false, s.claimErr
	}
	k := scope + ":" + key
	if id, ok := s.entries[k]; ok {
		return id, false, nil
	}
	s.entries[k] = ""
	return "", true, nil
}

func (s *stubIdempotency) Bind(ctx context.Context, scope, key, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[scope+":"+key] = id
	return nil
}

func (s *stubIdempotency) Release(ctx context.Context, scope, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, scope+":"+key)
	return nil
}

func (s *stubIdempotency) bound(scope, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.entries[scope+":"+key]
	return id, ok
}
