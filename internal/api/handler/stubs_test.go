package handler

import (
	"context"

	"github.com/taskdesk/task-manager/internal/core/domain"
	"github.com/taskdesk/task-manager/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error)
	loginFn  func(ctx context.Context, email, password string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

type stubAdmin struct{ user, pass string }

func (a stubAdmin) Check(u, p string) bool { return u == a.user && p == a.pass }

// stubTaskService records the caller of the last call and delegates to the
// func fields that are set. Unset funcs panic so unexpected calls surface.
type stubTaskService struct {
	lastCaller domain.Caller
	listFn     func() ([]ports.TaskView, error)
	createFn   func(in ports.CreateTaskInput) (*ports.TaskView, error)
	getFn      func(id string) (*ports.TaskView, error)
	updateFn   func(id string, in ports.UpdateTaskInput) (*ports.TaskView, error)
	deleteFn   func(id string) error
	statsFn    func() (*ports.TaskStats, error)
}

func (s *stubTaskService) List(_ context.Context, caller domain.Caller) ([]ports.TaskView, error) {
	s.lastCaller = caller
	return s.listFn()
}

func (s *stubTaskService) Create(_ context.Context, caller domain.Caller, in ports.CreateTaskInput) (*ports.TaskView, error) {
	s.lastCaller = caller
	return s.createFn(in)
}

func (s *stubTaskService) Get(_ context.Context, caller domain.Caller, id string) (*ports.TaskView, error) {
	s.lastCaller = caller
	return s.getFn(id)
}

func (s *stubTaskService) Update(_ context.Context, caller domain.Caller, id string, in ports.UpdateTaskInput) (*ports.TaskView, error) {
	s.lastCaller = caller
	return s.updateFn(id, in)
}

func (s *stubTaskService) Delete(_ context.Context, caller domain.Caller, id string) error {
	s.lastCaller = caller
	return s.deleteFn(id)
}

func (s *stubTaskService) Stats(_ context.Context, caller domain.Caller) (*ports.TaskStats, error) {
	s.lastCaller = caller
	return s.statsFn()
}

type stubUserService struct {
	profileFn func(caller domain.Caller) (*ports.UserView, error)
	listFn    func() ([]ports.UserSummary, error)
}

func (s *stubUserService) Profile(_ context.Context, caller domain.Caller) (*ports.UserView, error) {
	return s.profileFn(caller)
}

func (s *stubUserService) ListWithTaskCounts(context.Context) ([]ports.UserSummary, error) {
	return s.listFn()
}

type stubChatService struct {
	teamFn    func() ([]ports.MessageView, error)
	privateFn func(caller domain.Caller, counterpart string) ([]ports.MessageView, error)
	sendFn    func(caller domain.Caller, in ports.SendMessageInput) (*ports.MessageView, error)
}

func (s *stubChatService) TeamFeed(context.Context) ([]ports.MessageView, error) {
	return s.teamFn()
}

func (s *stubChatService) PrivateFeed(_ context.Context, caller domain.Caller, counterpart string) ([]ports.MessageView, error) {
	return s.privateFn(caller, counterpart)
}

func (s *stubChatService) Send(_ context.Context, caller domain.Caller, in ports.SendMessageInput) (*ports.MessageView, error) {
	return s.sendFn(caller, in)
}
