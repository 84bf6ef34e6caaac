package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/taskdesk/task-manager/internal/core/domain"
	"github.com/taskdesk/task-manager/internal/core/ports"
)

func TestUserHandler_Profile(t *testing.T) {
	stub := &stubUserService{
		profileFn: func(caller domain.Caller) (*ports.UserView, error) {
			return &ports.UserView{ID: caller.ID, Name: "Alice", Email: "alice@example.com"}, nil
		},
	}
	h := NewUserHandler(stub)

	rec, err := serve(t, h.Profile, request{method: http.MethodGet, target: "/api/user/profile", caller: "alice"})
	expectStatus(t, rec, err, http.StatusOK)

	var resp profileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Status || resp.User.ID != "alice" || resp.User.Email != "alice@example.com" {
		t.Fatalf("unexpected profile %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("profile leaks password: %s", rec.Body.String())
	}
}

func TestUserHandler_Profile_RequiresCaller(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	_, err := serve(t, h.Profile, request{method: http.MethodGet, target: "/api/user/profile"})
	expectHTTPError(t, err, http.StatusUnauthorized)
}

func TestUserHandler_List(t *testing.T) {
	stub := &stubUserService{
		listFn: func() ([]ports.UserSummary, error) {
			return []ports.UserSummary{
				{UserView: ports.UserView{ID: "alice", Name: "Alice"}, TaskCount: 2},
				{UserView: ports.UserView{ID: "bob", Name: "Bob"}, TaskCount: 0},
			}, nil
		},
	}
	h := NewUserHandler(stub)

	rec, err := serve(t, h.List, request{method: http.MethodGet, target: "/api/user/users"})
	expectStatus(t, rec, err, http.StatusOK)

	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("expected a bare array: %v", err)
	}
	if len(users) != 2 || users[0]["_id"] != "alice" || users[0]["taskCount"] != float64(2) {
		t.Fatalf("unexpected users %v", users)
	}
	if _, ok := users[1]["taskCount"]; !ok {
		t.Fatal("zero task count must still be rendered")
	}
}
