package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/taskdesk/task-manager/internal/core/domain"
	"github.com/taskdesk/task-manager/internal/core/ports"
)

func sampleTask() *ports.TaskView {
	ts := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	return &ports.TaskView{
		ID:          "t1",
		OwnerID:     "alice",
		Title:       "Write report",
		Description: "Q3",
		DueDate:     time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Priority:    "Medium",
		Status:      "Pending",
		Tags:        []string{},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func TestTaskHandler_RequiresCaller(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{})

	_, err := serve(t, h.List, request{method: http.MethodGet, target: "/api/tasks"})
	expectHTTPError(t, err, http.StatusUnauthorized)
}

func TestTaskHandler_List(t *testing.T) {
	stub := &stubTaskService{
		listFn: func() ([]ports.TaskView, error) { return []ports.TaskView{*sampleTask()}, nil },
	}
	h := NewTaskHandler(stub)

	rec, err := serve(t, h.List, request{method: http.MethodGet, target: "/api/tasks", caller: "alice"})
	expectStatus(t, rec, err, http.StatusOK)
	if stub.lastCaller.ID != "alice" {
		t.Fatalf("expected caller alice, got %q", stub.lastCaller.ID)
	}

	var resp struct {
		Status bool             `json:"status"`
		Tasks  []map[string]any `json:"tasks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Status || len(resp.Tasks) != 1 {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}
	task := resp.Tasks[0]
	if task["_id"] != "t1" || task["user"] != "alice" || task["dueDate"] != "2025-01-31T00:00:00Z" {
		t.Fatalf("unexpected task payload %v", task)
	}
	if tags, ok := task["tags"].([]any); !ok || len(tags) != 0 {
		t.Fatalf("expected empty tags array, got %v", task["tags"])
	}
}

func TestTaskHandler_Create(t *testing.T) {
	var got ports.CreateTaskInput
	stub := &stubTaskService{
		createFn: func(in ports.CreateTaskInput) (*ports.TaskView, error) {
			got = in
			return sampleTask(), nil
		},
	}
	h := NewTaskHandler(stub)

	rec, err := serve(t, h.Create, request{
		method:  http.MethodPost,
		target:  "/api/tasks",
		body:    `{"title":"Write report","description":"Q3","dueDate":"2025-01-31","tags":["q3"]}`,
		caller:  "alice",
		headers: map[string]string{headerIdempotencyKey: "key-1"},
	})
	expectStatus(t, rec, err, http.StatusCreated)

	if got.Title != "Write report" || got.IdempotencyKey != "key-1" || len(got.Tags) != 1 {
		t.Fatalf("unexpected service input %+v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected due date %v", got.DueDate)
	}
	if rec.Header().Get(headerIdempotentReplay) != "" {
		t.Fatal("fresh create must not be marked as replay")
	}
}

func TestTaskHandler_Create_Replay(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(ports.CreateTaskInput) (*ports.TaskView, error) {
			v := sampleTask()
			v.Replayed = true
			return v, nil
		},
	}
	h := NewTaskHandler(stub)

	rec, err := serve(t, h.Create, request{
		method:  http.MethodPost,
		target:  "/api/tasks",
		body:    `{"title":"Write report","description":"Q3","dueDate":"2025-01-31T00:00:00Z"}`,
		caller:  "alice",
		headers: map[string]string{headerIdempotencyKey: "key-1"},
	})
	expectStatus(t, rec, err, http.StatusOK)
	if rec.Header().Get(headerIdempotentReplay) != "true" {
		t.Fatal("expected replay header")
	}
}

func TestTaskHandler_Create_BadDueDate(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{})

	_, err := serve(t, h.Create, request{
		method: http.MethodPost,
		target: "/api/tasks",
		body:   `{"title":"x","description":"y","dueDate":"next tuesday"}`,
		caller: "alice",
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Fields["dueDate"] == "" {
		t.Fatalf("expected dueDate validation error, got %v", err)
	}
}

func TestTaskHandler_Get_NotFound(t *testing.T) {
	stub := &stubTaskService{
		getFn: func(id string) (*ports.TaskView, error) {
			if id != "t9" {
				t.Fatalf("unexpected id %q", id)
			}
			return nil, domain.ErrTaskNotFound
		},
	}
	h := NewTaskHandler(stub)

	_, err := serve(t, h.Get, request{
		method: http.MethodGet,
		target: "/api/tasks/t9",
		caller: "bob",
		params: map[string]string{"id": "t9"},
	})
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskHandler_Update_PartialFields(t *testing.T) {
	var got ports.UpdateTaskInput
	stub := &stubTaskService{
		updateFn: func(id string, in ports.UpdateTaskInput) (*ports.TaskView, error) {
			got = in
			v := sampleTask()
			v.Status = "Completed"
			return v, nil
		},
	}
	h := NewTaskHandler(stub)

	rec, err := serve(t, h.Update, request{
		method: http.MethodPut,
		target: "/api/tasks/t1",
		body:   `{"status":"Completed"}`,
		caller: "alice",
		params: map[string]string{"id": "t1"},
	})
	expectStatus(t, rec, err, http.StatusOK)

	if got.Status == nil || *got.Status != "Completed" {
		t.Fatalf("expected status to be forwarded, got %+v", got)
	}
	if got.Title != nil || got.Description != nil || got.DueDate != nil || got.Tags != nil {
		t.Fatalf("omitted fields must stay nil, got %+v", got)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	deleted := ""
	stub := &stubTaskService{deleteFn: func(id string) error { deleted = id; return nil }}
	h := NewTaskHandler(stub)

	rec, err := serve(t, h.Delete, request{
		method: http.MethodDelete,
		target: "/api/tasks/t1",
		caller: "alice",
		params: map[string]string{"id": "t1"},
	})
	expectStatus(t, rec, err, http.StatusOK)
	if deleted != "t1" {
		t.Fatalf("expected t1 deleted, got %q", deleted)
	}
}

func TestTaskHandler_Stats(t *testing.T) {
	stub := &stubTaskService{
		statsFn: func() (*ports.TaskStats, error) {
			return &ports.TaskStats{Total: 3, ByStatus: []ports.StatusCount{
				{Status: "Pending", Count: 1},
				{Status: "In Progress", Count: 0},
				{Status: "Completed", Count: 2},
			}}, nil
		},
	}
	h := NewTaskHandler(stub)

	rec, err := serve(t, h.Stats, request{method: http.MethodGet, target: "/api/tasks/stats", caller: "alice"})
	expectStatus(t, rec, err, http.StatusOK)

	var resp taskStatsEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 3 || len(resp.ByStatus) != 3 || resp.ByStatus[2].Count != 2 {
		t.Fatalf("unexpected stats %+v", resp)
	}
}
