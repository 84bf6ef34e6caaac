package handler

import (
	"bytes"
	"strings"
	"time"

	"github.com/taskdesk/task-manager/internal/core/ports"
)

// ErrorResponse is the standard error envelope returned on all 4xx/5xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse is returned with 400 when one or more fields were rejected.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type statusResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"msg"`
}

// --- Users ---

type userResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type userSummaryResponse struct {
	userResponse
	TaskCount int64 `json:"taskCount"`
}

type profileResponse struct {
	Status bool         `json:"status"`
	Msg    string       `json:"msg"`
	User   userResponse `json:"user"`
}

func toUserResponse(v ports.UserView) userResponse {
	return userResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// --- Tasks ---

// dateInput accepts RFC 3339 timestamps and plain YYYY-MM-DD dates, the form
// a browser date picker submits. Unparseable values are kept so the handler
// can report them as a field error instead of rejecting the whole payload.
type dateInput struct {
	Time    time.Time
	Invalid bool
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

func (d *dateInput) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	raw := strings.TrimSpace(strings.Trim(string(b), `"`))
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	d.Invalid = true
	return nil
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *dateInput `json:"dueDate"     swaggertype:"string" example:"2025-01-31"`
	Priority    string     `json:"priority"    enums:"Low,Medium,High"`
	Status      string     `json:"status"      enums:"Pending,In Progress,Completed"`
	Tags        []string   `json:"tags"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *dateInput `json:"dueDate"     swaggertype:"string" example:"2025-01-31"`
	Priority    *string    `json:"priority"    enums:"Low,Medium,High"`
	Status      *string    `json:"status"      enums:"Pending,In Progress,Completed"`
	Tags        *[]string  `json:"tags"`
}

type taskResponse struct {
	ID          string    `json:"_id"`
	User        string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type taskEnvelope struct {
	Status bool         `json:"status"`
	Msg    string       `json:"msg"`
	Task   taskResponse `json:"task"`
}

type taskListEnvelope struct {
	Status bool           `json:"status"`
	Msg    string         `json:"msg"`
	Tasks  []taskResponse `json:"tasks"`
}

type statusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type taskStatsEnvelope struct {
	Status   bool                  `json:"status"`
	Msg      string                `json:"msg"`
	Total    int64                 `json:"total"`
	ByStatus []statusCountResponse `json:"byStatus"`
}

// --- Chat ---

type sendMessageRequest struct {
	Text       string `json:"text"`
	ChatType   string `json:"chatType"   enums:"team,user"`
	ReceiverID string `json:"receiverId"`
}

type participantResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type messageResponse struct {
	ID        string               `json:"_id"`
	Text      string               `json:"text"`
	ChatType  string               `json:"chatType"`
	Sender    participantResponse  `json:"sender"`
	Receiver  *participantResponse `json:"receiver"`
	CreatedAt time.Time            `json:"createdAt"`
}
