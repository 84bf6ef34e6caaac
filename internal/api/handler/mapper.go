package handler

import (
	"github.com/taskdesk/task-manager/internal/core/domain"
	"github.com/taskdesk/task-manager/internal/core/ports"
)

// --- Request → Service input ---

func toCreateTaskInput(req createTaskRequest, idempotencyKey string) (ports.CreateTaskInput, error) {
	in := ports.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		Status:         req.Status,
		Tags:           req.Tags,
		IdempotencyKey: idempotencyKey,
	}
	if req.DueDate != nil {
		if req.DueDate.Invalid {
			return ports.CreateTaskInput{}, invalidDueDate()
		}
		due := req.DueDate.Time
		in.DueDate = &due
	}
	return in, nil
}

func toUpdateTaskInput(req updateTaskRequest) (ports.UpdateTaskInput, error) {
	in := ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Tags:        req.Tags,
	}
	if req.DueDate != nil {
		if req.DueDate.Invalid {
			return ports.UpdateTaskInput{}, invalidDueDate()
		}
		due := req.DueDate.Time
		in.DueDate = &due
	}
	return in, nil
}

func invalidDueDate() error {
	verr := domain.NewValidationError()
	verr.Add("dueDate", "dueDate must be a date (YYYY-MM-DD or RFC 3339)")
	return verr
}

// --- Service output → Response ---

func toTaskResponse(v ports.TaskView) taskResponse {
	return taskResponse{
		ID:          v.ID,
		User:        v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
		DueDate:     v.DueDate,
		Priority:    v.Priority,
		Status:      v.Status,
		Tags:        v.Tags,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toTaskResponses(views []ports.TaskView) []taskResponse {
	out := make([]taskResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toTaskResponse(v))
	}
	return out
}

func toMessageResponse(v ports.MessageView) messageResponse {
	resp := messageResponse{
		ID:        v.ID,
		Text:      v.Text,
		ChatType:  v.ChatType,
		Sender:    participantResponse{ID: v.Sender.ID, Name: v.Sender.Name},
		CreatedAt: v.CreatedAt,
	}
	if v.Receiver != nil {
		resp.Receiver = &participantResponse{ID: v.Receiver.ID, Name: v.Receiver.Name}
	}
	return resp
}

func toMessageResponses(views []ports.MessageView) []messageResponse {
	out := make([]messageResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toMessageResponse(v))
	}
	return out
}

func toUserSummaries(views []ports.UserSummary) []userSummaryResponse {
	out := make([]userSummaryResponse, 0, len(views))
	for _, v := range views {
		out = append(out, userSummaryResponse{userResponse: toUserResponse(v.UserView), TaskCount: v.TaskCount})
	}
	return out
}
