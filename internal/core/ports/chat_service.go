package ports

import (
	"context"
	"time"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

// SendMessageInput is the DTO passed from the transport layer to ChatService.Send.
type SendMessageInput struct {
	Text           string
	ChatType       string
	ReceiverID     string
	IdempotencyKey string
}

// Participant is a message end-point enriched with its display name.
// Name is empty when the referenced user no longer resolves.
type Participant struct {
	ID   string
	Name string
}

// MessageView is the read model of a chat message.
type MessageView struct {
	ID        string
	Text      string
	ChatType  string
	Sender    Participant
	Receiver  *Participant // nil for team messages
	CreatedAt time.Time
	Replayed  bool
}

// ChatService defines the chat use cases.
type ChatService interface {
	TeamFeed(ctx context.Context) ([]MessageView, error)
	PrivateFeed(ctx context.Context, caller domain.Caller, counterpartID string) ([]MessageView, error)
	Send(ctx context.Context, caller domain.Caller, in SendMessageInput) (*MessageView, error)
}
