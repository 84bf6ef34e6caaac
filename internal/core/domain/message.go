package domain

import "time"

// ChatType tags a message as a team broadcast or a direct message.
type ChatType string

const (
	ChatTeam ChatType = "team"
	ChatUser ChatType = "user"
)

// Valid reports whether t is a known chat type.
func (t ChatType) Valid() bool {
	return t == ChatTeam || t == ChatUser
}

// Message is a single chat entry. ReceiverID is empty for team messages.
// Messages are never edited or deleted.
type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	Text       string
	ChatType   ChatType
	CreatedAt  time.Time
}
