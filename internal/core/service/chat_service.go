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

// ChatService implements team and private chat over the message store.
// Messages only become visible when a feed is fetched again; nothing is pushed.
type ChatService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	guard    replayGuard
	// strictReceivers rejects direct messages whose receiver is missing or
	// unknown. Off by default: historically a "user" message without a
	// receiver was stored as-is and simply never shows up in any feed.
	strictReceivers bool
	logger          zerolog.Logger
	now             func() time.Time
}

func NewChatService(
	messages ports.MessageRepository,
	users ports.UserRepository,
	idem ports.IdempotencyStore,
	strictReceivers bool,
	logger zerolog.Logger,
) *ChatService {
	return &ChatService{
		messages:        messages,
		users:           users,
		guard:           replayGuard{store: idem, log: logger},
		strictReceivers: strictReceivers,
		logger:          logger,
		now:             time.Now,
	}
}

// TeamFeed returns every team message with its sender's name.
func (s *ChatService) TeamFeed(ctx context.Context) ([]ports.MessageView, error) {
	msgs, err := s.messages.ListTeam(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, msgs)
}

// PrivateFeed returns the messages exchanged between the caller and
// counterpartID, in both directions. The result is the same set whichever
// side asks.
func (s *ChatService) PrivateFeed(ctx context.Context, caller domain.Caller, counterpartID string) ([]ports.MessageView, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.users.FindByID(ctx, counterpartID); err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListPrivate(ctx, caller.ID, counterpartID)
	if err != nil {
		s.logger.Error().Err(err).Str("user", caller.ID).Str("counterpart", counterpartID).Msg("failed to fetch private messages")
		return nil, err
	}
	return s.enrich(ctx, msgs)
}

// Send stores a message from the caller. Team messages never carry a receiver.
func (s *ChatService) Send(ctx context.Context, caller domain.Caller, in ports.SendMessageInput) (*ports.MessageView, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	msg, err := s.buildMessage(ctx, caller, in)
	if err != nil {
		return nil, err
	}

	scope := "messages:" + caller.ID
	existingID, bindKey, err := s.guard.claim(ctx, scope, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if existingID != "" {
		existing, err := s.messages.FindByID(ctx, existingID)
		switch {
		case err == nil:
			views, err := s.enrich(ctx, []*domain.Message{existing})
			if err != nil {
				return nil, err
			}
			views[0].Replayed = true
			return &views[0], nil
		case errors.Is(err, domain.ErrMessageNotFound):
			s.guard.stale(scope, in.IdempotencyKey, existingID)
			bindKey = true
		default:
			return nil, err
		}
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		if bindKey {
			s.guard.release(ctx, scope, in.IdempotencyKey)
		}
		s.logger.Error().Err(err).Str("sender", caller.ID).Msg("failed to store message")
		return nil, err
	}
	if bindKey {
		s.guard.bind(ctx, scope, in.IdempotencyKey, msg.ID)
	}

	s.logger.Info().Str("message_id", msg.ID).Str("chat_type", string(msg.ChatType)).Msg("message sent")

	views, err := s.enrich(ctx, []*domain.Message{msg})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *ChatService) buildMessage(ctx context.Context, caller domain.Caller, in ports.SendMessageInput) (*domain.Message, error) {
	verr := domain.NewValidationError()

	text := in.Text
	if strings.TrimSpace(text) == "" {
		verr.Add("text", "text is required")
	}

	chatType := domain.ChatType(in.ChatType)
	if in.ChatType == "" {
		verr.Add("chatType", "chatType is required")
	} else if !chatType.Valid() {
		verr.Add("chatType", "chatType must be one of: team, user")
	}

	receiverID := ""
	if chatType == domain.ChatUser {
		receiverID = strings.TrimSpace(in.ReceiverID)
		if s.strictReceivers {
			if err := s.checkReceiver(ctx, receiverID, verr); err != nil {
				return nil, err
			}
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return &domain.Message{
		SenderID:   caller.ID,
		ReceiverID: receiverID,
		Text:       text,
		ChatType:   chatType,
		CreatedAt:  s.now().UTC(),
	}, nil
}

func (s *ChatService) checkReceiver(ctx context.Context, receiverID string, verr *domain.ValidationError) error {
	if receiverID == "" {
		verr.Add("receiverId", "receiverId is required for user chat")
		return nil
	}
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			verr.Add("receiverId", "receiverId does not reference a user")
			return nil
		}
		return err
	}
	return nil
}

// enrich resolves sender and receiver names with a single batch lookup.
func (s *ChatService) enrich(ctx context.Context, msgs []*domain.Message) ([]ports.MessageView, error) {
	views := make([]ports.MessageView, 0, len(msgs))
	if len(msgs) == 0 {
		return views, nil
	}

	seen := make(map[string]struct{})
	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		for _, id := range []string{m.SenderID, m.ReceiverID} {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	for _, m := range msgs {
		view := ports.MessageView{
			ID:        m.ID,
			Text:      m.Text,
			ChatType:  string(m.ChatType),
			Sender:    ports.Participant{ID: m.SenderID, Name: names[m.SenderID]},
			CreatedAt: m.CreatedAt,
		}
		if m.ReceiverID != "" {
			view.Receiver = &ports.Participant{ID: m.ReceiverID, Name: names[m.ReceiverID]}
		}
		views = append(views, view)
	}
	return views, nil
}
