package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-manager/internal/api/metrics"
	"github.com/taskdesk/task-manager/internal/core/ports"
)

// ChatHandler serves the team and private chat feeds. Feeds are returned as
// bare arrays of messages.
type ChatHandler struct {
	service ports.ChatService
}

func NewChatHandler(service ports.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Team handles GET /api/chat/team.
//
// @Summary      Team chat feed
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   messageResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/chat/team [get]
func (h *ChatHandler) Team(c echo.Context) error {
	if _, err := callerFrom(c); err != nil {
		return err
	}

	msgs, err := h.service.TeamFeed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMessageResponses(msgs))
}

// Private handles GET /api/chat/user/:userId.
//
// @Summary      Private conversation with another user
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "Counterpart user ID"
// @Success      200     {array}   messageResponse
// @Failure      401     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /api/chat/user/{userId} [get]
func (h *ChatHandler) Private(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	msgs, err := h.service.PrivateFeed(c.Request().Context(), caller, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMessageResponses(msgs))
}

// Send handles POST /api/chat/send.
//
// @Summary      Send a team or private message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      sendMessageRequest  true   "Message"
// @Success      201              {object}  messageResponse
// @Success      200              {object}  messageResponse  "Replay of an earlier send"
// @Failure      400              {object}  ValidationErrorResponse
// @Failure      401              {object}  ErrorResponse
// @Failure      409              {object}  ErrorResponse
// @Router       /api/chat/send [post]
func (h *ChatHandler) Send(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.Send(c.Request().Context(), caller, ports.SendMessageInput{
		Text:           req.Text,
		ChatType:       req.ChatType,
		ReceiverID:     req.ReceiverID,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if err != nil {
		return err
	}

	if msg.Replayed {
		c.Response().Header().Set(headerIdempotentReplay, "true")
		return c.JSON(http.StatusOK, toMessageResponse(*msg))
	}

	metrics.MessagesSentTotal.WithLabelValues(msg.ChatType).Inc()
	return c.JSON(http.StatusCreated, toMessageResponse(*msg))
}
