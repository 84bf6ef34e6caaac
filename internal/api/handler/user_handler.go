package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-manager/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Profile returns the caller's own account.
//
// @Summary      Get the caller's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Status: true,
		Msg:    "Profile found successfully..",
		User:   toUserResponse(*user),
	})
}

// List returns every user with the number of tasks they own. The response is
// a bare array, which the chat sidebar iterates directly.
//
// @Summary      List users with task counts
// @Tags         users
// @Produce      json
// @Success      200  {array}   userSummaryResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/user/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListWithTaskCounts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserSummaries(users))
}
