package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/messagely/messaging-system/internal/core/ports"
)

// UserHandler handles user listing, profiles, and per-user message history.
// The self-only rule on profile and history routes is enforced by the
// RequireSelf middleware before these handlers run.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}

// Get handles GET /users/:username.
//
// @Summary      Get a user's full profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /users/{username} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("username"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// MessagesTo handles GET /users/:username/to, the messages addressed to the user.
//
// @Summary      List messages received by a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  receivedMessagesResponse
// @Failure      401       {object}  errorResponse
// @Router       /users/{username}/to [get]
func (h *UserHandler) MessagesTo(c echo.Context) error {
	msgs, err := h.userService.MessagesTo(c.Request().Context(), c.Param("username"))
	if err != nil {
		return jsonError(c, err)
	}

	items := make([]receivedMessageItem, len(msgs))
	for i, m := range msgs {
		items[i] = receivedMessageItem{
			ID:       m.ID,
			Body:     m.Body,
			SentAt:   m.SentAt,
			ReadAt:   m.ReadAt,
			FromUser: m.FromUser,
		}
	}
	return c.JSON(http.StatusOK, receivedMessagesResponse{Messages: items})
}

// MessagesFrom handles GET /users/:username/from, the messages the user sent.
//
// @Summary      List messages sent by a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  sentMessagesResponse
// @Failure      401       {object}  errorResponse
// @Router       /users/{username}/from [get]
func (h *UserHandler) MessagesFrom(c echo.Context) error {
	msgs, err := h.userService.MessagesFrom(c.Request().Context(), c.Param("username"))
	if err != nil {
		return jsonError(c, err)
	}

	items := make([]sentMessageItem, len(msgs))
	for i, m := range msgs {
		items[i] = sentMessageItem{
			ID:     m.ID,
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: m.ReadAt,
			ToUser: m.ToUser,
		}
	}
	return c.JSON(http.StatusOK, sentMessagesResponse{Messages: items})
}
