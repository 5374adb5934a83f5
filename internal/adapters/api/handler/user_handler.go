package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"randohub/internal/ports/input"
)

type UserHandler struct {
	users input.UserUseCase
	now   func() time.Time
}

func NewUserHandler(users input.UserUseCase) *UserHandler {
	return &UserHandler{users: users, now: time.Now}
}

func (h *UserHandler) Me(c echo.Context) error {
	id, err := ctxUserID(c)
	if err != nil {
		return err
	}
	user, err := h.users.Me(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Events lists the caller's hikes split into past and upcoming.
func (h *UserHandler) Events(c echo.Context) error {
	id, err := ctxUserID(c)
	if err != nil {
		return err
	}
	events, err := h.users.Events(c.Request().Context(), id, h.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userEventsResponse{
		Past:   toUserEventResponses(events.Past),
		Future: toUserEventResponses(events.Future),
	})
}

func (h *UserHandler) SetOrganizer(c echo.Context) error {
	actorID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req setOrganizerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.users.SetOrganizer(c.Request().Context(), actorID, req.Email, *req.Organizer); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
