package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"randohub/internal/ports/input"
	"randohub/internal/ports/output"
	"randohub/pkg/tz"
)

// EventHandler serves hikes and the participation lifecycle.
type EventHandler struct {
	events        input.EventUseCase
	participation input.ParticipationUseCase
	bulk          input.BulkNotifyUseCase
	t             output.T
	now           func() time.Time
}

func NewEventHandler(
	events input.EventUseCase,
	participation input.ParticipationUseCase,
	bulk input.BulkNotifyUseCase,
	t output.T,
) *EventHandler {
	return &EventHandler{
		events:        events,
		participation: participation,
		bulk:          bulk,
		t:             t,
		now:           time.Now,
	}
}

// List accepts dateFrom and dateTo (YYYY-MM-DD, Paris time, inclusive) and
// difficulty.
func (h *EventHandler) List(c echo.Context) error {
	var filter output.EventFilter
	if v := c.QueryParam("dateFrom"); v != "" {
		d, err := tz.ParseDay(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filter.DateFrom = d
	}
	if v := c.QueryParam("dateTo"); v != "" {
		d, err := tz.ParseDay(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		filter.DateTo = tz.EndOfDay(d)
	}
	filter.Difficulty = c.QueryParam("difficulty")

	events, err := h.events.ListEvents(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

func (h *EventHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	event, err := h.events.GetEvent(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

func (h *EventHandler) Participants(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	views, err := h.events.ListParticipants(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParticipantResponses(views))
}

func (h *EventHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var req createEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	event, err := h.events.CreateEvent(c.Request().Context(), req.toInput(), userID, req.NotifyUsers)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEventResponse(event))
}

// Update applies a partial update; the body is a JSON object of the fields to change.
func (h *EventHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	// Body only: Bind would also copy the :id path param into the map.
	var raw map[string]any
	if err := new(echo.DefaultBinder).BindBody(c, &raw); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	patch, err := decodePatch(raw)
	if err != nil {
		return err
	}
	event, err := h.events.UpdateEvent(c.Request().Context(), id, patch, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// Register signs the caller up for a hike that exists and has not started.
func (h *EventHandler) Register(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if _, err := h.events.EnsureOpenForRegistration(ctx, id, h.now()); err != nil {
		return err
	}

	res, err := h.participation.Register(ctx, id, userID)
	if err != nil {
		return err
	}

	key := "http.registered"
	if res.Reactivated {
		key = "http.reactivated"
	}
	return c.JSON(http.StatusOK, registerResponse{
		Success: true,
		Message: h.t.T(Locale(c), key, nil),
		Participation: participationResponse{
			ID:          res.ParticipantID,
			EventID:     res.EventID,
			UserID:      res.UserID,
			Status:      res.Status.String(),
			Reactivated: res.Reactivated,
		},
		NotificationSent:  res.NotificationSent,
		NotificationError: res.NotificationError,
	})
}

func (h *EventHandler) Cancel(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	res, err := h.participation.Cancel(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}

	key := "http.canceled"
	if res.AlreadyCanceled {
		key = "http.already_canceled"
	}
	return c.JSON(http.StatusOK, cancelResponse{
		Success:           true,
		Message:           h.t.T(Locale(c), key, nil),
		AlreadyCanceled:   res.AlreadyCanceled,
		NotificationSent:  res.NotificationSent,
		NotificationError: res.NotificationError,
	})
}

// Notify sends the reminder to every registered participant now.
func (h *EventHandler) Notify(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.events.CanNotify(ctx, id, userID); err != nil {
		return err
	}
	res, err := h.bulk.NotifyAll(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
