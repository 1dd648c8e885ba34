package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushq/seminar-registration/internal/model"
	"github.com/campushq/seminar-registration/internal/service"
	"github.com/campushq/seminar-registration/internal/store"
)

// ReservationHandler exposes the public write side: creating a
// reservation draft and claiming a seat.  All decisions live in the
// reservation service; this layer only binds and translates errors
// to status codes.
type ReservationHandler struct {
	Svc *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Svc: svc}
}

// CreateDraft handles POST /v1/seminars/:id/drafts.  The attendee
// details are parked server-side and the returned draft id carries
// them into the seat-pick step.
func (h *ReservationHandler) CreateDraft(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seminar id"})
	}
	var a model.Attendee
	if err := c.Bind(&a); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	draftID, err := h.Svc.CreateDraft(c.Request().Context(), id, a)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message, "field": ve.Field})
		case errors.Is(err, store.ErrSeminarNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seminar not found"})
		case errors.Is(err, store.ErrDraftsUnavailable):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "drafts are not available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create draft failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"draft_id": draftID})
}

// Reserve handles POST /v1/seminars/:id/registrations.  A lost seat
// race comes back as 409 so the client can refresh the map and pick
// again.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seminar id"})
	}
	var req service.ReserveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	reg, err := h.Svc.Reserve(c.Request().Context(), id, req)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message, "field": ve.Field})
		case errors.Is(err, store.ErrSeminarNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seminar not found"})
		case errors.Is(err, store.ErrSeatTaken):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Seat already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create registration failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"registration": reg})
}
