package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campushq/seminar-registration/internal/layout"
	"github.com/campushq/seminar-registration/internal/model"
	"github.com/campushq/seminar-registration/internal/store"
	"github.com/campushq/seminar-registration/internal/ticket"
)

// SeminarHandler serves the public read side: seminar details with
// their resolved layout, the registration list, the rendered seat
// map and downloadable tickets.  None of these routes require
// authentication; students browse and register without accounts.
type SeminarHandler struct {
	Store store.Store
}

func NewSeminarHandler(st store.Store) *SeminarHandler {
	return &SeminarHandler{Store: st}
}

// parseID parses a positive int64 path parameter.
func parseID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// hallLookup adapts the store to the layout resolver's lookup shape.
func (h *SeminarHandler) hallLookup(c echo.Context) layout.HallLookup {
	return func(hallID int64) (*model.Hall, error) {
		return h.Store.GetHall(c.Request().Context(), hallID)
	}
}

type seminarDetailResp struct {
	Seminar       *model.Seminar        `json:"seminar"`
	Layout        layout.Resolved       `json:"layout"`
	Registrations []*model.Registration `json:"registrations"`
}

func (h *SeminarHandler) detail(c echo.Context, sem *model.Seminar) error {
	regs, err := h.Store.ListRegistrations(c.Request().Context(), sem.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, seminarDetailResp{
		Seminar:       sem,
		Layout:        layout.Resolve(sem, h.hallLookup(c)),
		Registrations: regs,
	})
}

// GetByID handles GET /v1/seminars/:id.
func (h *SeminarHandler) GetByID(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seminar id"})
	}
	sem, err := h.Store.GetSeminar(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrSeminarNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seminar not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return h.detail(c, sem)
}

// GetBySlug handles GET /v1/seminars/slug/:slug, the public share
// link target.
func (h *SeminarHandler) GetBySlug(c echo.Context) error {
	slug := c.Param("slug")
	sem, err := h.Store.GetSeminarBySlug(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrSeminarNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seminar not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return h.detail(c, sem)
}

// ListRegistrations handles GET /v1/seminars/:id/registrations.
func (h *SeminarHandler) ListRegistrations(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seminar id"})
	}
	if _, err := h.Store.GetSeminar(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrSeminarNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seminar not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	regs, err := h.Store.ListRegistrations(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": regs})
}

// SeatMap handles GET /v1/seminars/:id/seats.  It returns the full
// rendered grid so the seat picker and the admin dashboard share one
// source of truth for seat states.
func (h *SeminarHandler) SeatMap(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seminar id"})
	}
	sem, err := h.Store.GetSeminar(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrSeminarNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seminar not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	regs, err := h.Store.ListRegistrations(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	res := layout.Resolve(sem, h.hallLookup(c))
	rows := layout.Render(res, layout.NewOccupancy(regs))
	return c.JSON(http.StatusOK, echo.Map{
		"seminar_id": sem.ID,
		"layout":     res,
		"rows":       rows,
	})
}

// TicketQR handles GET /v1/registrations/:id/ticket.png and returns
// the registration's ticket id as a QR code image.
func (h *SeminarHandler) TicketQR(c echo.Context) error {
	reg, err := h.registration(c)
	if err != nil {
		return err
	}
	if reg == nil {
		return nil // response already written
	}
	png, err := ticket.QRPNG(reg.TicketID, 256)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render qr failed"})
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// TicketPDF handles GET /v1/registrations/:id/ticket.pdf and returns
// a printable entry ticket.
func (h *SeminarHandler) TicketPDF(c echo.Context) error {
	reg, err := h.registration(c)
	if err != nil {
		return err
	}
	if reg == nil {
		return nil
	}
	sem, err := h.Store.GetSeminar(c.Request().Context(), reg.SeminarID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	pdf, err := ticket.PDF(sem, reg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render ticket failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="ticket-`+reg.TicketID+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// registration loads the :id path registration, writing the error
// response itself and returning (nil, nil) when it did.
func (h *SeminarHandler) registration(c echo.Context) (*model.Registration, error) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
	}
	reg, err := h.Store.GetRegistration(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrRegistrationNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return reg, nil
}
