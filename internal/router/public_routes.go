package router

import (
	"github.com/labstack/echo/v4"

	"github.com/campushq/seminar-registration/internal/handler"
)

// RegisterPublic registers the unauthenticated student-facing
// surface: college onboarding, seminar browsing, seat maps, the
// reservation flow and ticket downloads.  cacheMW is applied to the
// seminar reads (the hot paths behind a shared registration link);
// limitMW throttles the write endpoints.  Either may be a no-op.
func RegisterPublic(e *echo.Echo, colleges *handler.CollegeHandler, seminars *handler.SeminarHandler, reservations *handler.ReservationHandler, cacheMW, limitMW echo.MiddlewareFunc) {
	// ---- Colleges ----
	e.GET("/v1/colleges", colleges.List)
	e.POST("/v1/colleges", colleges.Create, limitMW)

	// ---- Seminar reads (cached) ----
	e.GET("/v1/seminars/:id", seminars.GetByID, cacheMW)
	e.GET("/v1/seminars/slug/:slug", seminars.GetBySlug, cacheMW)
	e.GET("/v1/seminars/:id/registrations", seminars.ListRegistrations, cacheMW)
	e.GET("/v1/seminars/:id/seats", seminars.SeatMap, cacheMW)

	// ---- Reservation flow (rate limited) ----
	e.POST("/v1/seminars/:id/drafts", reservations.CreateDraft, limitMW)
	e.POST("/v1/seminars/:id/registrations", reservations.Reserve, limitMW)

	// ---- Tickets ----
	e.GET("/v1/registrations/:id/ticket.png", seminars.TicketQR)
	e.GET("/v1/registrations/:id/ticket.pdf", seminars.TicketPDF)
}
