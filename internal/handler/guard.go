package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campushq/seminar-registration/internal/service"
)

// GuardHandler serves the gate scanner.  Verification outcomes —
// including unknown and already-used tickets — are answered with
// HTTP 200 so the scanning UI renders every result the same way;
// non-200 is reserved for malformed requests and server faults.
type GuardHandler struct {
	Svc *service.VerificationService
}

func NewGuardHandler(svc *service.VerificationService) *GuardHandler {
	if svc == nil {
		panic("nil service passed to NewGuardHandler")
	}
	return &GuardHandler{Svc: svc}
}

type verifyReq struct {
	TicketID string `json:"ticket_id"`
}

// Verify handles POST /v1/guard/verify.
func (h *GuardHandler) Verify(c echo.Context) error {
	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.TicketID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_id is required"})
	}
	result, err := h.Svc.Verify(c.Request().Context(), req.TicketID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}
	return c.JSON(http.StatusOK, result)
}
