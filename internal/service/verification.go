package service

import (
	"context"
	"errors"

	"github.com/campushq/seminar-registration/internal/model"
	"github.com/campushq/seminar-registration/internal/store"
	"github.com/campushq/seminar-registration/internal/utils"
)

// Verification outcome messages shown to the guard.  These strings
// are part of the API contract with the scanning UI.
const (
	MsgInvalidTicket      = "Invalid Ticket ID"
	MsgTicketAlreadyUsed  = "Ticket Already Used"
	MsgAttendanceVerified = "Attendance Verified"
)

// VerifyResult is the gate-side answer for one scanned ticket.  An
// unknown or replayed ticket is a normal outcome, not an error, so
// the result always renders as HTTP 200.
type VerifyResult struct {
	Valid        bool                `json:"valid"`
	Message      string              `json:"message"`
	Registration *model.Registration `json:"registration,omitempty"`
}

// VerificationService performs the one-time unattended→attended
// transition for scanned tickets.
type VerificationService struct {
	store store.Store
	cache CacheInvalidator
}

// NewVerificationService wires a verification service; cache may be
// nil.
func NewVerificationService(st store.Store, cache CacheInvalidator) *VerificationService {
	if st == nil {
		panic("nil store passed to NewVerificationService")
	}
	return &VerificationService{store: st, cache: cache}
}

// Verify looks the ticket up globally (ids are unique system-wide,
// so no seminar scoping is needed) and flips attendance exactly
// once.  Replays get the registration back for display without any
// further state change.  Only storage faults return a non-nil error.
func (v *VerificationService) Verify(ctx context.Context, ticketID string) (VerifyResult, error) {
	ticketID = utils.NormalizeTicketID(ticketID)
	if ticketID == "" {
		return VerifyResult{Valid: false, Message: MsgInvalidTicket}, nil
	}
	reg, err := v.store.ClaimTicket(ctx, ticketID)
	switch {
	case errors.Is(err, store.ErrTicketNotFound):
		return VerifyResult{Valid: false, Message: MsgInvalidTicket}, nil
	case errors.Is(err, store.ErrTicketUsed):
		return VerifyResult{Valid: false, Message: MsgTicketAlreadyUsed, Registration: reg}, nil
	case err != nil:
		return VerifyResult{}, err
	}
	if v.cache != nil {
		if sem, semErr := v.store.GetSeminar(ctx, reg.SeminarID); semErr == nil {
			v.cache.InvalidateSeminar(ctx, sem)
		}
	}
	return VerifyResult{Valid: true, Message: MsgAttendanceVerified, Registration: reg}, nil
}
