// Package service implements the reservation and verification flows
// on top of a Store.  Handlers stay thin: they bind and translate,
// the services own validation, layout resolution and the ticket
// lifecycle.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/campushq/seminar-registration/internal/layout"
	"github.com/campushq/seminar-registration/internal/model"
	"github.com/campushq/seminar-registration/internal/queue"
	"github.com/campushq/seminar-registration/internal/store"
	"github.com/campushq/seminar-registration/internal/utils"
)

// ValidationError is a client-fixable input problem, surfaced as
// HTTP 400 with a field-level message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// EventPublisher publishes domain events.  Failures never fail the
// request; a nil publisher disables events.
type EventPublisher interface {
	PublishRegistrationCreated(ctx context.Context, ev queue.RegistrationCreatedEvent) error
}

// CacheInvalidator drops cached views of a seminar after a write so
// the next read sees the new occupancy.  A nil invalidator means no
// response cache is configured.
type CacheInvalidator interface {
	InvalidateSeminar(ctx context.Context, sem *model.Seminar)
}

// ReservationService accepts seat-claim requests.  The store is the
// only required dependency; drafts, events and cache invalidation
// are optional collaborators.
type ReservationService struct {
	store     store.Store
	drafts    *store.DraftStore
	publisher EventPublisher
	cache     CacheInvalidator
}

// NewReservationService wires a reservation service.  drafts,
// publisher and cache may each be nil.
func NewReservationService(st store.Store, drafts *store.DraftStore, publisher EventPublisher, cache CacheInvalidator) *ReservationService {
	if st == nil {
		panic("nil store passed to NewReservationService")
	}
	return &ReservationService{store: st, drafts: drafts, publisher: publisher, cache: cache}
}

// ReserveRequest is one seat claim.  Attendee details come either
// inline or by reference to a previously created draft; when both
// are present the draft wins.
type ReserveRequest struct {
	SeatRow  int            `json:"seat_row"`
	SeatCol  int            `json:"seat_col"`
	DraftID  string         `json:"draft_id,omitempty"`
	Attendee model.Attendee `json:"attendee"`
}

// ticketAttempts bounds regeneration when a fresh ticket id collides
// with an existing one.  Collisions are 1-in-2^32 events; two
// retries is already paranoid.
const ticketAttempts = 3

// Reserve claims one seat.  Sequence: resolve the seminar's layout,
// validate bounds and attendee details (before any mutation), then
// hand the atomic conflict-check-and-insert to the store.  On
// success the committed registration is returned with its ticket id;
// a lost race surfaces as store.ErrSeatTaken.
func (s *ReservationService) Reserve(ctx context.Context, seminarID int64, req ReserveRequest) (*model.Registration, error) {
	sem, err := s.store.GetSeminar(ctx, seminarID)
	if err != nil {
		return nil, err
	}

	attendee := req.Attendee
	if req.DraftID != "" {
		if s.drafts == nil {
			return nil, invalid("draft_id", "drafts are not enabled")
		}
		draftSeminar, a, err := s.drafts.Get(ctx, req.DraftID)
		if err != nil {
			if errors.Is(err, store.ErrDraftNotFound) {
				return nil, invalid("draft_id", "draft expired or unknown")
			}
			return nil, err
		}
		if draftSeminar != seminarID {
			return nil, invalid("draft_id", "draft belongs to a different seminar")
		}
		attendee = a
	}
	if err := validateAttendee(attendee); err != nil {
		return nil, err
	}

	res := layout.Resolve(sem, s.hallLookup(ctx))
	if !res.InBounds(req.SeatRow, req.SeatCol) {
		return nil, invalid("seat", "seat is outside the seminar's seating layout")
	}

	reg := &model.Registration{
		SeminarID: seminarID,
		Attendee:  attendee,
		SeatRow:   req.SeatRow,
		SeatCol:   req.SeatCol,
		SeatLabel: layout.SeatLabel(req.SeatRow, req.SeatCol),
	}
	for attempt := 0; ; attempt++ {
		reg.TicketID = utils.NewTicketID()
		err = s.store.CreateRegistration(ctx, reg)
		if errors.Is(err, store.ErrTicketTaken) && attempt < ticketAttempts-1 {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	if s.drafts != nil && req.DraftID != "" {
		s.drafts.Delete(ctx, req.DraftID)
	}
	if s.cache != nil {
		s.cache.InvalidateSeminar(ctx, sem)
	}
	if s.publisher != nil {
		ev := queue.RegistrationCreatedEvent{
			RegistrationID: reg.ID,
			SeminarID:      sem.ID,
			SeminarTitle:   sem.Title,
			CollegeID:      sem.CollegeID,
			StudentName:    reg.StudentName,
			Email:          reg.Email,
			SeatLabel:      reg.SeatLabel,
			SeatRow:        reg.SeatRow,
			SeatCol:        reg.SeatCol,
			TicketID:       reg.TicketID,
			CreatedAt:      reg.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := s.publisher.PublishRegistrationCreated(ctx, ev); err != nil {
			log.Printf("reserve: event publish failed (ignored): %v", err)
		}
	}
	return reg, nil
}

// CreateDraft stores attendee details for a later seat claim.  The
// seminar must exist; the draft itself lives only in Redis with a
// TTL.
func (s *ReservationService) CreateDraft(ctx context.Context, seminarID int64, a model.Attendee) (string, error) {
	if s.drafts == nil {
		return "", store.ErrDraftsUnavailable
	}
	if _, err := s.store.GetSeminar(ctx, seminarID); err != nil {
		return "", err
	}
	if err := validateAttendee(a); err != nil {
		return "", err
	}
	return s.drafts.Create(ctx, seminarID, a)
}

// hallLookup adapts the store to the layout resolver's lookup shape.
func (s *ReservationService) hallLookup(ctx context.Context) layout.HallLookup {
	return func(hallID int64) (*model.Hall, error) {
		return s.store.GetHall(ctx, hallID)
	}
}

func validateAttendee(a model.Attendee) error {
	switch {
	case a.StudentName == "":
		return invalid("student_name", "student name is required")
	case a.Email == "":
		return invalid("email", "email is required")
	case a.Phone == "":
		return invalid("phone", "phone is required")
	}
	return nil
}
