package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campushq/seminar-registration/internal/model"
	"github.com/campushq/seminar-registration/internal/queue"
	"github.com/campushq/seminar-registration/internal/store"
)

type capturedEvents struct {
	events []queue.RegistrationCreatedEvent
}

func (c *capturedEvents) PublishRegistrationCreated(_ context.Context, ev queue.RegistrationCreatedEvent) error {
	c.events = append(c.events, ev)
	return nil
}

type capturedInvalidations struct {
	seminarIDs []int64
}

func (c *capturedInvalidations) InvalidateSeminar(_ context.Context, sem *model.Seminar) {
	c.seminarIDs = append(c.seminarIDs, sem.ID)
}

func seedSeminar(t *testing.T, m *store.MemStore) *model.Seminar {
	t.Helper()
	sem := &model.Seminar{
		CollegeID:     1,
		Slug:          "ai-future-tech",
		Title:         "AI Future",
		SeatingSource: model.SeatingGrid,
		RowConfig:     map[int]int{1: 10, 2: 10},
	}
	if err := m.CreateSeminar(context.Background(), sem); err != nil {
		t.Fatalf("CreateSeminar: %v", err)
	}
	return sem
}

func attendee() model.Attendee {
	return model.Attendee{StudentName: "Asha", Email: "asha@example.com", Phone: "555-0101"}
}

func TestReserveSuccess(t *testing.T) {
	m := store.NewMemStore()
	sem := seedSeminar(t, m)
	events := &capturedEvents{}
	cache := &capturedInvalidations{}
	svc := NewReservationService(m, nil, events, cache)

	reg, err := svc.Reserve(context.Background(), sem.ID, ReserveRequest{
		SeatRow: 1, SeatCol: 5, Attendee: attendee(),
	})
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if reg.SeatLabel != "A-5" {
		t.Fatalf("seat label = %q, want A-5", reg.SeatLabel)
	}
	if len(reg.TicketID) != 8 {
		t.Fatalf("ticket id %q should be 8 characters", reg.TicketID)
	}
	if reg.Attended {
		t.Fatalf("new registration must start unattended")
	}

	if len(events.events) != 1 {
		t.Fatalf("published %d events, want 1", len(events.events))
	}
	if ev := events.events[0]; ev.TicketID != reg.TicketID || ev.SeatLabel != "A-5" || ev.SeminarID != sem.ID {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if len(cache.seminarIDs) != 1 || cache.seminarIDs[0] != sem.ID {
		t.Fatalf("cache invalidation not recorded: %v", cache.seminarIDs)
	}
}

func TestReserveOutOfBounds(t *testing.T) {
	m := store.NewMemStore()
	sem := seedSeminar(t, m)
	svc := NewReservationService(m, nil, nil, nil)

	cases := []struct{ row, col int }{
		{0, 1}, {1, 0}, {1, 11}, {3, 1}, {27, 1},
	}
	for _, c := range cases {
		_, err := svc.Reserve(context.Background(), sem.ID, ReserveRequest{
			SeatRow: c.row, SeatCol: c.col, Attendee: attendee(),
		})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Reserve(%d,%d): got %v, want validation error", c.row, c.col, err)
		}
		if ve.Field != "seat" {
			t.Fatalf("Reserve(%d,%d): field = %q, want seat", c.row, c.col, ve.Field)
		}
	}
}

func TestReserveSeatConflict(t *testing.T) {
	m := store.NewMemStore()
	sem := seedSeminar(t, m)
	svc := NewReservationService(m, nil, nil, nil)

	if _, err := svc.Reserve(context.Background(), sem.ID, ReserveRequest{SeatRow: 2, SeatCol: 3, Attendee: attendee()}); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	_, err := svc.Reserve(context.Background(), sem.ID, ReserveRequest{SeatRow: 2, SeatCol: 3, Attendee: attendee()})
	if !errors.Is(err, store.ErrSeatTaken) {
		t.Fatalf("second reserve: got %v, want ErrSeatTaken", err)
	}
}

func TestReserveMissingAttendeeFields(t *testing.T) {
	m := store.NewMemStore()
	sem := seedSeminar(t, m)
	svc := NewReservationService(m, nil, nil, nil)

	cases := []struct {
		mutate func(*model.Attendee)
		field  string
	}{
		{func(a *model.Attendee) { a.StudentName = "" }, "student_name"},
		{func(a *model.Attendee) { a.Email = "" }, "email"},
		{func(a *model.Attendee) { a.Phone = "" }, "phone"},
	}
	for _, c := range cases {
		a := attendee()
		c.mutate(&a)
		_, err := svc.Reserve(context.Background(), sem.ID, ReserveRequest{SeatRow: 1, SeatCol: 1, Attendee: a})
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != c.field {
			t.Fatalf("missing %s: got %v", c.field, err)
		}
	}
}

func TestReserveUnknownSeminar(t *testing.T) {
	svc := NewReservationService(store.NewMemStore(), nil, nil, nil)
	_, err := svc.Reserve(context.Background(), 42, ReserveRequest{SeatRow: 1, SeatCol: 1, Attendee: attendee()})
	if !errors.Is(err, store.ErrSeminarNotFound) {
		t.Fatalf("got %v, want ErrSeminarNotFound", err)
	}
}

func TestReserveDraftWithoutDraftStore(t *testing.T) {
	m := store.NewMemStore()
	sem := seedSeminar(t, m)
	svc := NewReservationService(m, nil, nil, nil)

	_, err := svc.Reserve(context.Background(), sem.ID, ReserveRequest{
		SeatRow: 1, SeatCol: 1, DraftID: "some-draft",
	})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "draft_id" {
		t.Fatalf("got %v, want draft_id validation error", err)
	}
}

func TestCreateDraftWithoutDraftStore(t *testing.T) {
	m := store.NewMemStore()
	sem := seedSeminar(t, m)
	svc := NewReservationService(m, nil, nil, nil)

	_, err := svc.CreateDraft(context.Background(), sem.ID, attendee())
	if !errors.Is(err, store.ErrDraftsUnavailable) {
		t.Fatalf("got %v, want ErrDraftsUnavailable", err)
	}
}

func TestReserveHallSeminarWithMissingHall(t *testing.T) {
	m := store.NewMemStore()
	hallID := int64(99)
	sem := &model.Seminar{
		CollegeID:     1,
		Slug:          "hall-event",
		Title:         "Hall Event",
		SeatingSource: model.SeatingHall,
		HallID:        &hallID,
	}
	if err := m.CreateSeminar(context.Background(), sem); err != nil {
		t.Fatalf("CreateSeminar: %v", err)
	}
	svc := NewReservationService(m, nil, nil, nil)

	// dangling hall reference resolves to an empty layout, so every
	// seat is out of bounds rather than an internal error
	_, err := svc.Reserve(context.Background(), sem.ID, ReserveRequest{SeatRow: 1, SeatCol: 1, Attendee: attendee()})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "seat" {
		t.Fatalf("got %v, want seat validation error", err)
	}
}
