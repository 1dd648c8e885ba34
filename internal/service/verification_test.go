package service

import (
	"context"
	"strings"
	"testing"

	"github.com/campushq/seminar-registration/internal/store"
)

func TestVerifySequence(t *testing.T) {
	m := store.NewMemStore()
	sem := seedSeminar(t, m)
	reservations := NewReservationService(m, nil, nil, nil)
	verification := NewVerificationService(m, nil)

	reg, err := reservations.Reserve(context.Background(), sem.ID, ReserveRequest{
		SeatRow: 1, SeatCol: 1, Attendee: attendee(),
	})
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	first, err := verification.Verify(context.Background(), reg.TicketID)
	if err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if !first.Valid || first.Message != MsgAttendanceVerified {
		t.Fatalf("first verify: %+v", first)
	}
	if first.Registration == nil || !first.Registration.Attended {
		t.Fatalf("first verify should return the attended registration")
	}

	second, err := verification.Verify(context.Background(), reg.TicketID)
	if err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if second.Valid || second.Message != MsgTicketAlreadyUsed {
		t.Fatalf("second verify: %+v", second)
	}
	if second.Registration == nil {
		t.Fatalf("replay should still surface the registration for the guard")
	}
}

func TestVerifyUnknownTicket(t *testing.T) {
	verification := NewVerificationService(store.NewMemStore(), nil)

	res, err := verification.Verify(context.Background(), "NOPE0000")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res.Valid || res.Message != MsgInvalidTicket {
		t.Fatalf("unknown ticket: %+v", res)
	}
	if res.Registration != nil {
		t.Fatalf("unknown ticket should carry no registration")
	}
}

func TestVerifyNormalizesInput(t *testing.T) {
	m := store.NewMemStore()
	sem := seedSeminar(t, m)
	reservations := NewReservationService(m, nil, nil, nil)
	verification := NewVerificationService(m, nil)

	reg, err := reservations.Reserve(context.Background(), sem.ID, ReserveRequest{
		SeatRow: 1, SeatCol: 2, Attendee: attendee(),
	})
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	// lowercase with surrounding whitespace, as hand-typed at the gate
	scruffy := "  " + strings.ToLower(reg.TicketID) + " "
	res, err := verification.Verify(context.Background(), scruffy)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !res.Valid {
		t.Fatalf("normalized ticket should verify, got %+v", res)
	}
}

func TestVerifyEmptyTicket(t *testing.T) {
	verification := NewVerificationService(store.NewMemStore(), nil)
	res, err := verification.Verify(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res.Valid || res.Message != MsgInvalidTicket {
		t.Fatalf("blank ticket: %+v", res)
	}
}

func TestVerifyInvalidatesCache(t *testing.T) {
	m := store.NewMemStore()
	sem := seedSeminar(t, m)
	reservations := NewReservationService(m, nil, nil, nil)
	cache := &capturedInvalidations{}
	verification := NewVerificationService(m, cache)

	reg, err := reservations.Reserve(context.Background(), sem.ID, ReserveRequest{
		SeatRow: 2, SeatCol: 2, Attendee: attendee(),
	})
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if _, err := verification.Verify(context.Background(), reg.TicketID); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(cache.seminarIDs) != 1 || cache.seminarIDs[0] != sem.ID {
		t.Fatalf("cache invalidation not recorded: %v", cache.seminarIDs)
	}
}
