package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/campushq/seminar-registration/internal/model"
)

func newMockStore(t *testing.T) (*MySQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewMySQLStore(db), mock
}

func seminarMockRows(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "college_id", "slug", "title", "description", "date", "time", "venue",
		"thumbnail", "seating_source", "row_config", "hall_id", "created_at",
	}).AddRow(id, 1, "ai-future-tech", "AI Future", "", "2026-09-10", "10:00", "Main Hall",
		nil, model.SeatingGrid, []byte(`{"1":10,"2":10}`), nil, time.Now())
}

func registrationMockRows(id int64, attended bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "seminar_id", "student_name", "email", "phone", "college_name", "course",
		"semester", "seat_row", "seat_col", "seat_label", "attended", "ticket_id", "created_at",
	}).AddRow(id, 1, "Asha", "asha@example.com", "555-0101", "", "", "",
		1, 5, "A-5", attended, "AAAA1111", time.Now())
}

func TestDupKeyErrMapping(t *testing.T) {
	cases := []struct {
		msg  string
		want error
	}{
		{"Duplicate entry '1-1-5' for key 'registrations.uq_reg_seat'", ErrSeatTaken},
		{"Duplicate entry 'AAAA1111' for key 'registrations.uq_reg_ticket'", ErrTicketTaken},
		{"Duplicate entry 'ai-future-tech' for key 'seminars.uq_seminar_slug'", ErrSlugTaken},
		{"Duplicate entry '1-admin' for key 'users.uq_user_name'", ErrUsernameTaken},
	}
	for _, c := range cases {
		err := dupKeyErr(&mysql.MySQLError{Number: 1062, Message: c.msg})
		if !errors.Is(err, c.want) {
			t.Fatalf("dupKeyErr(%q) = %v, want %v", c.msg, err, c.want)
		}
	}

	// non-1062 and unknown keys pass through untouched
	orig := &mysql.MySQLError{Number: 1213, Message: "deadlock"}
	if got := dupKeyErr(orig); got != error(orig) {
		t.Fatalf("non-duplicate error was remapped: %v", got)
	}
	unknown := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'other'"}
	if got := dupKeyErr(unknown); got != error(unknown) {
		t.Fatalf("unknown duplicate key was remapped: %v", got)
	}
}

func TestCreateRegistrationSeatRaceLoser(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM seminars WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(seminarMockRows(1))
	mock.ExpectExec("INSERT INTO registrations").
		WillReturnError(&mysql.MySQLError{Number: 1062,
			Message: "Duplicate entry '1-1-5' for key 'registrations.uq_reg_seat'"})

	reg := &model.Registration{
		SeminarID: 1,
		Attendee:  model.Attendee{StudentName: "Asha", Email: "asha@example.com", Phone: "555-0101"},
		SeatRow:   1, SeatCol: 5, SeatLabel: "A-5", TicketID: "BBBB2222",
	}
	err := st.CreateRegistration(context.Background(), reg)
	if !errors.Is(err, ErrSeatTaken) {
		t.Fatalf("got %v, want ErrSeatTaken", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRegistrationSuccess(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM seminars WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(seminarMockRows(1))
	mock.ExpectExec("INSERT INTO registrations").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT created_at FROM registrations WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	reg := &model.Registration{
		SeminarID: 1,
		Attendee:  model.Attendee{StudentName: "Asha", Email: "asha@example.com", Phone: "555-0101"},
		SeatRow:   1, SeatCol: 5, SeatLabel: "A-5", TicketID: "AAAA1111",
	}
	if err := st.CreateRegistration(context.Background(), reg); err != nil {
		t.Fatalf("CreateRegistration: %v", err)
	}
	if reg.ID != 7 {
		t.Fatalf("id = %d, want 7", reg.ID)
	}
	if reg.Attended {
		t.Fatalf("new registration must start unattended")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimTicketFlipsOnce(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("UPDATE registrations SET attended = 1").
		WithArgs("AAAA1111").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM registrations WHERE ticket_id").
		WithArgs("AAAA1111").
		WillReturnRows(registrationMockRows(7, true))

	reg, err := st.ClaimTicket(context.Background(), "AAAA1111")
	if err != nil {
		t.Fatalf("ClaimTicket: %v", err)
	}
	if !reg.Attended {
		t.Fatalf("claimed registration should be attended")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimTicketAlreadyUsed(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("UPDATE registrations SET attended = 1").
		WithArgs("AAAA1111").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM registrations WHERE ticket_id").
		WithArgs("AAAA1111").
		WillReturnRows(registrationMockRows(7, true))

	reg, err := st.ClaimTicket(context.Background(), "AAAA1111")
	if !errors.Is(err, ErrTicketUsed) {
		t.Fatalf("got %v, want ErrTicketUsed", err)
	}
	if reg == nil || reg.ID != 7 {
		t.Fatalf("replay should still return the registration, got %+v", reg)
	}
}

func TestClaimTicketUnknown(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("UPDATE registrations SET attended = 1").
		WithArgs("NOPE0000").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM registrations WHERE ticket_id").
		WithArgs("NOPE0000").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "seminar_id", "student_name", "email", "phone", "college_name", "course",
			"semester", "seat_row", "seat_col", "seat_label", "attended", "ticket_id", "created_at",
		}))

	if _, err := st.ClaimTicket(context.Background(), "NOPE0000"); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("got %v, want ErrTicketNotFound", err)
	}
}

func TestGetSeminarNotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM seminars WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "college_id", "slug", "title", "description", "date", "time", "venue",
			"thumbnail", "seating_source", "row_config", "hall_id", "created_at",
		}))

	if _, err := st.GetSeminar(context.Background(), 42); !errors.Is(err, ErrSeminarNotFound) {
		t.Fatalf("got %v, want ErrSeminarNotFound", err)
	}
}

func TestCollegeStatsRounding(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT").
		WithArgs(int64(1), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"seminars", "registrations", "attended"}).
			AddRow(2, 3, 1))

	stats, err := st.CollegeStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("CollegeStats: %v", err)
	}
	if stats.TotalSeminars != 2 || stats.TotalRegistrations != 3 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.AvgAttendance != 33 {
		t.Fatalf("AvgAttendance = %d, want 33", stats.AvgAttendance)
	}
}
