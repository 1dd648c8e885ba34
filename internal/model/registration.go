package model

import "time"

// Attendee carries the contact details collected before a seat is
// chosen.  The same shape is used for reservation drafts and for the
// denormalized copy stored on a Registration.
type Attendee struct {
	StudentName string `json:"student_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CollegeName string `json:"college_name,omitempty"`
	Course      string `json:"course,omitempty"`
	Semester    string `json:"semester,omitempty"`
}

// Registration is a student's claim on one specific seat of one
// seminar.  The (SeatRow, SeatCol) pair is the source of truth for
// conflict checks; SeatLabel is a presentation value derived once at
// creation ("A-5") and never parsed back.  TicketID is an opaque
// 8-character uppercase token, unique across the whole system, used
// by guards to verify entry.  Attended flips false→true exactly once
// via ticket verification and is never reversed.
//
// Fields:
//  ID        – primary key identifier.
//  SeminarID – seminar the seat belongs to.
//  Attendee  – denormalized contact fields.
//  SeatRow   – 1-based row index.
//  SeatCol   – 1-based column index within the row.
//  SeatLabel – human readable seat name, row letter + column.
//  Attended  – whether the ticket has been used at the door.
//  TicketID  – unique verification token, immutable after creation.
//  CreatedAt – timestamp of creation.
type Registration struct {
	ID        int64 `json:"id"` // registrations.id
	SeminarID int64 `json:"seminar_id"`
	Attendee
	SeatRow   int       `json:"seat_row"`
	SeatCol   int       `json:"seat_col"`
	SeatLabel string    `json:"seat_label"`
	Attended  bool      `json:"attended"`
	TicketID  string    `json:"ticket_id"`
	CreatedAt time.Time `json:"created_at"`
}
