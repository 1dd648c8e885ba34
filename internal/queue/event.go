// Package queue defines the message payloads exchanged over the
// broker and the background consumer that turns them into an audit
// log.
package queue

// RegistrationCreatedEvent is published after a seat claim commits.
// It carries enough context for downstream consumers (audit log,
// notification mails, analytics) without querying the primary store.
type RegistrationCreatedEvent struct {
	RegistrationID int64  `json:"registration_id"`
	SeminarID      int64  `json:"seminar_id"`
	SeminarTitle   string `json:"seminar_title"`
	CollegeID      int64  `json:"college_id"`
	StudentName    string `json:"student_name"`
	Email          string `json:"email"`
	SeatLabel      string `json:"seat_label"`
	SeatRow        int    `json:"seat_row"`
	SeatCol        int    `json:"seat_col"`
	TicketID       string `json:"ticket_id"`
	CreatedAt      string `json:"created_at"`
}
