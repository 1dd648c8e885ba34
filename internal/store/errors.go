// Package store defines the persistence contract for the seminar
// registration domain and its sentinel error values.  Two
// interchangeable implementations exist: an in-memory store and a
// MySQL-backed store, selected at process startup.  Higher layers
// depend only on the Store interface and use errors.Is against the
// sentinels below to translate failures into HTTP responses.
package store

import "errors"

// ErrCollegeNotFound is returned when a college lookup fails.
var ErrCollegeNotFound = errors.New("college not found")

// ErrUserNotFound is returned when a user lookup fails.
var ErrUserNotFound = errors.New("user not found")

// ErrHallNotFound is returned when a hall lookup fails.  Layout
// resolution deliberately swallows this: a seminar referencing a
// missing hall resolves to an empty layout instead of erroring.
var ErrHallNotFound = errors.New("hall not found")

// ErrSeminarNotFound is returned when a seminar lookup fails.
var ErrSeminarNotFound = errors.New("seminar not found")

// ErrRegistrationNotFound is returned when a registration lookup by
// id fails.
var ErrRegistrationNotFound = errors.New("registration not found")

// ErrSlugTaken is returned when creating a seminar whose slug is
// already in use.  Slugs are unique across all colleges.
var ErrSlugTaken = errors.New("slug already taken")

// ErrUsernameTaken is returned when creating a user whose username
// already exists within the same college.
var ErrUsernameTaken = errors.New("username already taken")

// ErrSeatTaken is returned when a registration insert loses the race
// for a seat.  The conflict check and the insert are one atomic unit
// inside each store implementation, so exactly one concurrent claim
// of a seat can ever succeed.  Handlers translate this into HTTP 409.
var ErrSeatTaken = errors.New("seat already taken")

// ErrTicketTaken is returned when a registration insert collides on
// the globally unique ticket id.  Callers regenerate the ticket and
// retry; the seat itself has not been claimed.
var ErrTicketTaken = errors.New("ticket id already taken")

// ErrTicketNotFound is returned by ClaimTicket for an unknown ticket
// id.  This is an expected operational event (guards scan bad codes),
// not a system error.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrTicketUsed is returned by ClaimTicket when the ticket's
// registration is already marked attended.  The registration is
// still returned so the gate can display who entered.
var ErrTicketUsed = errors.New("ticket already used")

// ErrDraftNotFound is returned when a reservation draft has expired
// or never existed.
var ErrDraftNotFound = errors.New("draft not found")
