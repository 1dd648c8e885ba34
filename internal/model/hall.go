package model

import "time"

// HallRow is one row of a hall layout: a single uppercase letter
// label (A–Z) and the number of seats in that row.
type HallRow struct {
	Label string `json:"label"` // row letter, "A".."Z"
	Seats int    `json:"seats"` // seat count in this row, > 0
}

// Hall is a reusable, college-owned seating layout that seminars can
// reference instead of defining an inline grid.  Halls are read-only
// after creation: editing one would silently invalidate the seat
// coordinates of registrations taken against seminars that reference
// it, so no update or delete operation exists.
//
// Fields:
//  ID         – primary key identifier.
//  CollegeID  – owning college.
//  Name       – display name, e.g. "Main Auditorium".
//  Rows       – ordered row layout, one entry per configured row.
//  TotalSeats – stored sum of Rows[i].Seats.
//  CreatedAt  – timestamp of creation.
type Hall struct {
	ID         int64     `json:"id"`          // halls.id
	CollegeID  int64     `json:"college_id"`  // halls.college_id
	Name       string    `json:"name"`        // halls.name
	Rows       []HallRow `json:"rows"`        // halls.rows (JSON column)
	TotalSeats int       `json:"total_seats"` // halls.total_seats
	CreatedAt  time.Time `json:"created_at"`  // halls.created_at
}
