package model

import "time"

// Seating sources.  Exactly one is active per seminar, fixed at
// creation time.
const (
	// SeatingGrid means the seminar owns an inline row→seat-count
	// mapping stored in RowConfig.
	SeatingGrid = "GRID"
	// SeatingHall means the layout is resolved at read time from the
	// referenced Hall.
	SeatingHall = "HALL"
)

// Seminar is a scheduled event with its own seating layout and
// registration set.  The slug is globally unique so public links can
// look a seminar up without knowing the college.
//
// Fields:
//  ID            – primary key identifier.
//  CollegeID     – owning college.
//  Slug          – URL-safe unique identifier.
//  Title         – seminar title.
//  Description   – long description.
//  Date, Time    – schedule, stored as display strings as entered by the admin.
//  Venue         – free-text venue name.
//  Thumbnail     – optional image URL.
//  SeatingSource – SeatingGrid or SeatingHall.
//  RowConfig     – inline row-index → seat-count mapping (GRID only).
//  HallID        – referenced hall (HALL only, nil otherwise).
//  CreatedAt     – timestamp of creation.
type Seminar struct {
	ID            int64       `json:"id"`                   // seminars.id
	CollegeID     int64       `json:"college_id"`           // seminars.college_id
	Slug          string      `json:"slug"`                 // seminars.slug (unique)
	Title         string      `json:"title"`                // seminars.title
	Description   string      `json:"description"`          // seminars.description
	Date          string      `json:"date"`                 // seminars.date
	Time          string      `json:"time"`                 // seminars.time
	Venue         string      `json:"venue"`                // seminars.venue
	Thumbnail     string      `json:"thumbnail,omitempty"`  // seminars.thumbnail
	SeatingSource string      `json:"seating_source"`       // seminars.seating_source
	RowConfig     map[int]int `json:"row_config,omitempty"` // seminars.row_config (JSON column)
	HallID        *int64      `json:"hall_id,omitempty"`    // seminars.hall_id (nullable)
	CreatedAt     time.Time   `json:"created_at"`           // seminars.created_at
}
