package model

import "time"

// College represents a tenant institution.  Every user, hall and
// seminar belongs to exactly one college.  Registering a college
// also creates its first superadmin user.  This struct corresponds
// to a row in the `colleges` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the college.
//  CreatedAt – timestamp when the college was registered.
type College struct {
	ID        int64     `json:"id"`         // colleges.id
	Name      string    `json:"name"`       // colleges.name
	CreatedAt time.Time `json:"created_at"` // colleges.created_at
}
