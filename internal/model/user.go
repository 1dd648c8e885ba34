package model

import "time"

// Staff roles recognised by the system.  Students never have
// accounts; seat registration is a public flow.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleGuard      = "guard"
)

// User represents a staff account scoped to a college.  Usernames
// are unique per college, not globally, so logins always carry the
// college id.  Passwords are stored as bcrypt hashes.
//
// Fields:
//  ID           – primary key identifier.
//  CollegeID    – college the account belongs to.
//  Username     – login name, unique within the college.
//  PasswordHash – bcrypt hash of the password.
//  Role         – one of superadmin, admin, guard.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           int64     `json:"id"`         // users.id
	CollegeID    int64     `json:"college_id"` // users.college_id
	Username     string    `json:"username"`   // users.username
	PasswordHash string    `json:"-"`          // users.password_hash (never serialized)
	Role         string    `json:"role"`       // users.role
	CreatedAt    time.Time `json:"created_at"` // users.created_at
}
