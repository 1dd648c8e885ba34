package store

import (
	"context"

	"github.com/campushq/seminar-registration/internal/model"
)

// Stats aggregates registration activity for one college's
// dashboard.
type Stats struct {
	TotalSeminars      int `json:"total_seminars"`
	TotalRegistrations int `json:"total_registrations"`
	// AvgAttendance is the attended percentage across all
	// registrations, rounded to the nearest whole percent.
	AvgAttendance int `json:"avg_attendance"`
}

// Store is the persistence contract shared by the in-memory and
// MySQL implementations.  All methods may block on the backing store
// and honour context cancellation.  Create methods assign the
// entity's ID (and CreatedAt) on the passed struct.
//
// The one hard correctness requirement lives in CreateRegistration:
// the seat conflict check and the insert must be a single atomic
// unit per seminar.  A plain read-then-write sequence is not an
// acceptable implementation.
type Store interface {
	// Colleges
	CreateCollege(ctx context.Context, c *model.College) error
	GetCollege(ctx context.Context, id int64) (*model.College, error)
	ListColleges(ctx context.Context) ([]*model.College, error)

	// Users
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByUsername(ctx context.Context, collegeID int64, username string) (*model.User, error)
	ListUsersByCollege(ctx context.Context, collegeID int64) ([]*model.User, error)

	// Halls (immutable once created; no update or delete)
	CreateHall(ctx context.Context, h *model.Hall) error
	GetHall(ctx context.Context, id int64) (*model.Hall, error)
	ListHallsByCollege(ctx context.Context, collegeID int64) ([]*model.Hall, error)

	// Seminars
	CreateSeminar(ctx context.Context, s *model.Seminar) error
	GetSeminar(ctx context.Context, id int64) (*model.Seminar, error)
	GetSeminarBySlug(ctx context.Context, slug string) (*model.Seminar, error)
	ListSeminarsByCollege(ctx context.Context, collegeID int64) ([]*model.Seminar, error)

	// Registrations
	//
	// CreateRegistration atomically claims (SeminarID, SeatRow,
	// SeatCol).  It returns ErrSeatTaken when the seat is already
	// registered and ErrTicketTaken when the pre-generated ticket id
	// collides globally (caller regenerates and retries).  Either a
	// complete registration exists afterwards or none does.
	CreateRegistration(ctx context.Context, r *model.Registration) error
	GetRegistration(ctx context.Context, id int64) (*model.Registration, error)
	ListRegistrations(ctx context.Context, seminarID int64) ([]*model.Registration, error)

	// ClaimTicket performs the one-time unattended→attended
	// transition for the registration owning ticketID.  Exactly one
	// concurrent call can observe a nil error; later calls get
	// ErrTicketUsed together with the registration, and unknown ids
	// get ErrTicketNotFound.  The flip is never reversed.
	ClaimTicket(ctx context.Context, ticketID string) (*model.Registration, error)

	// Stats
	CollegeStats(ctx context.Context, collegeID int64) (Stats, error)
}
