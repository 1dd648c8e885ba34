package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/campushq/seminar-registration/internal/model"
)

// MySQLStore implements Store on top of database/sql with the MySQL
// driver.  Layouts are stored as JSON columns (halls.rows and
// seminars.row_config); seat and ticket uniqueness are enforced by
// UNIQUE keys declared in schema.sql, which is what makes
// CreateRegistration atomic without any application-level locking:
// the losing insert of a race comes back as duplicate-key error 1062
// and is mapped to the matching sentinel.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore binds a store to an open database handle.
func NewMySQLStore(db *sql.DB) *MySQLStore { return &MySQLStore{db: db} }

var _ Store = (*MySQLStore)(nil)

// DB exposes the underlying handle for health checks.
func (s *MySQLStore) DB() *sql.DB { return s.db }

// dupKeyErr maps a MySQL duplicate-key error to the sentinel for the
// violated key, using the key name embedded in the driver message.
// Unknown duplicates fall through as-is.
func dupKeyErr(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != 1062 {
		return err
	}
	switch {
	case strings.Contains(me.Message, "uq_reg_seat"):
		return ErrSeatTaken
	case strings.Contains(me.Message, "uq_reg_ticket"):
		return ErrTicketTaken
	case strings.Contains(me.Message, "uq_seminar_slug"):
		return ErrSlugTaken
	case strings.Contains(me.Message, "uq_user_name"):
		return ErrUsernameTaken
	}
	return err
}

// --- Colleges ---

func (s *MySQLStore) CreateCollege(ctx context.Context, c *model.College) error {
	const q = `INSERT INTO colleges (name) VALUES (?)`
	res, err := s.db.ExecContext(ctx, q, c.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	const sel = `SELECT created_at FROM colleges WHERE id = ?`
	return s.db.QueryRowContext(ctx, sel, c.ID).Scan(&c.CreatedAt)
}

func (s *MySQLStore) GetCollege(ctx context.Context, id int64) (*model.College, error) {
	const q = `SELECT id, name, created_at FROM colleges WHERE id = ?`
	var c model.College
	err := s.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCollegeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MySQLStore) ListColleges(ctx context.Context) ([]*model.College, error) {
	const q = `SELECT id, name, created_at FROM colleges ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.College, 0)
	for rows.Next() {
		c := new(model.College)
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// --- Users ---

func (s *MySQLStore) CreateUser(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users (college_id, username, password_hash, role) VALUES (?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, u.CollegeID, u.Username, u.PasswordHash, u.Role)
	if err != nil {
		return dupKeyErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	const sel = `SELECT created_at FROM users WHERE id = ?`
	return s.db.QueryRowContext(ctx, sel, u.ID).Scan(&u.CreatedAt)
}

func (s *MySQLStore) GetUserByUsername(ctx context.Context, collegeID int64, username string) (*model.User, error) {
	const q = `SELECT id, college_id, username, password_hash, role, created_at
	           FROM users WHERE college_id = ? AND username = ?`
	var u model.User
	err := s.db.QueryRowContext(ctx, q, collegeID, username).
		Scan(&u.ID, &u.CollegeID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MySQLStore) ListUsersByCollege(ctx context.Context, collegeID int64) ([]*model.User, error) {
	const q = `SELECT id, college_id, username, password_hash, role, created_at
	           FROM users WHERE college_id = ? ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.User, 0)
	for rows.Next() {
		u := new(model.User)
		if err := rows.Scan(&u.ID, &u.CollegeID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// --- Halls ---

func (s *MySQLStore) CreateHall(ctx context.Context, h *model.Hall) error {
	rowsJSON, err := json.Marshal(h.Rows)
	if err != nil {
		return err
	}
	const q = `INSERT INTO halls (college_id, name, rows_json, total_seats) VALUES (?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, h.CollegeID, h.Name, rowsJSON, h.TotalSeats)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = id
	const sel = `SELECT created_at FROM halls WHERE id = ?`
	return s.db.QueryRowContext(ctx, sel, h.ID).Scan(&h.CreatedAt)
}

func (s *MySQLStore) GetHall(ctx context.Context, id int64) (*model.Hall, error) {
	const q = `SELECT id, college_id, name, rows_json, total_seats, created_at FROM halls WHERE id = ?`
	h, err := scanHall(s.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHallNotFound
	}
	return h, err
}

func (s *MySQLStore) ListHallsByCollege(ctx context.Context, collegeID int64) ([]*model.Hall, error) {
	const q = `SELECT id, college_id, name, rows_json, total_seats, created_at
	           FROM halls WHERE college_id = ? ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Hall, 0)
	for rows.Next() {
		h, err := scanHall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanHall(r rowScanner) (*model.Hall, error) {
	var h model.Hall
	var rowsJSON []byte
	if err := r.Scan(&h.ID, &h.CollegeID, &h.Name, &rowsJSON, &h.TotalSeats, &h.CreatedAt); err != nil {
		return nil, err
	}
	if len(rowsJSON) > 0 {
		if err := json.Unmarshal(rowsJSON, &h.Rows); err != nil {
			return nil, err
		}
	}
	return &h, nil
}

// --- Seminars ---

func (s *MySQLStore) CreateSeminar(ctx context.Context, sem *model.Seminar) error {
	var rowConfigJSON any
	if sem.RowConfig != nil {
		b, err := json.Marshal(sem.RowConfig)
		if err != nil {
			return err
		}
		rowConfigJSON = b
	}
	const q = `INSERT INTO seminars
	           (college_id, slug, title, description, date, time, venue, thumbnail, seating_source, row_config, hall_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		sem.CollegeID, sem.Slug, sem.Title, sem.Description, sem.Date, sem.Time,
		sem.Venue, sem.Thumbnail, sem.SeatingSource, rowConfigJSON, sem.HallID)
	if err != nil {
		return dupKeyErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	sem.ID = id
	const sel = `SELECT created_at FROM seminars WHERE id = ?`
	return s.db.QueryRowContext(ctx, sel, sem.ID).Scan(&sem.CreatedAt)
}

const seminarCols = `id, college_id, slug, title, description, date, time, venue,
                     thumbnail, seating_source, row_config, hall_id, created_at`

func (s *MySQLStore) GetSeminar(ctx context.Context, id int64) (*model.Seminar, error) {
	sem, err := scanSeminar(s.db.QueryRowContext(ctx, `SELECT `+seminarCols+` FROM seminars WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSeminarNotFound
	}
	return sem, err
}

func (s *MySQLStore) GetSeminarBySlug(ctx context.Context, slug string) (*model.Seminar, error) {
	sem, err := scanSeminar(s.db.QueryRowContext(ctx, `SELECT `+seminarCols+` FROM seminars WHERE slug = ?`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSeminarNotFound
	}
	return sem, err
}

func (s *MySQLStore) ListSeminarsByCollege(ctx context.Context, collegeID int64) ([]*model.Seminar, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+seminarCols+` FROM seminars WHERE college_id = ? ORDER BY id`, collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Seminar, 0)
	for rows.Next() {
		sem, err := scanSeminar(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sem)
	}
	return out, rows.Err()
}

func scanSeminar(r rowScanner) (*model.Seminar, error) {
	var sem model.Seminar
	var thumbnail sql.NullString
	var rowConfigJSON []byte
	var hallID sql.NullInt64
	if err := r.Scan(&sem.ID, &sem.CollegeID, &sem.Slug, &sem.Title, &sem.Description,
		&sem.Date, &sem.Time, &sem.Venue, &thumbnail, &sem.SeatingSource,
		&rowConfigJSON, &hallID, &sem.CreatedAt); err != nil {
		return nil, err
	}
	if thumbnail.Valid {
		sem.Thumbnail = thumbnail.String
	}
	if len(rowConfigJSON) > 0 {
		if err := json.Unmarshal(rowConfigJSON, &sem.RowConfig); err != nil {
			return nil, err
		}
	}
	if hallID.Valid {
		hid := hallID.Int64
		sem.HallID = &hid
	}
	return &sem, nil
}

// --- Registrations ---

// CreateRegistration inserts the claim in a single statement.  The
// UNIQUE key on (seminar_id, seat_row, seat_col) is the conflict
// check: there is no separate existence query to race against, so
// either this insert wins the seat or it fails with ErrSeatTaken and
// nothing is written.
func (s *MySQLStore) CreateRegistration(ctx context.Context, r *model.Registration) error {
	if _, err := s.GetSeminar(ctx, r.SeminarID); err != nil {
		return err
	}
	const q = `INSERT INTO registrations
	           (seminar_id, student_name, email, phone, college_name, course, semester,
	            seat_row, seat_col, seat_label, attended, ticket_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`
	res, err := s.db.ExecContext(ctx, q,
		r.SeminarID, r.StudentName, r.Email, r.Phone, r.CollegeName, r.Course, r.Semester,
		r.SeatRow, r.SeatCol, r.SeatLabel, r.TicketID)
	if err != nil {
		return dupKeyErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = id
	r.Attended = false
	const sel = `SELECT created_at FROM registrations WHERE id = ?`
	return s.db.QueryRowContext(ctx, sel, r.ID).Scan(&r.CreatedAt)
}

const registrationCols = `id, seminar_id, student_name, email, phone, college_name, course,
                          semester, seat_row, seat_col, seat_label, attended, ticket_id, created_at`

func (s *MySQLStore) GetRegistration(ctx context.Context, id int64) (*model.Registration, error) {
	reg, err := scanRegistration(s.db.QueryRowContext(ctx, `SELECT `+registrationCols+` FROM registrations WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRegistrationNotFound
	}
	return reg, err
}

func (s *MySQLStore) ListRegistrations(ctx context.Context, seminarID int64) ([]*model.Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+registrationCols+` FROM registrations WHERE seminar_id = ? ORDER BY id`, seminarID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func scanRegistration(r rowScanner) (*model.Registration, error) {
	var reg model.Registration
	if err := r.Scan(&reg.ID, &reg.SeminarID, &reg.StudentName, &reg.Email, &reg.Phone,
		&reg.CollegeName, &reg.Course, &reg.Semester, &reg.SeatRow, &reg.SeatCol,
		&reg.SeatLabel, &reg.Attended, &reg.TicketID, &reg.CreatedAt); err != nil {
		return nil, err
	}
	return &reg, nil
}

// ClaimTicket flips attended with a conditional UPDATE.  The
// WHERE attended = 0 clause makes the transition atomic at the
// database: of any number of concurrent claims exactly one UPDATE
// affects a row.  The follow-up SELECT distinguishes "already used"
// from "no such ticket".
func (s *MySQLStore) ClaimTicket(ctx context.Context, ticketID string) (*model.Registration, error) {
	const upd = `UPDATE registrations SET attended = 1 WHERE ticket_id = ? AND attended = 0`
	res, err := s.db.ExecContext(ctx, upd, ticketID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	reg, err := scanRegistration(s.db.QueryRowContext(ctx,
		`SELECT `+registrationCols+` FROM registrations WHERE ticket_id = ?`, ticketID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return reg, ErrTicketUsed
	}
	return reg, nil
}

// --- Stats ---

func (s *MySQLStore) CollegeStats(ctx context.Context, collegeID int64) (Stats, error) {
	var st Stats
	const q = `SELECT
	             (SELECT COUNT(*) FROM seminars WHERE college_id = ?),
	             COUNT(r.id),
	             COALESCE(SUM(r.attended), 0)
	           FROM registrations r
	           JOIN seminars s ON s.id = r.seminar_id
	           WHERE s.college_id = ?`
	var attended int
	if err := s.db.QueryRowContext(ctx, q, collegeID, collegeID).
		Scan(&st.TotalSeminars, &st.TotalRegistrations, &attended); err != nil {
		return Stats{}, err
	}
	if st.TotalRegistrations > 0 {
		st.AvgAttendance = int(float64(attended)/float64(st.TotalRegistrations)*100 + 0.5)
	}
	return st, nil
}
