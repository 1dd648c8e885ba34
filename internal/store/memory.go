package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campushq/seminar-registration/internal/model"
)

// MemStore keeps every table in process memory.  It exists for local
// development and for tests; the MySQL store is the production
// backing.  Each entity table is a map keyed by id, and id counters
// belong to the store instance rather than living as package globals,
// so independent MemStores never interfere.
//
// Locking: a single RWMutex guards the maps.  Seat claims
// additionally serialize on a per-seminar mutex so that the conflict
// check and insert of CreateRegistration form one critical section
// per seminar without blocking claims on unrelated seminars.
type MemStore struct {
	mu            sync.RWMutex
	colleges      map[int64]*model.College
	users         map[int64]*model.User
	halls         map[int64]*model.Hall
	seminars      map[int64]*model.Seminar
	registrations map[int64]*model.Registration

	seatIndex   map[seatRef]int64 // (seminar,row,col) -> registration id
	ticketIndex map[string]int64  // ticket id -> registration id
	slugIndex   map[string]int64  // slug -> seminar id

	nextID map[string]int64

	seatMu    sync.Mutex
	seatLocks map[int64]*sync.Mutex // per-seminar claim locks
}

type seatRef struct {
	seminarID int64
	row, col  int
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		colleges:      make(map[int64]*model.College),
		users:         make(map[int64]*model.User),
		halls:         make(map[int64]*model.Hall),
		seminars:      make(map[int64]*model.Seminar),
		registrations: make(map[int64]*model.Registration),
		seatIndex:     make(map[seatRef]int64),
		ticketIndex:   make(map[string]int64),
		slugIndex:     make(map[string]int64),
		nextID: map[string]int64{
			"colleges": 1, "users": 1, "halls": 1, "seminars": 1, "registrations": 1,
		},
		seatLocks: make(map[int64]*sync.Mutex),
	}
}

var _ Store = (*MemStore)(nil)

func (m *MemStore) assignID(table string) int64 {
	id := m.nextID[table]
	m.nextID[table] = id + 1
	return id
}

// seatLock returns the claim mutex for a seminar, creating it on
// first use.
func (m *MemStore) seatLock(seminarID int64) *sync.Mutex {
	m.seatMu.Lock()
	defer m.seatMu.Unlock()
	l, ok := m.seatLocks[seminarID]
	if !ok {
		l = &sync.Mutex{}
		m.seatLocks[seminarID] = l
	}
	return l
}

// --- Colleges ---

func (m *MemStore) CreateCollege(_ context.Context, c *model.College) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.assignID("colleges")
	c.CreatedAt = time.Now().UTC()
	cp := *c
	m.colleges[c.ID] = &cp
	return nil
}

func (m *MemStore) GetCollege(_ context.Context, id int64) (*model.College, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.colleges[id]
	if !ok {
		return nil, ErrCollegeNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MemStore) ListColleges(_ context.Context) ([]*model.College, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.College, 0, len(m.colleges))
	for _, c := range m.colleges {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Users ---

func (m *MemStore) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.CollegeID == u.CollegeID && existing.Username == u.Username {
			return ErrUsernameTaken
		}
	}
	u.ID = m.assignID("users")
	u.CreatedAt = time.Now().UTC()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MemStore) GetUserByUsername(_ context.Context, collegeID int64, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.CollegeID == collegeID && u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MemStore) ListUsersByCollege(_ context.Context, collegeID int64) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.User, 0)
	for _, u := range m.users {
		if u.CollegeID == collegeID {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Halls ---

func (m *MemStore) CreateHall(_ context.Context, h *model.Hall) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h.ID = m.assignID("halls")
	h.CreatedAt = time.Now().UTC()
	cp := *h
	cp.Rows = append([]model.HallRow(nil), h.Rows...)
	m.halls[h.ID] = &cp
	return nil
}

func (m *MemStore) GetHall(_ context.Context, id int64) (*model.Hall, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.halls[id]
	if !ok {
		return nil, ErrHallNotFound
	}
	cp := *h
	cp.Rows = append([]model.HallRow(nil), h.Rows...)
	return &cp, nil
}

func (m *MemStore) ListHallsByCollege(_ context.Context, collegeID int64) ([]*model.Hall, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Hall, 0)
	for _, h := range m.halls {
		if h.CollegeID == collegeID {
			cp := *h
			cp.Rows = append([]model.HallRow(nil), h.Rows...)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Seminars ---

func (m *MemStore) CreateSeminar(_ context.Context, s *model.Seminar) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.slugIndex[s.Slug]; taken {
		return ErrSlugTaken
	}
	s.ID = m.assignID("seminars")
	s.CreatedAt = time.Now().UTC()
	cp := *s
	if s.RowConfig != nil {
		cp.RowConfig = make(map[int]int, len(s.RowConfig))
		for k, v := range s.RowConfig {
			cp.RowConfig[k] = v
		}
	}
	m.seminars[s.ID] = &cp
	m.slugIndex[s.Slug] = s.ID
	return nil
}

func (m *MemStore) GetSeminar(_ context.Context, id int64) (*model.Seminar, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.seminars[id]
	if !ok {
		return nil, ErrSeminarNotFound
	}
	return copySeminar(s), nil
}

func (m *MemStore) GetSeminarBySlug(_ context.Context, slug string) (*model.Seminar, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, ErrSeminarNotFound
	}
	return copySeminar(m.seminars[id]), nil
}

func (m *MemStore) ListSeminarsByCollege(_ context.Context, collegeID int64) ([]*model.Seminar, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Seminar, 0)
	for _, s := range m.seminars {
		if s.CollegeID == collegeID {
			out = append(out, copySeminar(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func copySeminar(s *model.Seminar) *model.Seminar {
	cp := *s
	if s.RowConfig != nil {
		cp.RowConfig = make(map[int]int, len(s.RowConfig))
		for k, v := range s.RowConfig {
			cp.RowConfig[k] = v
		}
	}
	if s.HallID != nil {
		hid := *s.HallID
		cp.HallID = &hid
	}
	return &cp
}

// --- Registrations ---

// CreateRegistration claims the seat.  The per-seminar lock makes
// the check-then-insert a critical section: two concurrent claims on
// the same seat cannot interleave between the seat index lookup and
// the insert, so exactly one wins and the rest observe ErrSeatTaken.
func (m *MemStore) CreateRegistration(_ context.Context, r *model.Registration) error {
	lock := m.seatLock(r.SeminarID)
	lock.Lock()
	defer lock.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.seminars[r.SeminarID]; !exists {
		return ErrSeminarNotFound
	}
	ref := seatRef{seminarID: r.SeminarID, row: r.SeatRow, col: r.SeatCol}
	if _, taken := m.seatIndex[ref]; taken {
		return ErrSeatTaken
	}
	if _, taken := m.ticketIndex[r.TicketID]; taken {
		return ErrTicketTaken
	}
	r.ID = m.assignID("registrations")
	r.Attended = false
	r.CreatedAt = time.Now().UTC()
	cp := *r
	m.registrations[r.ID] = &cp
	m.seatIndex[ref] = r.ID
	m.ticketIndex[r.TicketID] = r.ID
	return nil
}

func (m *MemStore) GetRegistration(_ context.Context, id int64) (*model.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.registrations[id]
	if !ok {
		return nil, ErrRegistrationNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MemStore) ListRegistrations(_ context.Context, seminarID int64) ([]*model.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Registration, 0)
	for _, r := range m.registrations {
		if r.SeminarID == seminarID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ClaimTicket flips attended under the store lock, so concurrent
// claims on the same ticket see exactly one success.
func (m *MemStore) ClaimTicket(_ context.Context, ticketID string) (*model.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.ticketIndex[ticketID]
	if !ok {
		return nil, ErrTicketNotFound
	}
	r := m.registrations[id]
	if r.Attended {
		cp := *r
		return &cp, ErrTicketUsed
	}
	r.Attended = true
	cp := *r
	return &cp, nil
}

// --- Stats ---

func (m *MemStore) CollegeStats(_ context.Context, collegeID int64) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var st Stats
	seminarIDs := make(map[int64]bool)
	for _, s := range m.seminars {
		if s.CollegeID == collegeID {
			seminarIDs[s.ID] = true
			st.TotalSeminars++
		}
	}
	attended := 0
	for _, r := range m.registrations {
		if seminarIDs[r.SeminarID] {
			st.TotalRegistrations++
			if r.Attended {
				attended++
			}
		}
	}
	if st.TotalRegistrations > 0 {
		st.AvgAttendance = int(float64(attended)/float64(st.TotalRegistrations)*100 + 0.5)
	}
	return st, nil
}
