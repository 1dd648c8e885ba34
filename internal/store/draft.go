package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/campushq/seminar-registration/internal/model"
)

// DraftStore keeps reservation drafts — the attendee details a
// student submits before picking a seat — in Redis with a TTL.  The
// client carries only the opaque draft id between the details step
// and the seat step; an abandoned draft simply expires and leaves no
// partial record anywhere.
type DraftStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewDraftStore builds a draft store.  rdb may be nil when Redis is
// not configured; every method then reports ErrDraftsUnavailable.
func NewDraftStore(rdb *redis.Client, ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &DraftStore{rdb: rdb, ttl: ttl, prefix: "draft:"}
}

// ErrDraftsUnavailable is returned when no Redis backend is
// configured; clients fall back to sending attendee details inline.
var ErrDraftsUnavailable = errors.New("draft store unavailable")

type draftRecord struct {
	SeminarID int64          `json:"seminar_id"`
	Attendee  model.Attendee `json:"attendee"`
}

// Create stores the attendee details for one seminar and returns the
// draft id.
func (d *DraftStore) Create(ctx context.Context, seminarID int64, a model.Attendee) (string, error) {
	if d.rdb == nil {
		return "", ErrDraftsUnavailable
	}
	id := uuid.NewString()
	body, err := json.Marshal(draftRecord{SeminarID: seminarID, Attendee: a})
	if err != nil {
		return "", err
	}
	if err := d.rdb.Set(ctx, d.prefix+id, body, d.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads a draft's attendee details.  Expired and unknown ids
// both come back as ErrDraftNotFound.
func (d *DraftStore) Get(ctx context.Context, id string) (int64, model.Attendee, error) {
	if d.rdb == nil {
		return 0, model.Attendee{}, ErrDraftsUnavailable
	}
	body, err := d.rdb.Get(ctx, d.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, model.Attendee{}, ErrDraftNotFound
	}
	if err != nil {
		return 0, model.Attendee{}, err
	}
	var rec draftRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return 0, model.Attendee{}, err
	}
	return rec.SeminarID, rec.Attendee, nil
}

// Delete discards a consumed draft.  Missing keys are fine.
func (d *DraftStore) Delete(ctx context.Context, id string) {
	if d.rdb == nil {
		return
	}
	_ = d.rdb.Del(ctx, d.prefix+id).Err()
}
