// Package layout resolves a seminar's seating source into a
// normalized per-row seat-count map and answers seat-state queries
// against it.  Everything in this package is pure: resolution happens
// on every read of a seminar, so it must stay O(rows) and must never
// mutate the seminar or hall it was given.
package layout

import (
	"strconv"

	"github.com/campushq/seminar-registration/internal/model"
)

// MaxRows is the capacity ceiling of the row-label scheme.  Rows are
// labelled with a single uppercase letter, so layouts beyond row 26
// ("AA", "AB", ...) are not representable.
const MaxRows = 26

// RowLabel converts a 1-based row index to its letter label
// (1 → "A", 26 → "Z").  It returns "" for indices outside [1,26].
func RowLabel(row int) string {
	if row < 1 || row > MaxRows {
		return ""
	}
	return string(rune('A' + row - 1))
}

// RowIndex converts a single-letter row label back to its 1-based
// index ("A" → 1).  It returns 0 for anything that is not a single
// uppercase letter.  RowIndex(RowLabel(r)) == r for r in [1,26].
func RowIndex(label string) int {
	if len(label) != 1 || label[0] < 'A' || label[0] > 'Z' {
		return 0
	}
	return int(label[0]-'A') + 1
}

// SeatLabel renders the human readable name of a seat, row letter
// plus 1-based column, e.g. SeatLabel(1, 5) == "A-5".  The label is
// derived presentation state; conflict checks always use the
// (row, col) pair.
func SeatLabel(row, col int) string {
	return RowLabel(row) + "-" + strconv.Itoa(col)
}

// Resolved is the normalized form of a seminar's seating layout.
//
//  RowConfig  – 1-based row index → seat count for every configured row.
//  MaxRow     – highest configured row index (0 when empty).
//  MaxCols    – highest seat count across configured rows.  Only used
//               for rectangular-grid rendering; the authoritative
//               per-row bound is RowConfig[row].
//  TotalSeats – total bookable seats.
type Resolved struct {
	RowConfig  map[int]int `json:"row_config"`
	MaxRow     int         `json:"rows"`
	MaxCols    int         `json:"cols"`
	TotalSeats int         `json:"total_seats"`
}

// HallLookup fetches a hall by id.  Resolve treats any failure as a
// missing hall so that a dangling reference degrades to an empty
// layout instead of failing the seminar read.
type HallLookup func(hallID int64) (*model.Hall, error)

// Resolve converts a seminar's seating source into a Resolved layout.
// GRID seminars carry their row config inline; HALL seminars resolve
// the referenced hall's label→count rows at read time.
func Resolve(sem *model.Seminar, lookup HallLookup) Resolved {
	if sem.SeatingSource == model.SeatingHall && sem.HallID != nil {
		if lookup == nil {
			return emptyLayout()
		}
		hall, err := lookup(*sem.HallID)
		if err != nil || hall == nil {
			return emptyLayout()
		}
		return fromHall(hall)
	}
	return fromRowConfig(sem.RowConfig)
}

// fromRowConfig normalizes an inline row→seat-count mapping.
func fromRowConfig(rc map[int]int) Resolved {
	res := emptyLayout()
	for row, seats := range rc {
		if row < 1 || seats < 1 {
			continue
		}
		res.RowConfig[row] = seats
		if row > res.MaxRow {
			res.MaxRow = row
		}
		if seats > res.MaxCols {
			res.MaxCols = seats
		}
		res.TotalSeats += seats
	}
	return res
}

// fromHall converts a hall's label→count rows to row indices.  The
// hall's stored total is trusted when present; otherwise the total is
// recomputed from the rows.
func fromHall(h *model.Hall) Resolved {
	res := emptyLayout()
	sum := 0
	for _, r := range h.Rows {
		row := RowIndex(r.Label)
		if row == 0 || r.Seats < 1 {
			continue
		}
		res.RowConfig[row] = r.Seats
		if row > res.MaxRow {
			res.MaxRow = row
		}
		if r.Seats > res.MaxCols {
			res.MaxCols = r.Seats
		}
		sum += r.Seats
	}
	if h.TotalSeats > 0 {
		res.TotalSeats = h.TotalSeats
	} else {
		res.TotalSeats = sum
	}
	return res
}

func emptyLayout() Resolved {
	return Resolved{RowConfig: map[int]int{}}
}

// InBounds reports whether (row, col) names a real seat: the row must
// be configured and the column must fall within its seat count.
func (r Resolved) InBounds(row, col int) bool {
	seats, ok := r.RowConfig[row]
	return ok && col >= 1 && col <= seats
}
