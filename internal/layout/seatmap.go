package layout

import (
	"strconv"

	"github.com/campushq/seminar-registration/internal/model"
)

// SeatState classifies one coordinate of a resolved layout.
type SeatState string

const (
	StateAvailable   SeatState = "AVAILABLE"
	StateOccupied    SeatState = "OCCUPIED"
	StateOutOfBounds SeatState = "OUT_OF_BOUNDS"
)

// Occupancy indexes a seminar's registrations by "row-col" composite
// key for O(1) membership checks and for surfacing the occupying
// attendee in read-only displays.  It is rebuilt from scratch on
// every fresh fetch of registrations; there is no live-push channel
// that would keep an incremental index honest.
type Occupancy map[string]*model.Registration

// NewOccupancy builds the seat index for one seminar's registrations.
func NewOccupancy(regs []*model.Registration) Occupancy {
	occ := make(Occupancy, len(regs))
	for _, r := range regs {
		occ[seatKey(r.SeatRow, r.SeatCol)] = r
	}
	return occ
}

// At returns the registration occupying (row, col), or nil.
func (o Occupancy) At(row, col int) *model.Registration {
	return o[seatKey(row, col)]
}

func seatKey(row, col int) string {
	return strconv.Itoa(row) + "-" + strconv.Itoa(col)
}

// State answers the seat-state query for one coordinate.  A client's
// tentative selection is presentation state only and never reaches
// this check; only committed registrations count as claims.
func State(res Resolved, occ Occupancy, row, col int) SeatState {
	if !res.InBounds(row, col) {
		return StateOutOfBounds
	}
	if occ.At(row, col) != nil {
		return StateOccupied
	}
	return StateAvailable
}

// RenderedSeat is one cell of the rendered seat map.
type RenderedSeat struct {
	Col      int       `json:"col"`
	Label    string    `json:"label"`
	State    SeatState `json:"state"`
	Occupant string    `json:"occupant,omitempty"` // attendee name when occupied
}

// RenderedRow is one row of the rendered seat map.  Rows between 1
// and MaxRow that have no configuration are emitted with
// Configured=false and zero seats so grid clients can keep their
// rectangular rendering.
type RenderedRow struct {
	Row        int            `json:"row"`
	Label      string         `json:"label"`
	Configured bool           `json:"configured"`
	Seats      []RenderedSeat `json:"seats"`
}

// Render materializes the full seat map for display.  The result has
// exactly res.MaxRow rows; per-row seat counts follow RowConfig, not
// MaxCols.
func Render(res Resolved, occ Occupancy) []RenderedRow {
	rows := make([]RenderedRow, 0, res.MaxRow)
	for row := 1; row <= res.MaxRow; row++ {
		seats, ok := res.RowConfig[row]
		rr := RenderedRow{Row: row, Label: RowLabel(row), Configured: ok}
		for col := 1; col <= seats; col++ {
			seat := RenderedSeat{Col: col, Label: SeatLabel(row, col), State: StateAvailable}
			if reg := occ.At(row, col); reg != nil {
				seat.State = StateOccupied
				seat.Occupant = reg.StudentName
			}
			rr.Seats = append(rr.Seats, seat)
		}
		rows = append(rows, rr)
	}
	return rows
}
