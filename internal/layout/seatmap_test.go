package layout

import (
	"testing"

	"github.com/campushq/seminar-registration/internal/model"
)

func gridLayout() Resolved {
	return Resolve(&model.Seminar{
		SeatingSource: model.SeatingGrid,
		RowConfig:     map[int]int{1: 3, 3: 2},
	}, nil)
}

func TestStateClassification(t *testing.T) {
	res := gridLayout()
	occ := NewOccupancy([]*model.Registration{
		{SeatRow: 1, SeatCol: 2, Attendee: model.Attendee{StudentName: "Asha"}},
	})

	if got := State(res, occ, 1, 2); got != StateOccupied {
		t.Fatalf("State(1,2) = %v, want OCCUPIED", got)
	}
	if got := State(res, occ, 1, 1); got != StateAvailable {
		t.Fatalf("State(1,1) = %v, want AVAILABLE", got)
	}
	if got := State(res, occ, 2, 1); got != StateOutOfBounds {
		t.Fatalf("State(2,1) = %v, want OUT_OF_BOUNDS for gap row", got)
	}
	if got := State(res, occ, 1, 4); got != StateOutOfBounds {
		t.Fatalf("State(1,4) = %v, want OUT_OF_BOUNDS", got)
	}
}

func TestOccupancyAt(t *testing.T) {
	reg := &model.Registration{SeatRow: 3, SeatCol: 1, Attendee: model.Attendee{StudentName: "Ravi"}}
	occ := NewOccupancy([]*model.Registration{reg})

	if got := occ.At(3, 1); got != reg {
		t.Fatalf("At(3,1) returned %v, want the registration", got)
	}
	if got := occ.At(3, 2); got != nil {
		t.Fatalf("At(3,2) = %v, want nil", got)
	}
}

func TestRenderEmitsGapRows(t *testing.T) {
	res := gridLayout()
	occ := NewOccupancy([]*model.Registration{
		{SeatRow: 1, SeatCol: 2, Attendee: model.Attendee{StudentName: "Asha"}},
	})

	rows := Render(res, occ)
	if len(rows) != 3 {
		t.Fatalf("rendered %d rows, want 3 (MaxRow)", len(rows))
	}

	if !rows[0].Configured || len(rows[0].Seats) != 3 {
		t.Fatalf("row 1: configured=%v seats=%d, want configured with 3 seats", rows[0].Configured, len(rows[0].Seats))
	}
	if rows[0].Label != "A" {
		t.Fatalf("row 1 label = %q, want A", rows[0].Label)
	}
	if rows[0].Seats[1].State != StateOccupied || rows[0].Seats[1].Occupant != "Asha" {
		t.Fatalf("seat A-2 should be occupied by Asha, got %+v", rows[0].Seats[1])
	}
	if rows[0].Seats[0].State != StateAvailable {
		t.Fatalf("seat A-1 should be available, got %v", rows[0].Seats[0].State)
	}

	if rows[1].Configured || len(rows[1].Seats) != 0 {
		t.Fatalf("row 2 should be an empty unconfigured gap, got %+v", rows[1])
	}

	if !rows[2].Configured || len(rows[2].Seats) != 2 {
		t.Fatalf("row 3: configured=%v seats=%d, want configured with 2 seats", rows[2].Configured, len(rows[2].Seats))
	}
	if rows[2].Seats[1].Label != "C-2" {
		t.Fatalf("last seat label = %q, want C-2", rows[2].Seats[1].Label)
	}
}
