package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campushq/seminar-registration/internal/model"
	"github.com/campushq/seminar-registration/internal/service"
	"github.com/campushq/seminar-registration/internal/store"
)

func newReserveFixture(t *testing.T) (*ReservationHandler, *model.Seminar) {
	t.Helper()
	m := store.NewMemStore()
	sem := &model.Seminar{
		CollegeID:     1,
		Slug:          "ai-future-tech",
		Title:         "AI Future",
		SeatingSource: model.SeatingGrid,
		RowConfig:     map[int]int{1: 10, 2: 10},
	}
	if err := m.CreateSeminar(context.Background(), sem); err != nil {
		t.Fatalf("CreateSeminar: %v", err)
	}
	return NewReservationHandler(service.NewReservationService(m, nil, nil, nil)), sem
}

func postReserve(t *testing.T, h *ReservationHandler, seminarID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/seminars/"+seminarID+"/registrations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/seminars/:id/registrations")
	c.SetParamNames("id")
	c.SetParamValues(seminarID)
	if err := h.Reserve(c); err != nil {
		t.Fatalf("Reserve handler returned error: %v", err)
	}
	return rec
}

const validBody = `{"seat_row":1,"seat_col":5,"attendee":{"student_name":"Asha","email":"asha@example.com","phone":"555-0101"}}`

func TestReserveHandlerCreated(t *testing.T) {
	h, _ := newReserveFixture(t)

	rec := postReserve(t, h, "1", validBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Registration model.Registration `json:"registration"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Registration.SeatLabel != "A-5" {
		t.Fatalf("seat label = %q, want A-5", resp.Registration.SeatLabel)
	}
	if len(resp.Registration.TicketID) != 8 {
		t.Fatalf("ticket id %q should be 8 characters", resp.Registration.TicketID)
	}
}

func TestReserveHandlerConflict(t *testing.T) {
	h, _ := newReserveFixture(t)

	if rec := postReserve(t, h, "1", validBody); rec.Code != http.StatusCreated {
		t.Fatalf("setup claim failed with status %d", rec.Code)
	}
	rec := postReserve(t, h, "1", validBody)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Seat already taken") {
		t.Fatalf("conflict body = %s", rec.Body.String())
	}
}

func TestReserveHandlerOutOfBounds(t *testing.T) {
	h, _ := newReserveFixture(t)

	body := `{"seat_row":5,"seat_col":1,"attendee":{"student_name":"Asha","email":"a@b.c","phone":"1"}}`
	rec := postReserve(t, h, "1", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReserveHandlerUnknownSeminar(t *testing.T) {
	h, _ := newReserveFixture(t)

	rec := postReserve(t, h, "42", validBody)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestReserveHandlerBadID(t *testing.T) {
	h, _ := newReserveFixture(t)

	rec := postReserve(t, h, "abc", validBody)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
