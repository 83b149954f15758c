package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tired-surtr/stretch-backend/internal/allocation"
	"github.com/tired-surtr/stretch-backend/internal/model"
)

// memLedger is a minimal in-memory allocation.Ledger for exercising the
// HTTP status mapping without a database.
type memLedger struct {
	mu       sync.Mutex
	sessions map[uint64]model.Session
	occupied map[uint64]map[uint32]struct{}
	nextID   uint64
}

func newMemLedger(sessions ...model.Session) *memLedger {
	l := &memLedger{
		sessions: make(map[uint64]model.Session),
		occupied: make(map[uint64]map[uint32]struct{}),
	}
	for _, s := range sessions {
		l.sessions[s.ID] = s
		l.occupied[s.ID] = make(map[uint32]struct{})
	}
	return l
}

func (l *memLedger) Begin(ctx context.Context) (allocation.Tx, error) {
	l.mu.Lock()
	return &memTx{l: l}, nil
}

type memTx struct {
	l       *memLedger
	done    bool
	pending *model.Booking
}

func (t *memTx) LockSession(ctx context.Context, sessionID uint64) (*model.Session, error) {
	s, ok := t.l.sessions[sessionID]
	if !ok {
		return nil, allocation.ErrSessionNotFound
	}
	cp := s
	return &cp, nil
}

func (t *memTx) LockOccupancy(ctx context.Context, sessionID uint64) (map[uint32]struct{}, error) {
	out := make(map[uint32]struct{}, len(t.l.occupied[sessionID]))
	for s := range t.l.occupied[sessionID] {
		out[s] = struct{}{}
	}
	return out, nil
}

func (t *memTx) InsertBooking(ctx context.Context, b *model.Booking) error {
	if _, taken := t.l.occupied[b.SessionID][b.SeatNumber]; taken {
		return allocation.ErrDuplicateSeat
	}
	t.l.nextID++
	b.ID = t.l.nextID
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	t.pending = b
	return nil
}

func (t *memTx) Commit() error {
	if !t.done {
		if t.pending != nil {
			t.l.occupied[t.pending.SessionID][t.pending.SeatNumber] = struct{}{}
		}
		t.done = true
		t.l.mu.Unlock()
	}
	return nil
}

func (t *memTx) Rollback() error {
	if !t.done {
		t.done = true
		t.l.mu.Unlock()
	}
	return nil
}

func newBookingTestHandler(requireUser bool) *BookingHandler {
	ledger := newMemLedger(model.Session{
		ID:          1,
		Title:       "Evening Flow",
		SessionDate: "2025-11-05",
		StartTime:   "18:30:00",
		Capacity:    4,
	})
	co := allocation.NewCoordinator(ledger, requireUser, nil)
	return &BookingHandler{Coordinator: co}
}

func postBooking(h *BookingHandler, body string, userID interface{}) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	_ = h.Create(c)
	return rec
}

func TestBookingCreateSuccess(t *testing.T) {
	h := newBookingTestHandler(false)
	rec := postBooking(h, `{"session_id":1,"seat_number":2}`, uint64(9))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status  string `json:"status"`
		Booking struct {
			ID         uint64  `json:"id"`
			SessionID  uint64  `json:"session_id"`
			SeatNumber uint32  `json:"seat_number"`
			UserID     *uint64 `json:"user_id"`
		} `json:"booking"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != model.BookingConfirmed {
		t.Fatalf("status = %q, want CONFIRMED", resp.Status)
	}
	if resp.Booking.SessionID != 1 || resp.Booking.SeatNumber != 2 || resp.Booking.ID == 0 {
		t.Fatalf("booking = %+v", resp.Booking)
	}
	if resp.Booking.UserID == nil || *resp.Booking.UserID != 9 {
		t.Fatalf("user_id = %v, want 9", resp.Booking.UserID)
	}
}

func TestBookingCreateConflict(t *testing.T) {
	h := newBookingTestHandler(false)
	if rec := postBooking(h, `{"session_id":1,"seat_number":1}`, nil); rec.Code != http.StatusCreated {
		t.Fatalf("setup booking: status %d", rec.Code)
	}

	rec := postBooking(h, `{"session_id":1,"seat_number":1}`, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "FAILED" {
		t.Fatalf(`body status = %q, want "FAILED"`, resp["status"])
	}
}

func TestBookingCreateErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		userID   interface{}
		wantCode int
	}{
		{"missing fields", `{}`, nil, http.StatusBadRequest},
		{"malformed body", `{"session_id":`, nil, http.StatusBadRequest},
		{"seat beyond capacity", `{"session_id":1,"seat_number":5}`, nil, http.StatusBadRequest},
		{"unknown session", `{"session_id":77,"seat_number":1}`, nil, http.StatusNotFound},
	}
	h := newBookingTestHandler(false)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postBooking(h, tc.body, tc.userID)
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tc.wantCode, rec.Body.String())
			}
		})
	}
}

func TestBookingCreateRequiresUser(t *testing.T) {
	h := newBookingTestHandler(true)

	rec := postBooking(h, `{"session_id":1,"seat_number":1}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", rec.Code)
	}

	rec = postBooking(h, `{"session_id":1,"seat_number":1}`, uint64(4))
	if rec.Code != http.StatusCreated {
		t.Fatalf("identified status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
}

func TestBookingListBySessionRejectsBadID(t *testing.T) {
	h := newBookingTestHandler(false)
	e := echo.New()
	for _, id := range []string{"abc", "0", "-3"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/sessions/"+id+"/bookings", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)
		_ = h.ListBySession(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("id %q: status = %d, want 400", id, rec.Code)
		}
	}
}
