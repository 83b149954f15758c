package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tired-surtr/stretch-backend/internal/allocation"
	"github.com/tired-surtr/stretch-backend/internal/model"
	"github.com/tired-surtr/stretch-backend/internal/repository"
)

// BookingHandler exposes seat allocation and booking reads.  All
// correctness-critical work happens inside the coordinator; this layer
// only binds requests and maps the allocation error taxonomy onto HTTP
// statuses.
type BookingHandler struct {
	Coordinator *allocation.Coordinator
	Bookings    *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler.  The coordinator must
// be non-nil; the bookings repo is only needed by the read endpoints.
func NewBookingHandler(co *allocation.Coordinator, bookings *repository.BookingRepo) *BookingHandler {
	if co == nil {
		panic("nil coordinator passed to NewBookingHandler")
	}
	return &BookingHandler{Coordinator: co, Bookings: bookings}
}

type createBookingReq struct {
	SessionID  uint64 `json:"session_id"`
	SeatNumber uint32 `json:"seat_number"`
}

type bookingResp struct {
	ID         uint64  `json:"id"`
	SessionID  uint64  `json:"session_id"`
	SeatNumber uint32  `json:"seat_number"`
	Status     string  `json:"status"`
	UserID     *uint64 `json:"user_id,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func toBookingResp(b *model.Booking) bookingResp {
	return bookingResp{
		ID:         b.ID,
		SessionID:  b.SessionID,
		SeatNumber: b.SeatNumber,
		Status:     b.Status,
		UserID:     b.UserID,
		CreatedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /v1/bookings.  Exactly one of the concurrent
// requests for the same seat gets 201; the rest get 409 with the
// FAILED status body the frontend expects.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	// Identity is optional at this level: when the route runs without
	// the JWT middleware (anonymous booking enabled), there is simply
	// no user in the context.
	var userID *uint64
	if uid, err := getUserID(c); err == nil {
		userID = &uid
	}

	b, err := h.Coordinator.Allocate(c.Request().Context(), req.SessionID, req.SeatNumber, userID)
	if err != nil {
		switch {
		case errors.Is(err, allocation.ErrInvalidRequest):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_id and seat_number are required"})
		case errors.Is(err, allocation.ErrInvalidSeat):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat number"})
		case errors.Is(err, allocation.ErrUserRequired):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		case errors.Is(err, allocation.ErrSessionNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		case errors.Is(err, allocation.ErrSeatTaken):
			return c.JSON(http.StatusConflict, echo.Map{
				"status": "FAILED",
				"error":  "seat already booked",
			})
		}
		log.Printf("booking: allocate session=%d seat=%d failed: %v", req.SessionID, req.SeatNumber, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  model.BookingConfirmed,
		"booking": toBookingResp(b),
	})
}

// ListMine handles GET /v1/bookings: the authenticated user's bookings,
// newest first, each with an embedded session summary.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Bookings.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// ListBySession handles GET /v1/sessions/:id/bookings: the booked seat
// numbers of a session.  This is the stale-tolerant public read; the
// allocation path never uses it.
func (h *BookingHandler) ListBySession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	seats, err := h.Bookings.BookedSeats(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booked seats"})
	}
	return c.JSON(http.StatusOK, echo.Map{"session_id": id, "booked_seats": seats})
}
