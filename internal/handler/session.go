package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tired-surtr/stretch-backend/internal/model"
	"github.com/tired-surtr/stretch-backend/internal/repository"
)

// SessionHandler serves the session catalog: public listing and detail,
// plus admin-only creation.  Sessions are immutable once created.
type SessionHandler struct {
	Sessions *repository.SessionRepo
	Bookings *repository.BookingRepo
}

// NewSessionHandler constructs a SessionHandler; all dependencies must
// be non-nil.
func NewSessionHandler(sessions *repository.SessionRepo, bookings *repository.BookingRepo) *SessionHandler {
	if sessions == nil || bookings == nil {
		panic("nil repository passed to NewSessionHandler")
	}
	return &SessionHandler{Sessions: sessions, Bookings: bookings}
}

type sessionResp struct {
	ID              uint64  `json:"id"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	SessionDate     string  `json:"session_date"`
	StartTime       string  `json:"start_time"`
	DurationMinutes uint32  `json:"duration_minutes"`
	Capacity        uint32  `json:"capacity"`
	CreatedAt       string  `json:"created_at"`
}

func toSessionResp(s *model.Session) sessionResp {
	return sessionResp{
		ID:              s.ID,
		Title:           s.Title,
		Description:     s.Description,
		SessionDate:     s.SessionDate,
		StartTime:       s.StartTime,
		DurationMinutes: s.DurationMinutes,
		Capacity:        s.Capacity,
		CreatedAt:       s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /v1/sessions.  Sessions come back ordered by date
// and start time.  The route sits behind the Redis response cache, so
// the listing may lag a just-created session by the cache TTL.
func (h *SessionHandler) List(c echo.Context) error {
	sessions, err := h.Sessions.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch sessions"})
	}
	items := make([]sessionResp, 0, len(sessions))
	for i := range sessions {
		items = append(items, toSessionResp(&sessions[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/sessions/:id.  The response embeds the booked
// seat numbers so a client can render the seat map in one round trip.
// The list is a read outside any transaction: it can be stale and is
// never consulted when deciding an allocation.
func (h *SessionHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	ctx := c.Request().Context()
	s, err := h.Sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch session"})
	}
	seats, err := h.Bookings.BookedSeats(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booked seats"})
	}
	resp := struct {
		sessionResp
		BookedSeats []uint32 `json:"booked_seats"`
	}{toSessionResp(s), seats}
	return c.JSON(http.StatusOK, resp)
}

type createSessionReq struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	SessionDate     string  `json:"session_date"`
	StartTime       string  `json:"start_time"`
	DurationMinutes uint32  `json:"duration_minutes"`
	Capacity        uint32  `json:"capacity"`
}

// Create handles POST /v1/sessions (ADMIN only, enforced by route
// middleware).  Duration defaults to 60 minutes when omitted.
func (h *SessionHandler) Create(c echo.Context) error {
	var req createSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" || req.SessionDate == "" || req.StartTime == "" || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "title, session_date, start_time and capacity are required",
		})
	}
	s := &model.Session{
		Title:           req.Title,
		Description:     req.Description,
		SessionDate:     req.SessionDate,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
	}
	if err := h.Sessions.Create(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create session"})
	}
	return c.JSON(http.StatusCreated, toSessionResp(s))
}
