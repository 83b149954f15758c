package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tired-surtr/stretch-backend/internal/model"
)

// SessionRepo manages persistence for the session catalog.  Sessions are
// immutable after creation, so the repository exposes only insert and
// read operations.  Date and time columns are scanned as the DB-native
// strings ("YYYY-MM-DD", "HH:MM:SS").
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo constructs a SessionRepo with the given DB handle.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create inserts a new session and assigns the generated ID back to the
// struct.  The caller must supply title, session date, start time and
// capacity; duration defaults to 60 minutes when zero.  The row is read
// back to populate DB defaults.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	if s.DurationMinutes == 0 {
		s.DurationMinutes = 60
	}
	const q = `INSERT INTO sessions (title, description, session_date, start_time, duration_minutes, capacity)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Title, s.Description, s.SessionDate, s.StartTime, s.DurationMinutes, s.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	const sel = `SELECT id, title, description, session_date, start_time, duration_minutes, capacity, created_at
	             FROM sessions WHERE id = ?`
	var desc sql.NullString
	if err := r.db.QueryRowContext(ctx, sel, s.ID).Scan(
		&s.ID, &s.Title, &desc, &s.SessionDate, &s.StartTime, &s.DurationMinutes, &s.Capacity, &s.CreatedAt,
	); err != nil {
		return err
	}
	if desc.Valid {
		d := desc.String
		s.Description = &d
	}
	return nil
}

// List returns all sessions ordered by date then start time.  When no
// sessions exist an empty slice is returned.
func (r *SessionRepo) List(ctx context.Context) ([]model.Session, error) {
	const q = `SELECT id, title, description, session_date, start_time, duration_minutes, capacity, created_at
	           FROM sessions
	           ORDER BY session_date, start_time`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]model.Session, 0)
	for rows.Next() {
		var s model.Session
		var desc sql.NullString
		if err := rows.Scan(&s.ID, &s.Title, &desc, &s.SessionDate, &s.StartTime, &s.DurationMinutes, &s.Capacity, &s.CreatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			d := desc.String
			s.Description = &d
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetByID retrieves a session by its ID.  It returns ErrSessionNotFound
// when there is no matching row.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	const q = `SELECT id, title, description, session_date, start_time, duration_minutes, capacity, created_at
	           FROM sessions WHERE id = ?`
	var s model.Session
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.Title, &desc, &s.SessionDate, &s.StartTime, &s.DurationMinutes, &s.Capacity, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		s.Description = &d
	}
	return &s, nil
}
