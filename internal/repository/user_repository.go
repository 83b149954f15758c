package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tired-surtr/stretch-backend/internal/model"
	"github.com/tired-surtr/stretch-backend/internal/utils"
)

// UserRepo manages persistence for application users.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a bcrypt-hashed password and returns its ID.
// A duplicate email is reported as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name *string, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)",
		name, email, hash, role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx,
		"SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(ctx,
		"SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id)
}

// EnsureRole sets the role of the user with the given email.  It is used
// by the seeding command to promote an existing account to ADMIN.
func (r *UserRepo) EnsureRole(ctx context.Context, email, role string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET role=? WHERE email=?", role, email)
	return err
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg interface{}) (model.User, error) {
	var u model.User
	var name sql.NullString
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return u, err
	}
	if name.Valid {
		n := name.String
		u.Name = &n
	}
	return u, nil
}
