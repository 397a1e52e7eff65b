package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/portfolio-api/internal/model"
	"github.com/iliyamo/portfolio-api/internal/utils"
)

// UserRepo reads and writes the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID plus the role actually stored.
// Email is normalized to lower case so the unique index doubles as a
// case-insensitive lookup key.
//
// An ADMIN insert is guarded against racing registrations: the row is only
// written while no ADMIN exists, so two concurrent first sign-ups cannot both
// own the portfolio.  The loser of the race is stored as USER, which is why
// the effective role is returned to the caller.
func (r *UserRepo) Create(ctx context.Context, email, password, name, role string, cost int) (uint64, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, "", err
	}
	if role == model.RoleAdmin {
		res, err := r.DB.ExecContext(ctx,
			`INSERT INTO users (email, password_hash, name, role, is_active)
			 SELECT ?,?,?,?,1 FROM DUAL
			 WHERE NOT EXISTS (SELECT 1 FROM users WHERE role=?)`,
			email, hash, name, role, model.RoleAdmin)
		if err != nil {
			if isDuplicateKey(err) {
				return 0, "", ErrEmailExists
			}
			return 0, "", err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			id, err := res.LastInsertId()
			if err != nil {
				return 0, "", err
			}
			return uint64(id), role, nil
		}
		role = model.RoleUser
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, name, role, is_active) VALUES (?,?,?,?,1)",
		email, hash, name, role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, "", ErrEmailExists
		}
		return 0, "", err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, "", err
	}
	return uint64(id), role, nil
}

// isDuplicateKey reports whether err is the MySQL duplicate-key error (1062).
func isDuplicateKey(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}

// Count returns the number of user rows.  The registration handler uses it
// to decide whether the first (admin) account is being created.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,name,role,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,name,role,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id))
}

// GetAdmin fetches the portfolio owner (single ADMIN account).  The public
// profile endpoint resolves the owner this way instead of hard-coding an id.
func (r *UserRepo) GetAdmin(ctx context.Context) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,name,role,is_active,created_at,updated_at FROM users WHERE role=? ORDER BY id LIMIT 1",
		model.RoleAdmin))
}

// UpdateProfileFields updates the mutable identity fields owned by the
// profile endpoint.
func (r *UserRepo) UpdateProfileFields(ctx context.Context, id uint64, name string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, updated_at=NOW() WHERE id=?", name, id)
	return err
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}
