package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/portfolio-api/internal/model"
)

// ExperienceRepo reads and writes the 'experiences' table.
type ExperienceRepo struct{ DB *sql.DB }

func NewExperienceRepo(db *sql.DB) *ExperienceRepo { return &ExperienceRepo{DB: db} }

// List returns the owner's experience entries, most recent first.
func (r *ExperienceRepo) List(ctx context.Context, userID uint64) ([]model.Experience, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, title, company, location, description, start_date, end_date, is_current, created_at, updated_at
		 FROM experiences WHERE user_id=? ORDER BY start_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Experience{}
	for rows.Next() {
		var e model.Experience
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Company, &e.Location, &e.Description,
			&e.StartDate, &e.EndDate, &e.IsCurrent, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByID fetches one experience entry.
func (r *ExperienceRepo) GetByID(ctx context.Context, id uint64) (model.Experience, error) {
	var e model.Experience
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, title, company, location, description, start_date, end_date, is_current, created_at, updated_at
		 FROM experiences WHERE id=? LIMIT 1`, id).
		Scan(&e.ID, &e.UserID, &e.Title, &e.Company, &e.Location, &e.Description,
			&e.StartDate, &e.EndDate, &e.IsCurrent, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Experience{}, ErrNotFound
	}
	return e, err
}

// Create inserts an experience entry and returns its id.
func (r *ExperienceRepo) Create(ctx context.Context, e model.Experience) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO experiences (user_id, title, company, location, description, start_date, end_date, is_current)
		 VALUES (?,?,?,?,?,?,?,?)`,
		e.UserID, e.Title, e.Company, e.Location, e.Description, e.StartDate, e.EndDate, e.IsCurrent)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update overwrites an experience entry owned by the user.
func (r *ExperienceRepo) Update(ctx context.Context, e model.Experience) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE experiences
		 SET title=?, company=?, location=?, description=?, start_date=?, end_date=?, is_current=?, updated_at=NOW()
		 WHERE id=? AND user_id=?`,
		e.Title, e.Company, e.Location, e.Description, e.StartDate, e.EndDate, e.IsCurrent, e.ID, e.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if scanErr := r.DB.QueryRowContext(ctx, "SELECT 1 FROM experiences WHERE id=? AND user_id=?", e.ID, e.UserID).Scan(&one); scanErr != nil {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes an experience entry owned by the user.
func (r *ExperienceRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM experiences WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
