package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/portfolio-api/internal/model"
)

// ProfileRepo reads and writes the 'profiles' table (one row per user).
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// GetByUserID fetches a user's profile row.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uint64) (model.Profile, error) {
	var p model.Profile
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, bio, location, website, twitter, github, linkedin, image_url, phone, updated_at
		 FROM profiles WHERE user_id=? LIMIT 1`, userID).
		Scan(&p.ID, &p.UserID, &p.Bio, &p.Location, &p.Website, &p.Twitter, &p.GitHub, &p.LinkedIn, &p.ImageURL, &p.Phone, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrNotFound
	}
	return p, err
}

// Upsert creates the profile row on first save and overwrites it afterwards.
func (r *ProfileRepo) Upsert(ctx context.Context, p model.Profile) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO profiles (user_id, bio, location, website, twitter, github, linkedin, image_url, phone)
		 VALUES (?,?,?,?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   bio=VALUES(bio), location=VALUES(location), website=VALUES(website),
		   twitter=VALUES(twitter), github=VALUES(github), linkedin=VALUES(linkedin),
		   image_url=VALUES(image_url), phone=VALUES(phone), updated_at=NOW()`,
		p.UserID, p.Bio, p.Location, p.Website, p.Twitter, p.GitHub, p.LinkedIn, p.ImageURL, p.Phone)
	return err
}

// Counts returns how many projects and experiences the user owns.  The
// profile endpoints include both so the site header can render its stats
// without extra round trips.
func (r *ProfileRepo) Counts(ctx context.Context, userID uint64) (projects, experiences int64, err error) {
	if err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM projects WHERE user_id=?", userID).Scan(&projects); err != nil {
		return 0, 0, err
	}
	if err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM experiences WHERE user_id=?", userID).Scan(&experiences); err != nil {
		return 0, 0, err
	}
	return projects, experiences, nil
}
