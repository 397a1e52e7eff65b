package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/portfolio-api/internal/model"
)

// ProjectRepo reads and writes projects plus their skill/technology name
// lists and image rows.  Writes that touch multiple tables run inside a
// transaction so a failed insert never leaves a half-written project.
type ProjectRepo struct{ DB *sql.DB }

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{DB: db} }

// ListPublished returns published projects for the public gallery, newest
// first.  A non-empty technology narrows the gallery to projects tagged with
// that technology name (case-insensitive).
func (r *ProjectRepo) ListPublished(ctx context.Context, technology string) ([]model.Project, error) {
	query := `SELECT id, user_id, title, description, demo_url, github_url, category, status, created_at, updated_at
	          FROM projects WHERE status=?`
	args := []any{model.ProjectPublished}
	if technology != "" {
		query += ` AND id IN (SELECT project_id FROM project_technologies WHERE LOWER(name)=LOWER(?))`
		args = append(args, technology)
	}
	query += " ORDER BY created_at DESC"
	return r.list(ctx, query, args...)
}

// ListAll returns every project of the owner regardless of status, for the
// admin listing.
func (r *ProjectRepo) ListAll(ctx context.Context, userID uint64) ([]model.Project, error) {
	return r.list(ctx,
		`SELECT id, user_id, title, description, demo_url, github_url, category, status, created_at, updated_at
		 FROM projects WHERE user_id=? ORDER BY created_at DESC`, userID)
}

// GetByID fetches one project with its relations.
func (r *ProjectRepo) GetByID(ctx context.Context, id uint64) (model.Project, error) {
	var p model.Project
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, demo_url, github_url, category, status, created_at, updated_at
		 FROM projects WHERE id=? LIMIT 1`, id).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.DemoURL, &p.GitHubURL, &p.Category, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Project{}, ErrNotFound
	}
	if err != nil {
		return model.Project{}, err
	}
	if err := r.attachRelations(ctx, &p); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// Create inserts a project and its relations, returning the new id.
func (r *ProjectRepo) Create(ctx context.Context, p model.Project) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO projects (user_id, title, description, demo_url, github_url, category, status)
		 VALUES (?,?,?,?,?,?,?)`,
		p.UserID, p.Title, p.Description, p.DemoURL, p.GitHubURL, p.Category, p.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	p.ID = uint64(id)
	if err := writeRelations(ctx, tx, p); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return p.ID, nil
}

// Update overwrites a project and replaces its relations wholesale.  Returns
// ErrNotFound when the row does not belong to the user.
func (r *ProjectRepo) Update(ctx context.Context, p model.Project) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE projects SET title=?, description=?, demo_url=?, github_url=?, category=?, status=?, updated_at=NOW()
		 WHERE id=? AND user_id=?`,
		p.Title, p.Description, p.DemoURL, p.GitHubURL, p.Category, p.Status, p.ID, p.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "missing" from "unchanged": the row must at least exist.
		var one int
		if scanErr := tx.QueryRowContext(ctx, "SELECT 1 FROM projects WHERE id=? AND user_id=?", p.ID, p.UserID).Scan(&one); scanErr != nil {
			return ErrNotFound
		}
	}
	for _, tbl := range []string{"project_skills", "project_technologies", "project_images"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+tbl+" WHERE project_id=?", p.ID); err != nil {
			return err
		}
	}
	if err := writeRelations(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a project and (via FK cascade) its relations.
func (r *ProjectRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM projects WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepo) list(ctx context.Context, query string, args ...any) ([]model.Project, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.DemoURL, &p.GitHubURL, &p.Category, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.attachRelations(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *ProjectRepo) attachRelations(ctx context.Context, p *model.Project) error {
	var err error
	if p.Skills, err = r.names(ctx, "project_skills", p.ID); err != nil {
		return err
	}
	if p.Technologies, err = r.names(ctx, "project_technologies", p.ID); err != nil {
		return err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, project_id, url, caption, position FROM project_images WHERE project_id=? ORDER BY position", p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	p.Images = []model.ProjectImage{}
	for rows.Next() {
		var img model.ProjectImage
		if err := rows.Scan(&img.ID, &img.ProjectID, &img.URL, &img.Caption, &img.Position); err != nil {
			return err
		}
		p.Images = append(p.Images, img)
	}
	return rows.Err()
}

func (r *ProjectRepo) names(ctx context.Context, table string, projectID uint64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT name FROM "+table+" WHERE project_id=? ORDER BY name", projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func writeRelations(ctx context.Context, tx *sql.Tx, p model.Project) error {
	for _, s := range p.Skills {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO project_skills (project_id, name) VALUES (?,?)", p.ID, s); err != nil {
			return err
		}
	}
	for _, t := range p.Technologies {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO project_technologies (project_id, name) VALUES (?,?)", p.ID, t); err != nil {
			return err
		}
	}
	for i, img := range p.Images {
		pos := img.Position
		if pos == 0 {
			pos = i
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO project_images (project_id, url, caption, position) VALUES (?,?,?,?)",
			p.ID, img.URL, img.Caption, pos); err != nil {
			return err
		}
	}
	return nil
}
