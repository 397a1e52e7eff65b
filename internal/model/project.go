package model

import "time"

// Project publication states.  Only PUBLISHED projects appear in the public
// gallery; the admin listing returns every status.
const (
	ProjectDraft     = "DRAFT"
	ProjectPublished = "PUBLISHED"
	ProjectArchived  = "ARCHIVED"
)

// Project models a row in the `projects` table.  Skills and technologies are
// stored as simple name lists in join tables keyed by project id; images are
// ordered rows referencing an externally hosted URL.
type Project struct {
	ID           uint64         // projects.id
	UserID       uint64         // projects.user_id
	Title        string         // projects.title
	Description  string         // projects.description
	DemoURL      string         // projects.demo_url
	GitHubURL    string         // projects.github_url
	Category     string         // projects.category (e.g. FULLSTACK)
	Status       string         // projects.status
	Skills       []string       // project_skills.name, joined
	Technologies []string       // project_technologies.name, joined
	Images       []ProjectImage // project_images rows, ordered
	CreatedAt    time.Time      // projects.created_at
	UpdatedAt    time.Time      // projects.updated_at
}

// ProjectImage is one gallery image of a project.  The URL points at the
// external media host; this service never stores or transforms image bytes.
type ProjectImage struct {
	ID        uint64 // project_images.id
	ProjectID uint64 // project_images.project_id
	URL       string // project_images.url
	Caption   string // project_images.caption
	Position  int    // project_images.position
}
