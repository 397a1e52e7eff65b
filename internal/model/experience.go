package model

import "time"

// Experience models a row in the `experiences` table: one entry of the work
// experience timeline.  EndDate is nil while IsCurrent is true.
type Experience struct {
	ID          uint64     // experiences.id
	UserID      uint64     // experiences.user_id
	Title       string     // experiences.title
	Company     string     // experiences.company
	Location    string     // experiences.location
	Description string     // experiences.description
	StartDate   time.Time  // experiences.start_date
	EndDate     *time.Time // experiences.end_date (nullable)
	IsCurrent   bool       // experiences.is_current
	CreatedAt   time.Time  // experiences.created_at
	UpdatedAt   time.Time  // experiences.updated_at
}
