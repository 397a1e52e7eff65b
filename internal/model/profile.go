package model

import "time"

// Profile holds the extended owner profile shown on the public site.  At most
// one row exists per user; PUT /v1/profile upserts it.
type Profile struct {
	ID        uint64    // profiles.id
	UserID    uint64    // profiles.user_id
	Bio       string    // profiles.bio
	Location  string    // profiles.location
	Website   string    // profiles.website
	Twitter   string    // profiles.twitter
	GitHub    string    // profiles.github
	LinkedIn  string    // profiles.linkedin
	ImageURL  string    // profiles.image_url
	Phone     string    // profiles.phone
	UpdatedAt time.Time // profiles.updated_at
}
