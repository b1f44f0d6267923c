package model

import "time"

// Post is a single published entry. ID is an opaque string assigned by the
// backing store at creation and stable for the post's lifetime; its shape
// differs per backend (millisecond timestamp, ObjectID hex, row id) and
// callers must not parse it.
type Post struct {
	ID        string
	Title     string
	Content   string
	ImageURL  string
	VideoURL  string
	CreatedAt time.Time
}

// HasMedia reports whether either media slot is populated.
func (p Post) HasMedia() bool {
	return p.ImageURL != "" || p.VideoURL != ""
}
