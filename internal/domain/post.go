package domain

import "time"

// Post is a single life-log entry. ImageURL points at the stored image
// object; the raw image bytes never live in the database.
type Post struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	ImageURL  string
	ImageKey  string
	CreatedAt time.Time
}

// FeedPost is a post with its author embedded, as returned by feed reads.
type FeedPost struct {
	Post
	Author PublicUser
}
