package models

import "time"

// Post is a blog entry. Username is the author's username, filled in by the
// join the post queries perform.
type Post struct {
	ID       int64
	Title    string
	Body     string
	Created  time.Time
	AuthorID int64
	Username string
}
