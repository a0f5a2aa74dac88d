package model

import (
	"strings"
	"time"
)

// Kind discriminates posts from comments.
type Kind string

const (
	KindPost    Kind = "post"
	KindComment Kind = "comment"
)

// Item is one post or comment collected for a user. Comments have no Title.
// A zero CreatedAt means the source did not expose a timestamp.
type Item struct {
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text"`
	Subreddit string    `json:"subreddit"`
	Upvotes   int       `json:"upvotes"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"url"`
	Kind      Kind      `json:"type"`
}

// Content is the lower-cased title and body joined by a space.
func (it Item) Content() string {
	return strings.ToLower(it.Title + " " + it.Text)
}

// Body is the lower-cased body text only.
func (it Item) Body() string {
	return strings.ToLower(it.Text)
}

// HasTimestamp reports whether CreatedAt was populated by the source.
func (it Item) HasTimestamp() bool {
	return !it.CreatedAt.IsZero()
}
