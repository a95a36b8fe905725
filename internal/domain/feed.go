package domain

import "time"

// Feed is a social feed post shown in the consumer app.
type Feed struct {
	ID        string
	Title     string
	Body      string
	ImageURL  string
	AuthorID  *string
	Active    bool
	CreatedAt time.Time
}
