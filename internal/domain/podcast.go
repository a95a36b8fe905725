package domain

import "time"

// Podcast is a YouTube-hosted episode surfaced in the consumer app.
type Podcast struct {
	ID          string
	Title       string
	Host        string
	YoutubeURL  string
	CoverURL    string
	Description string
	Published   bool
	CreatedAt   time.Time
}
