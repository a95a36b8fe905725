package domain

import "time"

// Event is a bookable happening hosted at a club (zone-based pricing).
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	ClubID      *string
	CoverURL    string
	Featured    bool
	CreatedAt   time.Time
}
