package domain

import "time"

// Category tags venues and events. Listed by explicit sort order, then name.
type Category struct {
	ID        string
	Name      string
	SortOrder int
	Active    bool
	CreatedAt time.Time
}
