package domain

import "time"

// Profile is a platform user account as seen by admins.
type Profile struct {
	ID        string
	FullName  string
	Email     string
	Phone     string
	Role      string
	Active    bool
	CreatedAt time.Time
}
