package domain

import "time"

type VenueKind string

const (
	VenueClub   VenueKind = "club"
	VenueBeach  VenueKind = "beach"
	VenuePub    VenueKind = "pub"
	VenueArcade VenueKind = "arcade"
)

// KnownVenueKind reports whether k is one of the supported venue kinds.
func KnownVenueKind(k VenueKind) bool {
	switch k {
	case VenueClub, VenueBeach, VenuePub, VenueArcade:
		return true
	}
	return false
}

// Venue is a physical place on the platform. Clubs, beaches, pubs and
// arcades share one shape and differ only by Kind.
type Venue struct {
	ID          string
	Kind        VenueKind
	Name        string
	City        string
	Address     string
	Description string
	LogoURL     string
	CategoryID  *string
	Active      bool
	Featured    bool
	CreatedAt   time.Time
}
