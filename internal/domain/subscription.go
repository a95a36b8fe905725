package domain

import "time"

// PlanFeatures is the feature object stored as one JSON column on a plan.
// Unknown keys in stored JSON are ignored on decode; absent keys decode
// to their zero values.
type PlanFeatures struct {
	PriorityBooking bool `json:"priority_booking"`
	ConciergeAccess bool `json:"concierge_access"`
	GuestListAccess bool `json:"guest_list_access"`
	FreeEntries     int  `json:"free_entries"`
	GuestLimit      int  `json:"guest_limit"`
}

type SubscriptionPlan struct {
	ID           string
	Name         string
	Description  string
	PriceMonthly float64
	Features     PlanFeatures
	Active       bool
	CreatedAt    time.Time
}

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// UserSubscription links a user to a plan.
type UserSubscription struct {
	ID        string
	UserID    string
	PlanID    string
	Status    SubscriptionStatus
	StartedAt time.Time
	ExpiresAt time.Time
	CreatedAt time.Time
}
