package domain

import "time"

// MembershipTier is a loyalty level reached at a points threshold.
type MembershipTier struct {
	ID        string
	Name      string
	Threshold int
	Perks     string
	CreatedAt time.Time
}

// UserPoints is a user's current loyalty balance.
type UserPoints struct {
	UserID    string
	Balance   int
	UpdatedAt time.Time
}

// PointTransaction records one balance change; the sum of a user's
// deltas equals their balance.
type PointTransaction struct {
	ID        string
	UserID    string
	Delta     int
	Reason    string
	CreatedAt time.Time
}
