package domain

import "time"

type ConciergeStatus string

const (
	ConciergeStatusOpen       ConciergeStatus = "open"
	ConciergeStatusInProgress ConciergeStatus = "in_progress"
	ConciergeStatusClosed     ConciergeStatus = "closed"
)

// KnownConciergeStatus reports whether s is a valid concierge status.
func KnownConciergeStatus(s ConciergeStatus) bool {
	switch s {
	case ConciergeStatusOpen, ConciergeStatusInProgress, ConciergeStatusClosed:
		return true
	}
	return false
}

// ConciergeRequest is a user request handled by the concierge team.
type ConciergeRequest struct {
	ID         string
	UserID     string
	Subject    string
	Details    string
	Status     ConciergeStatus
	AssigneeID *string
	Resolution string
	CreatedAt  time.Time
}
