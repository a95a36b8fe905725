package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// KnownBookingStatus reports whether s is a valid booking status.
func KnownBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Booking is a customer reservation for an event zone. Bookings are
// created by the consumer app; the admin surface only inspects and
// moves them through statuses.
type Booking struct {
	ID           string
	Reference    string
	EventID      string
	ZoneID       *string
	UserID       string
	CustomerName string
	Quantity     int
	TotalPrice   float64
	Status       BookingStatus
	CreatedAt    time.Time
}
