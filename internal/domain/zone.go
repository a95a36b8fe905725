package domain

// Zone is a priced capacity bucket for one event (e.g. "VIP", "General").
// Its lifecycle is owned by the parent event's edit session.
type Zone struct {
	ID          string
	EventID     string
	Name        string
	Price       float64
	Capacity    int
	Description string
}
