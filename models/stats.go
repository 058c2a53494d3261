package models

// EventStats is the dashboard summary over the guest + RSVP join.
type EventStats struct {
	TotalGuests int64
	Confirmed   int64
	Declined    int64
	Pending     int64
	// TotalPax counts every expected person: one per invitation plus the
	// confirmed companions of confirmed guests.
	TotalPax      int64
	ResponseRate  float64
	VenueCapacity int
	CapacityUsage float64
	CheckedIn     int64
}
