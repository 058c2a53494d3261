package models

import "time"

// Family side of the invitation.
const (
	FamilySideGroom = "noivo"
	FamilySideBride = "noiva"
	FamilySideBoth  = "ambos"
)

// Guest is one invitation on the list. MaxAdults/MaxChildren are the
// ceiling this invitation covers (the guest counts as one adult).
// CheckedInAt is the denormalized arrival marker; the authoritative
// arrival fact lives in the check-in register.
type Guest struct {
	BaseModel
	Name        string     `gorm:"type:varchar(150);not null;index"`
	Category    string     `gorm:"type:varchar(50);index"`
	FamilySide  string     `gorm:"type:varchar(20)"`
	MaxAdults   int        `gorm:"type:integer;default:1"`
	MaxChildren int        `gorm:"type:integer;default:0"`
	TicketCode  string     `gorm:"type:varchar(36);uniqueIndex;not null"`
	CheckedInAt *time.Time `gorm:"type:timestamptz"`

	RSVP *GuestRSVP `gorm:"foreignKey:GuestID"`
}

// MaxPax is the total headcount this invitation covers.
func (g Guest) MaxPax() int {
	return g.MaxAdults + g.MaxChildren
}

// CompanionSlots is how many companion name fields the RSVP form offers.
// At least one slot is always shown, mirroring the invitation card.
func (g Guest) CompanionSlots() int {
	if slots := g.MaxPax() - 1; slots > 1 {
		return slots
	}
	return 1
}

// HasArrived reports whether the guest already passed the door.
func (g Guest) HasArrived() bool {
	return g.CheckedInAt != nil
}
