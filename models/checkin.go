package models

import "time"

// CheckIn is one physical arrival, appended exactly once per guest per
// event. The unique (event_id, guest_id) index is the safety net against
// two terminals confirming the same guest: the second insert fails with a
// duplicate-key error and is reported as "already arrived", never as a
// second entry.
type CheckIn struct {
	BaseModel
	EventID   uint      `gorm:"not null;index:idx_checkins_event_guest,unique"`
	GuestID   uint      `gorm:"not null;index:idx_checkins_event_guest,unique"`
	Guest     Guest     `gorm:"foreignKey:GuestID"`
	Adults    int       `gorm:"type:integer;default:0"`
	Children  int       `gorm:"type:integer;default:0"`
	CheckedBy string    `gorm:"type:varchar(100)"`
	CheckedAt time.Time `gorm:"type:timestamptz;not null"`
}
