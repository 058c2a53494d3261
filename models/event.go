package models

import "time"

// Event identifies the celebration check-ins are recorded against. The
// seeder creates exactly one main event; the check-in terminal resolves it
// once at startup and refuses to operate without it.
type Event struct {
	BaseModel
	Name     string    `gorm:"type:varchar(150);not null"`
	Venue    string    `gorm:"type:varchar(255)"`
	StartsAt time.Time `gorm:"type:timestamptz;index"`
	IsMain   bool      `gorm:"default:false;index"`
}
