package models

// Category is the guest taxonomy shown in the admin panel. Seeded at
// bootstrap; guests reference categories by name.
type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

const (
	CategoryNameFamily = "Family"
	CategoryNameFriend = "Friend"
	CategoryNameWork   = "Work"
	CategoryNameVIP    = "VIP"
)
