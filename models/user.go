package models

// User is an administrator account. Guests never log in; the guest-facing
// flow is reached through search and the ticket code alone.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	IsSystem     bool   `gorm:"default:false"`
}
