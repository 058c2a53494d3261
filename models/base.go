package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel is embedded by every persisted entity.
type BaseModel struct {
	ID        uint           `gorm:"primaryKey"`
	CreatedAt time.Time      `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
