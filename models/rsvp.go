package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// RSVPStatus is the guest's declared intent.
type RSVPStatus string

const (
	RSVPStatusPending   RSVPStatus = "pending"
	RSVPStatusConfirmed RSVPStatus = "confirmed"
	RSVPStatusDeclined  RSVPStatus = "declined"
)

// CompanionNames is stored as a JSON array in a text column.
type CompanionNames []string

func (n CompanionNames) Value() (driver.Value, error) {
	if n == nil {
		n = CompanionNames{}
	}
	b, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (n *CompanionNames) Scan(value interface{}) error {
	if value == nil {
		*n = CompanionNames{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, n)
	case string:
		return json.Unmarshal([]byte(v), n)
	default:
		return errors.New("companion names column has unexpected type")
	}
}

// GuestRSVP is the single attendance record of a guest. The unique index
// on GuestID guarantees at most one row per guest; the confirmation flow
// upserts it rather than appending.
//
// Invariants: Adults+Children never exceed the guest's allowance when the
// status is confirmed, and both counts are zero when pending or declined.
type GuestRSVP struct {
	BaseModel
	GuestID        uint           `gorm:"uniqueIndex;not null"`
	Guest          Guest          `gorm:"foreignKey:GuestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Status         RSVPStatus     `gorm:"type:varchar(20);not null;default:'pending';index"`
	Adults         int            `gorm:"type:integer;default:0"`
	Children       int            `gorm:"type:integer;default:0"`
	CompanionNames CompanionNames `gorm:"type:text"`
	EventID        *uint          `gorm:"index"`
	RespondedAt    *time.Time     `gorm:"type:timestamptz"`
}

// IsConfirmed reports whether the guest confirmed attendance.
func (r *GuestRSVP) IsConfirmed() bool {
	return r != nil && r.Status == RSVPStatusConfirmed
}
