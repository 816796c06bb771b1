package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is a payee-facing message written after a financial write
// commits. Delivery is read-side only; a failed insert never rolls back the
// ledger.
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PayeeID   uint           `gorm:"not null;index" json:"payee_id"`
	Type      string         `gorm:"size:40;not null" json:"type"`
	Title     string         `gorm:"size:120" json:"title"`
	Body      string         `gorm:"size:500" json:"body"`
	Read      bool           `gorm:"default:false" json:"read"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Notification) TableName() string { return "notifications" }
