package models

import (
	"time"

	"gorm.io/gorm"
)

// Referral binds one customer to exactly one payee. The unique index on
// CustomerID means a customer can be referred at most once; which payee earns a
// commission on that customer's sales is never ambiguous.
// Status moves PENDING -> CONVERTED exactly once, on the first attributed sale.
type Referral struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CustomerID  string         `gorm:"size:64;uniqueIndex;not null" json:"customer_id"`
	PayeeID     uint           `gorm:"not null;index" json:"payee_id"`
	Status      string         `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	ConvertedAt *time.Time     `json:"converted_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Payee Payee `gorm:"foreignKey:PayeeID" json:"-"`
}

func (Referral) TableName() string { return "referrals" }
