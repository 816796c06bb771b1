package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commission is a signed ledger entry: positive for earned commissions,
// negative for adjustments. EventID carries the idempotency key - the sale's
// provider event id for earned commissions, a generated key for adjustments.
// The unique index is what arbitrates concurrent duplicate deliveries; the
// application never pre-checks instead of it.
type Commission struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	PayeeID     uint            `gorm:"not null;index" json:"payee_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Description string          `gorm:"size:255" json:"description"`
	Status      string          `gorm:"size:20;not null;default:'PENDING';index" json:"status"` // PENDING, PAID
	EventID     string          `gorm:"size:128;uniqueIndex;not null" json:"event_id"`
	CreatedAt   time.Time       `json:"created_at"`

	Payee Payee `gorm:"foreignKey:PayeeID" json:"-"`
}

func (Commission) TableName() string { return "commissions" }
