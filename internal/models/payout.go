package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payout records a disbursement of accumulated balance. A row is only written
// once the outcome is known: STRIPE_COMPLETED when the gateway confirmed the
// transfer, MANUAL_COMPLETED when the money left through an out-of-band
// channel. Rows are never deleted.
type Payout struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	PayeeID     uint            `gorm:"not null;index" json:"payee_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Status      string          `gorm:"size:20;not null;index" json:"status"`
	TransferRef string          `gorm:"size:128" json:"transfer_ref"`
	Note        string          `gorm:"size:255" json:"note"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at"`

	Payee Payee `gorm:"foreignKey:PayeeID" json:"-"`
}

func (Payout) TableName() string { return "payouts" }
