package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payee is anyone who earns commissions: an AFFILIATE (fixed platform rate) or a
// REPRESENTATIVE (individually configured rate). Balance is the running total of
// commissions minus completed payouts. Payouts never drive it negative;
// adjustments may.
type Payee struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:120;not null" json:"name"`
	Email       string          `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Type        string          `gorm:"size:20;not null;index" json:"type"` // AFFILIATE, REPRESENTATIVE
	RatePercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"rate_percent"`
	Balance     decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"balance"`
	// TransferDestination is the connected account on the transfer gateway.
	// Empty means payouts for this payee are recorded as manual.
	TransferDestination string         `gorm:"size:128" json:"transfer_destination"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Payee) TableName() string { return "payees" }
