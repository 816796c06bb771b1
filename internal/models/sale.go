package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the immutable record of a completed payment reported by the upstream
// provider. EventID is the provider's event identifier and doubles as the
// idempotency key for the whole attribution pipeline.
type Sale struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	EventID     string          `gorm:"size:128;uniqueIndex;not null" json:"event_id"`
	CustomerID  string          `gorm:"size:64;not null;index" json:"customer_id"`
	PlanID      string          `gorm:"size:64" json:"plan_id"`
	GrossAmount decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"gross_amount"`
	Currency    string          `gorm:"size:3;not null" json:"currency"`
	CompletedAt time.Time       `json:"completed_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Sale) TableName() string { return "sales" }
