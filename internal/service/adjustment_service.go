package service

import (
	"context"
	"strings"

	"tally/internal/domain"
	"tally/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdjustmentService is the generic penalty/bonus-clawback path used by feature
// modules that are otherwise out of this service's world (policy penalties,
// achievement releases). It only ever writes negative entries.
type AdjustmentService struct {
	ledger *LedgerService
}

func NewAdjustmentService(ledger *LedgerService) *AdjustmentService {
	return &AdjustmentService{ledger: ledger}
}

// Adjust records a commission of -magnitude with status PAID - adjustments are
// settled the moment they are written, unlike earned commissions. Each call is
// a distinct financial act, so the idempotency key is freshly generated rather
// than derived from an upstream event.
func (s *AdjustmentService) Adjust(ctx context.Context, payeeID uint, magnitude decimal.Decimal, reason string) (*models.Commission, error) {
	if !magnitude.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrReasonRequired
	}
	return s.ledger.Credit(ctx, CreditInstruction{
		PayeeID:        payeeID,
		Amount:         magnitude.Neg(),
		Description:    reason,
		IdempotencyKey: "adj-" + uuid.New().String(),
		Status:         domain.CommissionStatusPaid,
	})
}
