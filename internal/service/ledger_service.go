package service

import (
	"context"
	"errors"
	"fmt"

	"tally/internal/domain"
	"tally/internal/models"
	"tally/internal/repository"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LedgerService owns the only write path for commissions. A credit is one
// transaction: insert the commission row, apply the balance delta. The unique
// index on the idempotency key arbitrates duplicates - if the insert trips it,
// the transaction rolls back with nothing written and the existing entry is
// returned, so redelivering the same event any number of times moves money
// exactly once.
type LedgerService struct {
	db             *gorm.DB
	payeeRepo      *repository.PayeeRepository
	commissionRepo *repository.CommissionRepository
	notifSvc       *NotificationService
}

func NewLedgerService(
	db *gorm.DB,
	payeeRepo *repository.PayeeRepository,
	commissionRepo *repository.CommissionRepository,
	notifSvc *NotificationService,
) *LedgerService {
	return &LedgerService{
		db:             db,
		payeeRepo:      payeeRepo,
		commissionRepo: commissionRepo,
		notifSvc:       notifSvc,
	}
}

// CreditInstruction is a request to record one signed ledger entry. Status
// defaults to PENDING (earned commissions awaiting settlement); the adjustment
// path sets PAID.
type CreditInstruction struct {
	PayeeID        uint
	Amount         decimal.Decimal
	Description    string
	IdempotencyKey string
	Status         string
}

// Credit applies the instruction. The ledger treats the amount sign uniformly;
// negative amounts (penalties) are allowed to drive the balance below zero -
// only the payout path enforces a floor.
func (s *LedgerService) Credit(ctx context.Context, instr CreditInstruction) (*models.Commission, error) {
	if instr.IdempotencyKey == "" {
		return nil, fmt.Errorf("credit: idempotency key required")
	}
	status := instr.Status
	if status == "" {
		status = domain.CommissionStatusPending
	}
	c := &models.Commission{
		PayeeID:     instr.PayeeID,
		Amount:      instr.Amount,
		Description: instr.Description,
		Status:      status,
		EventID:     instr.IdempotencyKey,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.commissionRepo.Create(tx, c); err != nil {
			return err
		}
		return s.payeeRepo.CreditBalance(tx, instr.PayeeID, instr.Amount)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		existing, lookupErr := s.commissionRepo.GetByEventID(instr.IdempotencyKey)
		if lookupErr != nil {
			return nil, lookupErr
		}
		log.Infof("[Ledger] duplicate event %s, returning existing commission %d", instr.IdempotencyKey, existing.ID)
		return existing, nil
	}
	if err != nil {
		return nil, err
	}

	// Notification only after the financial write committed; its failure is
	// logged and must not undo the ledger entry.
	if c.Amount.IsNegative() {
		s.notifSvc.NotifyAdjustment(c.PayeeID, c.Amount, c.Description)
	} else {
		s.notifSvc.NotifyCommissionEarned(c.PayeeID, c.Amount, c.Description)
	}
	return c, nil
}
